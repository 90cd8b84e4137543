package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "pokodex.v1.Pokodex"

const (
	MethodPing             = "Ping"
	MethodSignUp           = "SignUp"
	MethodSignIn           = "SignIn"
	MethodRefreshToken     = "RefreshToken"
	MethodSignOut          = "SignOut"
	MethodAddFavorite      = "AddFavorite"
	MethodRemoveFavorite   = "RemoveFavorite"
	MethodGetFavorite      = "GetFavorite"
	MethodListFavorites    = "ListFavorites"
	MethodMigrateFavorites = "MigrateFavorites"
)

// FullMethod returns the gRPC method path, e.g. "/pokodex.v1.Pokodex/Ping".
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// PokodexServer is implemented by the backend.
type PokodexServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	SignUp(context.Context, *SignUpRequest) (*AuthResponse, error)
	SignIn(context.Context, *SignInRequest) (*AuthResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*AuthResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	AddFavorite(context.Context, *AddFavoriteRequest) (*FavoriteResponse, error)
	RemoveFavorite(context.Context, *RemoveFavoriteRequest) (*RemoveFavoriteResponse, error)
	GetFavorite(context.Context, *GetFavoriteRequest) (*FavoriteResponse, error)
	ListFavorites(context.Context, *ListFavoritesRequest) (*ListFavoritesResponse, error)
	MigrateFavorites(context.Context, *MigrateFavoritesRequest) (*MigrateFavoritesResponse, error)
}

// unary builds the method descriptor for one request/response call,
// running it through the server's interceptor chain when there is one.
func unary[Req, Resp any](name string, call func(PokodexServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(PokodexServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the Pokodex service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PokodexServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, PokodexServer.Ping),
		unary(MethodSignUp, PokodexServer.SignUp),
		unary(MethodSignIn, PokodexServer.SignIn),
		unary(MethodRefreshToken, PokodexServer.RefreshToken),
		unary(MethodSignOut, PokodexServer.SignOut),
		unary(MethodAddFavorite, PokodexServer.AddFavorite),
		unary(MethodRemoveFavorite, PokodexServer.RemoveFavorite),
		unary(MethodGetFavorite, PokodexServer.GetFavorite),
		unary(MethodListFavorites, PokodexServer.ListFavorites),
		unary(MethodMigrateFavorites, PokodexServer.MigrateFavorites),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pokodex/v1",
}

func RegisterPokodexServer(s grpc.ServiceRegistrar, srv PokodexServer) {
	s.RegisterService(&ServiceDesc, srv)
}
