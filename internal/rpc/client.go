package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// PokodexClient is the client-side view of the Pokodex service.
type PokodexClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error)
	AddFavorite(ctx context.Context, in *AddFavoriteRequest, opts ...grpc.CallOption) (*FavoriteResponse, error)
	RemoveFavorite(ctx context.Context, in *RemoveFavoriteRequest, opts ...grpc.CallOption) (*RemoveFavoriteResponse, error)
	GetFavorite(ctx context.Context, in *GetFavoriteRequest, opts ...grpc.CallOption) (*FavoriteResponse, error)
	ListFavorites(ctx context.Context, in *ListFavoritesRequest, opts ...grpc.CallOption) (*ListFavoritesResponse, error)
	MigrateFavorites(ctx context.Context, in *MigrateFavoritesRequest, opts ...grpc.CallOption) (*MigrateFavoritesResponse, error)
}

type pokodexClient struct {
	cc grpc.ClientConnInterface
}

func NewPokodexClient(cc grpc.ClientConnInterface) PokodexClient {
	return &pokodexClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *pokodexClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *pokodexClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodSignUp, in, opts)
}

func (c *pokodexClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodSignIn, in, opts)
}

func (c *pokodexClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *pokodexClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutResponse](ctx, c.cc, MethodSignOut, in, opts)
}

func (c *pokodexClient) AddFavorite(ctx context.Context, in *AddFavoriteRequest, opts ...grpc.CallOption) (*FavoriteResponse, error) {
	return invoke[FavoriteResponse](ctx, c.cc, MethodAddFavorite, in, opts)
}

func (c *pokodexClient) RemoveFavorite(ctx context.Context, in *RemoveFavoriteRequest, opts ...grpc.CallOption) (*RemoveFavoriteResponse, error) {
	return invoke[RemoveFavoriteResponse](ctx, c.cc, MethodRemoveFavorite, in, opts)
}

func (c *pokodexClient) GetFavorite(ctx context.Context, in *GetFavoriteRequest, opts ...grpc.CallOption) (*FavoriteResponse, error) {
	return invoke[FavoriteResponse](ctx, c.cc, MethodGetFavorite, in, opts)
}

func (c *pokodexClient) ListFavorites(ctx context.Context, in *ListFavoritesRequest, opts ...grpc.CallOption) (*ListFavoritesResponse, error) {
	return invoke[ListFavoritesResponse](ctx, c.cc, MethodListFavorites, in, opts)
}

func (c *pokodexClient) MigrateFavorites(ctx context.Context, in *MigrateFavoritesRequest, opts ...grpc.CallOption) (*MigrateFavoritesResponse, error) {
	return invoke[MigrateFavoritesResponse](ctx, c.cc, MethodMigrateFavorites, in, opts)
}
