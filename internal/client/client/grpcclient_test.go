package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/pokodex/internal/client/models"
	"github.com/dmitrijs2005/pokodex/internal/common"
	"github.com/dmitrijs2005/pokodex/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeRPC struct {
	rpc.PokodexClient

	lastRefresh *rpc.RefreshTokenRequest
	refreshResp *rpc.AuthResponse
	refreshErr  error
}

func (f *fakeRPC) RefreshToken(ctx context.Context, in *rpc.RefreshTokenRequest, opts ...grpc.CallOption) (*rpc.AuthResponse, error) {
	f.lastRefresh = in
	return f.refreshResp, f.refreshErr
}

func tokenFrom(t *testing.T, ctx context.Context) string {
	t.Helper()
	md, _ := metadata.FromOutgoingContext(ctx)
	toks := md.Get(common.AccessTokenHeaderName)
	if len(toks) == 0 {
		return ""
	}
	require.Len(t, toks, 1)
	return toks[0]
}

func TestInterceptor_RefreshesTokenOnExpiredAndRetries(t *testing.T) {
	f := &fakeRPC{refreshResp: &rpc.AuthResponse{AccessToken: "A2", RefreshToken: "R2"}}
	c := &GRPCClient{client: f, accessToken: "A1", refreshToken: "R1"}

	var persisted []string
	c.OnTokensRefreshed(func(a, r string) { persisted = append(persisted, a, r) })

	calls := 0
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		calls++
		if calls == 1 {
			assert.Equal(t, "A1", tokenFrom(t, ctx))
			return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		assert.Equal(t, "A2", tokenFrom(t, ctx))
		return nil
	}

	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	a, r := c.Tokens()
	assert.Equal(t, "A2", a)
	assert.Equal(t, "R2", r)
	assert.Equal(t, "R1", f.lastRefresh.RefreshToken)
	assert.Equal(t, []string{"A2", "R2"}, persisted)
}

func TestInterceptor_NoRefreshWithoutRefreshToken(t *testing.T) {
	f := &fakeRPC{}
	c := &GRPCClient{client: f, accessToken: "A1"}

	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}

	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.Error(t, err)
	assert.Nil(t, f.lastRefresh)
}

func TestInterceptor_IgnoresOtherErrors(t *testing.T) {
	f := &fakeRPC{}
	c := &GRPCClient{client: f, accessToken: "X", refreshToken: "R"}

	for _, st := range []error{
		status.Error(codes.Internal, "boom"),
		status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error()),
	} {
		invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			return st
		}
		err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
		assert.Equal(t, st, err)
	}
	assert.Nil(t, f.lastRefresh)
}

func TestInterceptor_AnonymousCallCarriesNoToken(t *testing.T) {
	c := &GRPCClient{client: &fakeRPC{}}

	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		assert.Equal(t, "", tokenFrom(t, ctx))
		return nil
	}
	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
}

func TestInterceptor_RefreshFailureReturned(t *testing.T) {
	f := &fakeRPC{refreshErr: status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())}
	c := &GRPCClient{client: f, accessToken: "A1", refreshToken: "R1"}

	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}
	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}
	tests := []struct {
		in   error
		want error
	}{
		{status.Error(codes.Unauthenticated, "x"), ErrUnauthorized},
		{status.Error(codes.PermissionDenied, "x"), ErrForbidden},
		{status.Error(codes.NotFound, "x"), ErrNotFound},
		{status.Error(codes.AlreadyExists, "x"), ErrAlreadyExists},
		{status.Error(codes.InvalidArgument, "empty name"), ErrInvalidArgument},
		{status.Error(codes.Unavailable, "x"), ErrUnavailable},
		{status.Error(codes.DeadlineExceeded, "x"), ErrUnavailable},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, c.mapError(tt.in), tt.want, tt.in.Error())
	}

	assert.NoError(t, c.mapError(nil))
	other := c.mapError(status.Error(codes.Internal, "boom"))
	assert.Contains(t, other.Error(), "rpc error")
	assert.Contains(t, c.mapError(status.Error(codes.InvalidArgument, "empty name")).Error(), "empty name")
	assert.Contains(t, c.mapError(errors.New("plain")).Error(), "plain")
}

// backendServer is a minimal in-memory Pokodex service for round trips.
type backendServer struct {
	rpc.PokodexServer

	gotToken string
	rows     []rpc.Favorite
}

func (b *backendServer) Ping(context.Context, *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}

func (b *backendServer) SignIn(_ context.Context, in *rpc.SignInRequest) (*rpc.AuthResponse, error) {
	if in.Password != "pikachu" {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	return &rpc.AuthResponse{UserID: "user-123", AccessToken: "A", RefreshToken: "R"}, nil
}

func (b *backendServer) SignOut(context.Context, *rpc.SignOutRequest) (*rpc.SignOutResponse, error) {
	return &rpc.SignOutResponse{}, nil
}

func (b *backendServer) AddFavorite(ctx context.Context, in *rpc.AddFavoriteRequest) (*rpc.FavoriteResponse, error) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(common.AccessTokenHeaderName); len(v) > 0 {
			b.gotToken = v[0]
		}
	}
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	f := in.Favorite
	f.ID = int64(len(b.rows) + 1)
	f.UserID = in.ActorID
	f.CreatedAt = &created
	b.rows = append([]rpc.Favorite{f}, b.rows...)
	return &rpc.FavoriteResponse{Favorite: f}, nil
}

func (b *backendServer) GetFavorite(context.Context, *rpc.GetFavoriteRequest) (*rpc.FavoriteResponse, error) {
	return nil, status.Error(codes.NotFound, "not found")
}

func (b *backendServer) ListFavorites(_ context.Context, in *rpc.ListFavoritesRequest) (*rpc.ListFavoritesResponse, error) {
	return &rpc.ListFavoritesResponse{Favorites: b.rows, Total: len(b.rows)}, nil
}

func (b *backendServer) MigrateFavorites(_ context.Context, in *rpc.MigrateFavoritesRequest) (*rpc.MigrateFavoritesResponse, error) {
	return &rpc.MigrateFavoritesResponse{Moved: int64(len(b.rows))}, nil
}

func startBackend(t *testing.T, srv rpc.PokodexServer) *GRPCClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	rpc.RegisterPokodexServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := newGRPCClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGRPCClient_RoundTrip(t *testing.T) {
	srv := &backendServer{}
	c := startBackend(t, srv)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	_, err := c.SignIn(ctx, "ash@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	uid, err := c.SignIn(ctx, "ash@example.com", "pikachu")
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)

	got, err := c.AddFavorite(ctx, uid, models.FavoriteEntry{PokemonID: 25, Name: "pikachu", URL: "u"})
	require.NoError(t, err)
	assert.Equal(t, "user-123", got.UserID)
	require.NotNil(t, got.CreatedAt)
	assert.Equal(t, "A", srv.gotToken)

	rows, total, err := c.ListFavorites(ctx, uid, 0, 19)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "pikachu", rows[0].Name)

	all, err := c.AllFavorites(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = c.GetFavorite(ctx, uid, "mew")
	assert.ErrorIs(t, err, ErrNotFound)

	moved, err := c.MigrateFavorites(ctx, "temp-abc", uid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), moved)

	require.NoError(t, c.SignOut(ctx))
	a, r := c.Tokens()
	assert.Empty(t, a)
	assert.Empty(t, r)
}
