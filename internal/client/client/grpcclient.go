package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/pokodex/internal/client/models"
	"github.com/dmitrijs2005/pokodex/internal/common"
	"github.com/dmitrijs2005/pokodex/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const pingTimeout = 5 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.PokodexClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string

	// onRefresh is called with the new pair after a transparent refresh.
	onRefresh func(access, refresh string)
}

func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	return newGRPCClient(endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func newGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	opts = append(opts, grpc.WithUnaryInterceptor(c.accessTokenInterceptor))
	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = rpc.NewPokodexClient(conn)
	return c, nil
}

// OnTokensRefreshed registers fn to persist a transparently refreshed pair.
func (s *GRPCClient) OnTokensRefreshed(fn func(access, refresh string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

func (s *GRPCClient) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if method == rpc.FullMethod(rpc.MethodRefreshToken) {
		return invoker(withAccessToken(ctx, ""), method, req, reply, cc, opts...)
	}

	access, refresh := s.Tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) || refresh == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return rerr
	}

	s.mu.Lock()
	s.accessToken, s.refreshToken = resp.AccessToken, resp.RefreshToken
	onRefresh := s.onRefresh
	s.mu.Unlock()
	if onRefresh != nil {
		onRefresh(resp.AccessToken, resp.RefreshToken)
	}

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) SignUp(ctx context.Context, email, password, tempUserID string) (string, error) {
	resp, err := s.client.SignUp(ctx, &rpc.SignUpRequest{Email: email, Password: password, TempUserID: tempUserID})
	if err != nil {
		return "", s.mapError(err)
	}
	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	return resp.UserID, nil
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (string, error) {
	resp, err := s.client.SignIn(ctx, &rpc.SignInRequest{Email: email, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	s.SetTokens(resp.AccessToken, resp.RefreshToken)
	return resp.UserID, nil
}

// SignOut revokes the refresh token on the server and forgets both tokens
// locally. The local state is cleared even when the server call fails.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	_, refresh := s.Tokens()
	s.SetTokens("", "")
	if refresh == "" {
		return nil
	}
	if _, err := s.client.SignOut(ctx, &rpc.SignOutRequest{RefreshToken: refresh}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) AddFavorite(ctx context.Context, actorID string, e models.FavoriteEntry) (models.FavoriteEntry, error) {
	resp, err := s.client.AddFavorite(ctx, &rpc.AddFavoriteRequest{
		ActorID:  actorID,
		Favorite: rpc.Favorite{PokemonID: e.PokemonID, Name: e.Name, URL: e.URL},
	})
	if err != nil {
		return models.FavoriteEntry{}, s.mapError(err)
	}
	return fromRPC(resp.Favorite), nil
}

// RemoveFavorite returns the number of rows the backend deleted.
func (s *GRPCClient) RemoveFavorite(ctx context.Context, actorID, name string) (int64, error) {
	resp, err := s.client.RemoveFavorite(ctx, &rpc.RemoveFavoriteRequest{ActorID: actorID, Name: name})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Removed, nil
}

func (s *GRPCClient) GetFavorite(ctx context.Context, actorID, name string) (models.FavoriteEntry, error) {
	resp, err := s.client.GetFavorite(ctx, &rpc.GetFavoriteRequest{ActorID: actorID, Name: name})
	if err != nil {
		return models.FavoriteEntry{}, s.mapError(err)
	}
	return fromRPC(resp.Favorite), nil
}

func (s *GRPCClient) ListFavorites(ctx context.Context, actorID string, from, to int) ([]models.FavoriteEntry, int, error) {
	resp, err := s.client.ListFavorites(ctx, &rpc.ListFavoritesRequest{ActorID: actorID, From: from, To: to})
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	out := make([]models.FavoriteEntry, 0, len(resp.Favorites))
	for _, f := range resp.Favorites {
		out = append(out, fromRPC(f))
	}
	return out, resp.Total, nil
}

func (s *GRPCClient) AllFavorites(ctx context.Context, actorID string) ([]models.FavoriteEntry, error) {
	rows, _, err := s.ListFavorites(ctx, actorID, 0, -1)
	return rows, err
}

func (s *GRPCClient) MigrateFavorites(ctx context.Context, tempUserID, userID string) (int64, error) {
	resp, err := s.client.MigrateFavorites(ctx, &rpc.MigrateFavoritesRequest{TempUserID: tempUserID, UserID: userID})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Moved, nil
}

func fromRPC(f rpc.Favorite) models.FavoriteEntry {
	return models.FavoriteEntry{
		ID:        f.ID,
		PokemonID: f.PokemonID,
		Name:      f.Name,
		URL:       f.URL,
		UserID:    f.UserID,
		CreatedAt: f.CreatedAt,
	}
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
