package grpc

import (
	"context"

	"github.com/dmitrijs2005/pokodex/internal/rpc"
	"github.com/dmitrijs2005/pokodex/internal/server/models"
)

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) SignUp(ctx context.Context, req *rpc.SignUpRequest) (*rpc.AuthResponse, error) {
	user, tokens, err := s.users.SignUp(ctx, req.Email, req.Password, req.TempUserID)
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &rpc.AuthResponse{UserID: user.ID, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *rpc.SignInRequest) (*rpc.AuthResponse, error) {
	user, tokens, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.AuthResponse{UserID: user.ID, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.AuthResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.AuthResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *rpc.SignOutRequest) (*rpc.SignOutResponse, error) {
	if err := s.users.SignOut(ctx, req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SignOutResponse{}, nil
}

func (s *GRPCServer) AddFavorite(ctx context.Context, req *rpc.AddFavoriteRequest) (*rpc.FavoriteResponse, error) {
	f, err := s.favorites.Add(ctx, userIDFromContext(ctx), req.ActorID, &models.Favorite{
		PokemonID: req.Favorite.PokemonID,
		Name:      req.Favorite.Name,
		URL:       req.Favorite.URL,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.FavoriteResponse{Favorite: toRPCFavorite(f)}, nil
}

func (s *GRPCServer) RemoveFavorite(ctx context.Context, req *rpc.RemoveFavoriteRequest) (*rpc.RemoveFavoriteResponse, error) {
	n, err := s.favorites.Remove(ctx, userIDFromContext(ctx), req.ActorID, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.RemoveFavoriteResponse{Removed: n}, nil
}

func (s *GRPCServer) GetFavorite(ctx context.Context, req *rpc.GetFavoriteRequest) (*rpc.FavoriteResponse, error) {
	f, err := s.favorites.Get(ctx, userIDFromContext(ctx), req.ActorID, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.FavoriteResponse{Favorite: toRPCFavorite(f)}, nil
}

func (s *GRPCServer) ListFavorites(ctx context.Context, req *rpc.ListFavoritesRequest) (*rpc.ListFavoritesResponse, error) {
	rows, total, err := s.favorites.List(ctx, userIDFromContext(ctx), req.ActorID, req.From, req.To)
	if err != nil {
		return nil, toStatus(err)
	}
	out := make([]rpc.Favorite, 0, len(rows))
	for _, f := range rows {
		out = append(out, toRPCFavorite(f))
	}
	return &rpc.ListFavoritesResponse{Favorites: out, Total: total}, nil
}

func (s *GRPCServer) MigrateFavorites(ctx context.Context, req *rpc.MigrateFavoritesRequest) (*rpc.MigrateFavoritesResponse, error) {
	moved, err := s.favorites.Migrate(ctx, userIDFromContext(ctx), req.TempUserID, req.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info(ctx, "Migrated favorites", "user_id", req.UserID, "moved", moved)
	return &rpc.MigrateFavoritesResponse{Moved: moved}, nil
}

func toRPCFavorite(f *models.Favorite) rpc.Favorite {
	out := rpc.Favorite{
		ID:        f.ID,
		PokemonID: f.PokemonID,
		Name:      f.Name,
		URL:       f.URL,
		UserID:    f.UserID,
	}
	if !f.CreatedAt.IsZero() {
		created := f.CreatedAt
		out.CreatedAt = &created
	}
	return out
}
