package client

import (
	"context"

	"github.com/dmitrijs2005/pokodex/internal/client/models"
)

// Backend is the hosted auth and favorites service as seen by the client.
type Backend interface {
	Ping(ctx context.Context) error
	Close() error

	// SignUp and SignIn open a session and return the account id.
	SignUp(ctx context.Context, email, password, tempUserID string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context) error

	// Tokens and SetTokens expose the session so it can be persisted and
	// restored across restarts.
	Tokens() (access, refresh string)
	SetTokens(access, refresh string)

	AddFavorite(ctx context.Context, actorID string, e models.FavoriteEntry) (models.FavoriteEntry, error)
	RemoveFavorite(ctx context.Context, actorID, name string) (int64, error)
	// GetFavorite returns ErrNotFound when actorID has no such row.
	GetFavorite(ctx context.Context, actorID, name string) (models.FavoriteEntry, error)
	// ListFavorites returns the inclusive row range [from, to] newest first
	// and the actor's total row count.
	ListFavorites(ctx context.Context, actorID string, from, to int) ([]models.FavoriteEntry, int, error)
	AllFavorites(ctx context.Context, actorID string) ([]models.FavoriteEntry, error)
	// MigrateFavorites invokes the single server-side migration procedure.
	MigrateFavorites(ctx context.Context, tempUserID, userID string) (int64, error)
}
