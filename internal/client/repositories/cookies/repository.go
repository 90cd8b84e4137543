// Package cookies is the on-device cookie jar.
package cookies

import (
	"context"

	"github.com/dmitrijs2005/pokodex/internal/client/models"
)

type Repository interface {
	// Get returns (nil, nil) for an absent or expired cookie.
	Get(ctx context.Context, name string) (*models.Cookie, error)
	// Set creates or replaces the cookie.
	Set(ctx context.Context, c *models.Cookie) error
	Delete(ctx context.Context, name string) error
	// Purge drops every expired cookie.
	Purge(ctx context.Context) (int64, error)
}
