// Package favorites declares the repository for favorites rows. Rows are
// scoped by user_id, which holds either a registered user id or an
// anonymous actor id.
package favorites

import (
	"context"

	"github.com/dmitrijs2005/pokodex/internal/server/models"
)

type Repository interface {
	// Create inserts f and fills its ID and CreatedAt.
	Create(ctx context.Context, f *models.Favorite) (*models.Favorite, error)

	// DeleteByName removes every row of userID named name and returns how
	// many rows were removed.
	DeleteByName(ctx context.Context, userID, name string) (int64, error)

	// FindByName returns the newest row of userID named name, or
	// common.ErrorNotFound.
	FindByName(ctx context.Context, userID, name string) (*models.Favorite, error)

	// List returns rows of userID ordered newest first. A limit <= 0 returns
	// every row from offset on.
	List(ctx context.Context, userID string, offset, limit int) ([]*models.Favorite, error)

	Count(ctx context.Context, userID string) (int, error)

	// Migrate reassigns every row owned by tempUserID to userID in a single
	// statement and returns the number of rows moved.
	Migrate(ctx context.Context, tempUserID, userID string) (int64, error)
}
