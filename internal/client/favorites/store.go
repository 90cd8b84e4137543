// Package favorites holds the favorites subsystem: the on-device and remote
// stores, the migration of anonymous favorites and the facade the CLI binds to.
package favorites

import (
	"context"
	"fmt"
	"math"

	"github.com/dmitrijs2005/pokodex/internal/client/models"
)

// Store is implemented by LocalStore and RemoteStore. Exactly one is active
// per client.
type Store interface {
	Add(ctx context.Context, e models.FavoriteEntry) (models.FavoriteEntry, error)
	// Remove deletes every entry named name and reports how many went.
	Remove(ctx context.Context, name string) (int, error)
	IsFavorite(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, page, pageSize int) (Page, error)
}

type Page struct {
	Favorites []models.FavoriteEntry
	Total     int
}

func validateEntry(op string, e models.FavoriteEntry) error {
	switch {
	case e.PokemonID <= 0:
		return newError(KindInvalid, op, fmt.Errorf("%w: pokemonId must be positive", ErrInvalidEntry))
	case e.Name == "":
		return newError(KindInvalid, op, fmt.Errorf("%w: name is required", ErrInvalidEntry))
	case e.URL == "":
		return newError(KindInvalid, op, fmt.Errorf("%w: url is required", ErrInvalidEntry))
	}
	return nil
}

// validatePage also rejects cursors whose last index page*pageSize does not
// fit in an int.
func validatePage(op string, page, pageSize int) error {
	if page < 1 || pageSize < 1 {
		return newError(KindInvalid, op, ErrInvalidPage)
	}
	if page > math.MaxInt/pageSize {
		return newError(KindInvalid, op, fmt.Errorf("%w: page %d out of range", ErrInvalidPage, page))
	}
	return nil
}
