package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/pokodex/internal/common"
	"github.com/dmitrijs2005/pokodex/internal/dbx"
	"github.com/dmitrijs2005/pokodex/internal/server/models"
	"github.com/dmitrijs2005/pokodex/internal/server/repositories/repomanager"
)

// FavoritesService applies row operations on behalf of an actor.
//
// callerID is the account id proven by the access token, empty for an
// anonymous caller. An actor id that belongs to a registered account may
// only be used by that account. Any other actor id is anonymous and is
// usable by whoever holds it.
type FavoritesService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFavoritesService(db *sql.DB, m repomanager.RepositoryManager) *FavoritesService {
	return &FavoritesService{db: db, repomanager: m}
}

func (s *FavoritesService) Add(ctx context.Context, callerID, actorID string, f *models.Favorite) (*models.Favorite, error) {
	if err := validateFavorite(f); err != nil {
		return nil, err
	}
	if err := s.authorizeActor(ctx, callerID, actorID); err != nil {
		return nil, err
	}

	row := *f
	row.UserID = actorID
	created, err := s.repomanager.Favorites(s.db).Create(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("error creating favorite: %w", err)
	}
	return created, nil
}

// Remove deletes every row of actorID named name.
func (s *FavoritesService) Remove(ctx context.Context, callerID, actorID, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("empty name: %w", common.ErrorValidation)
	}
	if err := s.authorizeActor(ctx, callerID, actorID); err != nil {
		return 0, err
	}
	n, err := s.repomanager.Favorites(s.db).DeleteByName(ctx, actorID, name)
	if err != nil {
		return 0, fmt.Errorf("error deleting favorite: %w", err)
	}
	return n, nil
}

// Get returns common.ErrorNotFound when actorID has no row named name.
func (s *FavoritesService) Get(ctx context.Context, callerID, actorID, name string) (*models.Favorite, error) {
	if err := s.authorizeActor(ctx, callerID, actorID); err != nil {
		return nil, err
	}
	return s.repomanager.Favorites(s.db).FindByName(ctx, actorID, name)
}

// List returns rows in the inclusive index range [from, to], newest first,
// together with the total row count of actorID. A negative to selects every
// row from from on. Page and count are read in one read-only transaction.
func (s *FavoritesService) List(ctx context.Context, callerID, actorID string, from, to int) ([]*models.Favorite, int, error) {
	if from < 0 || (to >= 0 && to < from) {
		return nil, 0, fmt.Errorf("bad range [%d, %d]: %w", from, to, common.ErrorValidation)
	}
	if err := s.authorizeActor(ctx, callerID, actorID); err != nil {
		return nil, 0, err
	}

	limit := 0
	if to >= 0 {
		limit = to - from + 1
	}

	var (
		rows  []*models.Favorite
		total int
	)
	err := dbx.WithTx(ctx, s.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Favorites(tx)
		var err error
		if rows, err = repo.List(ctx, actorID, from, limit); err != nil {
			return err
		}
		total, err = repo.Count(ctx, actorID)
		return err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("error listing favorites: %w", err)
	}
	return rows, total, nil
}

// Migrate moves every row of tempUserID to userID in one statement. Only
// the account userID itself may call it, and tempUserID must not belong to
// a registered account.
func (s *FavoritesService) Migrate(ctx context.Context, callerID, tempUserID, userID string) (int64, error) {
	if tempUserID == "" || userID == "" || tempUserID == userID {
		return 0, fmt.Errorf("bad migration %q -> %q: %w", tempUserID, userID, common.ErrorValidation)
	}
	if callerID == "" {
		return 0, common.ErrorUnauthorized
	}
	if callerID != userID {
		return 0, common.ErrorForbidden
	}

	registered, err := s.repomanager.Users(s.db).Exists(ctx, tempUserID)
	if err != nil {
		return 0, fmt.Errorf("error checking actor: %w", err)
	}
	if registered {
		return 0, common.ErrorForbidden
	}

	moved, err := s.repomanager.Favorites(s.db).Migrate(ctx, tempUserID, userID)
	if err != nil {
		return 0, fmt.Errorf("error migrating favorites: %w", err)
	}
	return moved, nil
}

func (s *FavoritesService) authorizeActor(ctx context.Context, callerID, actorID string) error {
	if actorID == "" {
		return fmt.Errorf("empty actor id: %w", common.ErrorValidation)
	}
	if actorID == callerID {
		return nil
	}

	registered, err := s.repomanager.Users(s.db).Exists(ctx, actorID)
	if err != nil {
		return fmt.Errorf("error checking actor: %w", err)
	}
	if !registered {
		return nil
	}
	if callerID == "" {
		return common.ErrorUnauthorized
	}
	return common.ErrorForbidden
}

func validateFavorite(f *models.Favorite) error {
	switch {
	case f == nil:
		return fmt.Errorf("missing favorite: %w", common.ErrorValidation)
	case f.PokemonID <= 0:
		return fmt.Errorf("pokemon id must be positive: %w", common.ErrorValidation)
	case f.Name == "":
		return fmt.Errorf("empty name: %w", common.ErrorValidation)
	case f.URL == "":
		return fmt.Errorf("empty url: %w", common.ErrorValidation)
	}
	return nil
}
