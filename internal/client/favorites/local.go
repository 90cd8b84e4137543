package favorites

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/pokodex/internal/client/models"
	"github.com/dmitrijs2005/pokodex/internal/client/repositories/metadata"
)

// LocalKey is the metadata key holding the JSON favorites list.
const LocalKey = "favoritePokemon"

// LocalStore keeps the whole list under one metadata key. It is not scoped
// by actor and does not coordinate concurrent writers: last writer wins.
type LocalStore struct {
	repo metadata.Repository
}

func NewLocalStore(repo metadata.Repository) *LocalStore {
	return &LocalStore{repo: repo}
}

func (s *LocalStore) load(ctx context.Context, op string) ([]models.FavoriteEntry, bool, error) {
	raw, err := s.repo.Get(ctx, LocalKey)
	if err != nil {
		return nil, false, newError(KindBackend, op, err)
	}
	if len(raw) == 0 {
		return nil, false, nil
	}
	var list []models.FavoriteEntry
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, true, newError(KindCorrupt, op, fmt.Errorf("decode %s: %w", LocalKey, err))
	}
	return list, true, nil
}

func (s *LocalStore) save(ctx context.Context, op string, list []models.FavoriteEntry) error {
	if list == nil {
		list = []models.FavoriteEntry{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return newError(KindBackend, op, err)
	}
	if err := s.repo.Set(ctx, LocalKey, raw); err != nil {
		return newError(KindBackend, op, err)
	}
	return nil
}

func (s *LocalStore) Add(ctx context.Context, e models.FavoriteEntry) (models.FavoriteEntry, error) {
	const op = "add"
	if err := validateEntry(op, e); err != nil {
		return models.FavoriteEntry{}, err
	}
	list, _, err := s.load(ctx, op)
	if err != nil {
		return models.FavoriteEntry{}, err
	}
	if err := s.save(ctx, op, append(list, e)); err != nil {
		return models.FavoriteEntry{}, err
	}
	return e, nil
}

// Remove drops every entry named name. Nothing is written when no entry
// matches.
func (s *LocalStore) Remove(ctx context.Context, name string) (int, error) {
	const op = "remove"
	list, found, err := s.load(ctx, op)
	if err != nil || !found {
		return 0, err
	}
	kept := make([]models.FavoriteEntry, 0, len(list))
	for _, e := range list {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	removed := len(list) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.save(ctx, op, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *LocalStore) IsFavorite(ctx context.Context, name string) (bool, error) {
	list, _, err := s.load(ctx, "isFavorite")
	if err != nil {
		return false, err
	}
	for _, e := range list {
		if e.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *LocalStore) List(ctx context.Context, page, pageSize int) (Page, error) {
	const op = "list"
	if err := validatePage(op, page, pageSize); err != nil {
		return Page{}, err
	}
	list, _, err := s.load(ctx, op)
	if err != nil {
		return Page{}, err
	}

	start := min((page-1)*pageSize, len(list))
	end := min(start+pageSize, len(list))
	out := make([]models.FavoriteEntry, end-start)
	copy(out, list[start:end])
	return Page{Favorites: out, Total: len(list)}, nil
}
