package favorites

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/pokodex/internal/client/client"
	"github.com/dmitrijs2005/pokodex/internal/client/models"
)

// ActorResolver names the actor every remote operation is scoped to.
type ActorResolver interface {
	CurrentActorID(ctx context.Context) (string, error)
}

// RemoteStore keeps favorites as backend rows owned by the current actor.
// It never retries: one failed call is one returned error.
type RemoteStore struct {
	backend client.Backend
	actors  ActorResolver
}

func NewRemoteStore(backend client.Backend, actors ActorResolver) *RemoteStore {
	return &RemoteStore{backend: backend, actors: actors}
}

func (s *RemoteStore) actor(ctx context.Context, op string) (string, error) {
	id, err := s.actors.CurrentActorID(ctx)
	if err != nil {
		return "", newError(KindBackend, op, err)
	}
	return id, nil
}

func (s *RemoteStore) Add(ctx context.Context, e models.FavoriteEntry) (models.FavoriteEntry, error) {
	const op = "add"
	if err := validateEntry(op, e); err != nil {
		return models.FavoriteEntry{}, err
	}
	actorID, err := s.actor(ctx, op)
	if err != nil {
		return models.FavoriteEntry{}, err
	}
	row, err := s.backend.AddFavorite(ctx, actorID, models.FavoriteEntry{
		PokemonID: e.PokemonID,
		Name:      e.Name,
		URL:       e.URL,
	})
	if err != nil {
		return models.FavoriteEntry{}, backendError(op, err)
	}
	return row, nil
}

func (s *RemoteStore) Remove(ctx context.Context, name string) (int, error) {
	const op = "remove"
	actorID, err := s.actor(ctx, op)
	if err != nil {
		return 0, err
	}
	n, err := s.backend.RemoveFavorite(ctx, actorID, name)
	if err != nil {
		return 0, backendError(op, err)
	}
	return int(n), nil
}

func (s *RemoteStore) IsFavorite(ctx context.Context, name string) (bool, error) {
	const op = "isFavorite"
	actorID, err := s.actor(ctx, op)
	if err != nil {
		return false, err
	}
	_, err = s.backend.GetFavorite(ctx, actorID, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, client.ErrNotFound):
		return false, nil
	default:
		return false, backendError(op, err)
	}
}

// List returns rows [(page-1)*pageSize, page*pageSize-1] newest first with
// the exact total.
func (s *RemoteStore) List(ctx context.Context, page, pageSize int) (Page, error) {
	const op = "list"
	if err := validatePage(op, page, pageSize); err != nil {
		return Page{}, err
	}
	actorID, err := s.actor(ctx, op)
	if err != nil {
		return Page{}, err
	}
	from := (page - 1) * pageSize
	to := from + pageSize - 1
	rows, total, err := s.backend.ListFavorites(ctx, actorID, from, to)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return Page{Favorites: []models.FavoriteEntry{}}, nil
		}
		return Page{}, backendError(op, err)
	}
	if rows == nil {
		rows = []models.FavoriteEntry{}
	}
	return Page{Favorites: rows, Total: total}, nil
}

func backendError(op string, err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, client.ErrForbidden):
		return newError(KindUnauthorized, op, err)
	case errors.Is(err, client.ErrInvalidArgument):
		return newError(KindInvalid, op, err)
	default:
		return newError(KindBackend, op, err)
	}
}
