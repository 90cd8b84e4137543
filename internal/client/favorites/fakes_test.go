package favorites

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/pokodex/internal/client/client"
	"github.com/dmitrijs2005/pokodex/internal/client/models"
	"github.com/dmitrijs2005/pokodex/internal/logging"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// actorFunc adapts a func to ActorResolver.
type actorFunc func(ctx context.Context) (string, error)

func (f actorFunc) CurrentActorID(ctx context.Context) (string, error) { return f(ctx) }

func fixedActor(id string) ActorResolver {
	return actorFunc(func(context.Context) (string, error) { return id, nil })
}

// memBackend is an in-memory favorites table behind client.Backend.
type memBackend struct {
	client.Backend

	mu      sync.Mutex
	rows    []models.FavoriteEntry
	nextID  int64
	clock   time.Time
	err     error
	migrate int // MigrateFavorites calls
}

func newMemBackend() *memBackend {
	return &memBackend{clock: time.Unix(1_700_000_000, 0)}
}

func (b *memBackend) AddFavorite(_ context.Context, actorID string, e models.FavoriteEntry) (models.FavoriteEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return models.FavoriteEntry{}, b.err
	}
	b.nextID++
	b.clock = b.clock.Add(time.Second)
	ts := b.clock
	e.ID, e.UserID, e.CreatedAt = b.nextID, actorID, &ts
	b.rows = append(b.rows, e)
	return e, nil
}

func (b *memBackend) RemoveFavorite(_ context.Context, actorID, name string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return 0, b.err
	}
	kept := b.rows[:0]
	for _, r := range b.rows {
		if r.UserID != actorID || r.Name != name {
			kept = append(kept, r)
		}
	}
	removed := int64(len(b.rows) - len(kept))
	b.rows = kept
	return removed, nil
}

func (b *memBackend) GetFavorite(_ context.Context, actorID, name string) (models.FavoriteEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return models.FavoriteEntry{}, b.err
	}
	for _, r := range b.owned(actorID) {
		if r.Name == name {
			return r, nil
		}
	}
	return models.FavoriteEntry{}, client.ErrNotFound
}

func (b *memBackend) ListFavorites(_ context.Context, actorID string, from, to int) ([]models.FavoriteEntry, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, 0, b.err
	}
	owned := b.owned(actorID)
	if from >= len(owned) {
		return []models.FavoriteEntry{}, len(owned), nil
	}
	end := min(to+1, len(owned))
	return owned[from:end], len(owned), nil
}

func (b *memBackend) AllFavorites(_ context.Context, actorID string) ([]models.FavoriteEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	return b.owned(actorID), nil
}

func (b *memBackend) MigrateFavorites(_ context.Context, tempUserID, userID string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.migrate++
	if b.err != nil {
		return 0, b.err
	}
	var n int64
	for i := range b.rows {
		if b.rows[i].UserID == tempUserID {
			b.rows[i].UserID = userID
			n++
		}
	}
	return n, nil
}

// owned returns actorID's rows newest first.
func (b *memBackend) owned(actorID string) []models.FavoriteEntry {
	var out []models.FavoriteEntry
	for _, r := range b.rows {
		if r.UserID == actorID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(*out[j].CreatedAt) {
			return out[i].CreatedAt.After(*out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
