package favorites

import (
	"context"

	"github.com/dmitrijs2005/pokodex/internal/client/client"
)

// Migrator reassigns an anonymous actor's favorites to an account.
type Migrator interface {
	Migrate(ctx context.Context, tempActorID, newActorID string) (int64, error)
}

// RemoteMigrator delegates the reassignment to the backend's single atomic
// procedure. It never moves rows one by one.
type RemoteMigrator struct {
	backend client.Backend
}

func NewRemoteMigrator(backend client.Backend) *RemoteMigrator {
	return &RemoteMigrator{backend: backend}
}

// Migrate returns the number of rows moved. An actor with no rows is a
// successful no-op and the procedure is not called.
func (m *RemoteMigrator) Migrate(ctx context.Context, tempActorID, newActorID string) (int64, error) {
	const op = "migrate"
	if tempActorID == "" || tempActorID == newActorID {
		return 0, nil
	}
	rows, err := m.backend.AllFavorites(ctx, tempActorID)
	if err != nil {
		return 0, backendError(op, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := m.backend.MigrateFavorites(ctx, tempActorID, newActorID)
	if err != nil {
		return 0, backendError(op, err)
	}
	return n, nil
}

// NopMigrator is used with the local store, which is not actor-scoped.
type NopMigrator struct{}

func (NopMigrator) Migrate(context.Context, string, string) (int64, error) { return 0, nil }
