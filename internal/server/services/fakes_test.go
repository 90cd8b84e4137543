package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pokodex/internal/common"
	"github.com/dmitrijs2005/pokodex/internal/dbx"
	"github.com/dmitrijs2005/pokodex/internal/server/models"
	favoritesrepo "github.com/dmitrijs2005/pokodex/internal/server/repositories/favorites"
	refreshtokensrepo "github.com/dmitrijs2005/pokodex/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/pokodex/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	created   *models.User

	getOut *models.User
	getErr error

	registered map[string]bool
	existsErr  error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) Exists(ctx context.Context, userID string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.registered[userID], nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	deleted   []string
	createErr error
	created   []string

	expired int64
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, userID)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return f.delErr
}

func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return f.expired, nil
}

// memFavoritesRepo keeps rows in memory with the same ordering as the
// Postgres implementation.
type memFavoritesRepo struct {
	mu      sync.Mutex
	rows    []*models.Favorite
	nextID  int64
	err     error
	migrate int
}

func (r *memFavoritesRepo) Create(ctx context.Context, f *models.Favorite) (*models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	row := *f
	row.ID = r.nextID
	row.CreatedAt = time.Unix(r.nextID, 0)
	r.rows = append(r.rows, &row)
	return &row, nil
}

func (r *memFavoritesRepo) DeleteByName(ctx context.Context, userID, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	kept := r.rows[:0]
	var n int64
	for _, row := range r.rows {
		if row.UserID == userID && row.Name == name {
			n++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return n, nil
}

func (r *memFavoritesRepo) FindByName(ctx context.Context, userID, name string) (*models.Favorite, error) {
	rows, err := r.List(ctx, userID, 0, 0)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Name == name {
			return row, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memFavoritesRepo) List(ctx context.Context, userID string, offset, limit int) ([]*models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.Favorite
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memFavoritesRepo) Count(ctx context.Context, userID string) (int, error) {
	rows, err := r.List(ctx, userID, 0, 0)
	return len(rows), err
}

func (r *memFavoritesRepo) Migrate(ctx context.Context, tempUserID, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.migrate++
	var n int64
	for _, row := range r.rows {
		if row.UserID == tempUserID {
			row.UserID = userID
			n++
		}
	}
	return n, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	f *memFavoritesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Favorites(db dbx.DBTX) favoritesrepo.Repository         { return m.f }
