package cookies

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/pokodex/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T, now time.Time) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE cookies (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		expires_at INTEGER NOT NULL,
		same_site TEXT NOT NULL DEFAULT 'Strict'
	);`)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)
	r.now = func() time.Time { return now }
	return r, db
}

func TestSetGet(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	r, _ := setupRepo(t, now)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, &models.Cookie{
		Name: "pokodex_temp_user_id", Value: "temp-abc", ExpiresAt: now.Add(30 * 24 * time.Hour),
	}))

	c, err := r.Get(ctx, "pokodex_temp_user_id")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "temp-abc", c.Value)
	assert.Equal(t, models.SameSiteStrict, c.SameSite)
	assert.True(t, c.ExpiresAt.Equal(now.Add(30*24*time.Hour)))
}

func TestGet_AbsentAndExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	r, _ := setupRepo(t, now)
	ctx := context.Background()

	c, err := r.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, r.Set(ctx, &models.Cookie{Name: "old", Value: "v", ExpiresAt: now.Add(-time.Second)}))
	c, err = r.Get(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestSet_ReplacesAndDelete(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	r, _ := setupRepo(t, now)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, &models.Cookie{Name: "consent", Value: "false", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, r.Set(ctx, &models.Cookie{Name: "consent", Value: "true", ExpiresAt: now.Add(time.Hour), SameSite: models.SameSiteLax}))

	c, err := r.Get(ctx, "consent")
	require.NoError(t, err)
	assert.Equal(t, "true", c.Value)
	assert.Equal(t, models.SameSiteLax, c.SameSite)

	require.NoError(t, r.Delete(ctx, "consent"))
	c, err = r.Get(ctx, "consent")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestPurge(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	r, db := setupRepo(t, now)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, &models.Cookie{Name: "a", Value: "1", ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, r.Set(ctx, &models.Cookie{Name: "b", Value: "2", ExpiresAt: now.Add(time.Hour)}))

	n, err := r.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var left int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cookies`).Scan(&left))
	assert.Equal(t, 1, left)
}

func TestErrorsWrapped(t *testing.T) {
	r, db := setupRepo(t, time.Now())
	require.NoError(t, db.Close())
	ctx := context.Background()

	_, err := r.Get(ctx, "x")
	assert.ErrorContains(t, err, "failed to get cookie[x]")
	assert.ErrorContains(t, r.Set(ctx, &models.Cookie{Name: "x"}), "failed to set cookie[x]")
	assert.ErrorContains(t, r.Delete(ctx, "x"), "failed to delete cookie[x]")
	_, err = r.Purge(ctx)
	assert.ErrorContains(t, err, "failed to purge cookies")
}
