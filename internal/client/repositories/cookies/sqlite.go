package cookies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pokodex/internal/client/models"
	"github.com/dmitrijs2005/pokodex/internal/dbx"
)

// SQLiteRepository stores expiry as Unix seconds.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (*models.Cookie, error) {
	var (
		c       = &models.Cookie{Name: name}
		expires int64
		site    string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT value, expires_at, same_site FROM cookies WHERE name = ?`, name,
	).Scan(&c.Value, &expires, &site)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cookie[%s]: %w", name, err)
	}

	c.ExpiresAt = time.Unix(expires, 0)
	c.SameSite = models.SameSite(site)
	if c.Expired(r.now()) {
		return nil, nil
	}
	return c, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, c *models.Cookie) error {
	site := c.SameSite
	if site == "" {
		site = models.SameSiteStrict
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cookies (name, value, expires_at, same_site) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			same_site = excluded.same_site
	`, c.Name, c.Value, c.ExpiresAt.Unix(), string(site))
	if err != nil {
		return fmt.Errorf("failed to set cookie[%s]: %w", c.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete cookie[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) Purge(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE expires_at <= ?`, r.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge cookies: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to purge cookies: %w", err)
	}
	return n, nil
}
