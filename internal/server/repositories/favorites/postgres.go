package favorites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pokodex/internal/common"
	"github.com/dmitrijs2005/pokodex/internal/dbx"
	"github.com/dmitrijs2005/pokodex/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, f *models.Favorite) (*models.Favorite, error) {
	query := `
		INSERT INTO favorites (user_id, pokemon_id, name, url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, f.UserID, f.PokemonID, f.Name, f.URL).Scan(&f.ID, &f.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) DeleteByName(ctx context.Context, userID, name string) (int64, error) {
	query := `
		DELETE FROM favorites
		WHERE user_id = $1 AND name = $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, name)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) FindByName(ctx context.Context, userID, name string) (*models.Favorite, error) {
	query := `
		SELECT id, user_id, pokemon_id, name, url, created_at
		FROM favorites
		WHERE user_id = $1 AND name = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	f := &models.Favorite{}
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&f.ID, &f.UserID, &f.PokemonID, &f.Name, &f.URL, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, offset, limit int) ([]*models.Favorite, error) {
	query := `
		SELECT id, user_id, pokemon_id, name, url, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2
	`
	args := []any{userID, offset}
	if limit > 0 {
		query += "LIMIT $3\n"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Favorite
	for rows.Next() {
		f := &models.Favorite{}
		if err := rows.Scan(&f.ID, &f.UserID, &f.PokemonID, &f.Name, &f.URL, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM favorites
		WHERE user_id = $1
	`
	var n int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Migrate(ctx context.Context, tempUserID, userID string) (int64, error) {
	query := `SELECT migrate_favorites($1, $2)`

	var moved int64
	if err := r.db.QueryRowContext(ctx, query, tempUserID, userID).Scan(&moved); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return moved, nil
}
