package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pokodex/internal/common"
	"github.com/dmitrijs2005/pokodex/internal/dbx"
	"github.com/dmitrijs2005/pokodex/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, password_hash, temp_user_id)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	var tempUserID any
	if user.TempUserID != "" {
		tempUserID = user.TempUserID
	}

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, tempUserID).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, temp_user_id, created_at FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	var tempUserID sql.NullString
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &tempUserID, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.TempUserID = tempUserID.String

	return user, nil
}

// Exists compares on the text form of id so that anonymous ids, which are
// not necessarily UUIDs, never fail the cast.
func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM users WHERE id::text = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
