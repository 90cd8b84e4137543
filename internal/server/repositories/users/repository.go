// Package users declares the account repository used by the auth service.
package users

import (
	"context"

	"github.com/dmitrijs2005/pokodex/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills its ID and CreatedAt. A duplicate email
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Exists reports whether id belongs to a registered account.
	Exists(ctx context.Context, id string) (bool, error)
}
