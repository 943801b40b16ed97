// Package users declares the repository contract for user identity records.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Repository interface {
	// Create stores a new user. Implementations return ErrorAlreadyExists
	// when the email is already taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID looks up a user by primary key.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail looks up a user by email (case-sensitive, as stored).
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
