package port

import (
	"context"

	"github.com/trichyfresh/connect/internal/core/domain"
)

type UserRepository interface {
	// CreateUser inserts a new user and returns its id
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// GetUserByEmail loads a user for credential checks
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUser loads a user by id
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// UpdatePassword overwrites the stored password hash
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
