package repository

import (
	"context"
	"errors"

	"medcare-api/internal/domain/entity"
)

// Sentinel errors shared by all repository implementations. The application
// layer maps these to its own error kinds; drivers' errors never cross this
// boundary.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines user persistence operations.
// Create must surface ErrDuplicateEmail from the store's uniqueness
// constraint so concurrent registrations race safely.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
