package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when a write loses the email uniqueness
	// race at the store level.
	ErrEmailTaken = errors.New("email already taken")
)

// Repository abstracts persistence concerns from the domain layer.
// Implementations must enforce email uniqueness with a store-level
// constraint, not just a pre-check.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	// EmailTaken reports whether a user other than excludeID holds email.
	EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}
