package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound = errors.New("task not found")
	// ErrTitleTaken is returned when a write loses the title uniqueness
	// race at the store level.
	ErrTitleTaken = errors.New("task title already taken")
	// ErrConfirmationRequired is returned when a delete arrives without the
	// caller having acknowledged the confirmation challenge.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Repository abstracts persistence concerns from the domain layer.
// Implementations must enforce title uniqueness with a store-level
// constraint, not just a pre-check.
type Repository interface {
	Create(ctx context.Context, t Task) error
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	Update(ctx context.Context, t Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all tasks in creation order.
	List(ctx context.Context) ([]Task, error)
	// ListByOwner returns the given user's tasks in creation order.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	// TitleTaken reports whether a task other than excludeID holds title.
	TitleTaken(ctx context.Context, title string, excludeID uuid.UUID) (bool, error)
}
