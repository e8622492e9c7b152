package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ogaworks/taskboard/pkg/authz"
	"github.com/ogaworks/taskboard/pkg/validation"
)

// CreateInput carries the fields for a new task.
type CreateInput struct {
	Title    string
	Content  string
	Status   Status
	Deadline *time.Time
}

// UpdateInput carries a partial update; nil fields stay unchanged.
type UpdateInput struct {
	Title    *string
	Content  *string
	Status   *Status
	Deadline *time.Time
}

// UseCase describes task management behavior. Reads are public; every
// mutation is admitted by the authorization gate first.
type UseCase interface {
	Create(ctx context.Context, caller authz.Identity, input CreateInput) (Task, error)
	Update(ctx context.Context, caller authz.Identity, id uuid.UUID, input UpdateInput) (Task, error)
	Delete(ctx context.Context, caller authz.Identity, id uuid.UUID, confirmed bool) error
	Show(ctx context.Context, id uuid.UUID) (Task, error)
	List(ctx context.Context) ([]Task, error)
}

type service struct {
	repo Repository
	gate authz.Gate
}

// NewService returns default implementation of UseCase.
func NewService(repo Repository, gate authz.Gate) UseCase {
	return &service{repo: repo, gate: gate}
}

// validators is the ordered check chain shared by create and update.
// excludeID skips the task's own row in the uniqueness lookup.
func (s *service) validators(t Task, excludeID uuid.UUID) []validation.Validator {
	return []validation.Validator{
		validation.Required("title", t.Title),
		validation.Unique("title", func(ctx context.Context) (bool, error) {
			return s.repo.TitleTaken(ctx, t.Title, excludeID)
		}),
		validation.Included("status", string(t.Status), Statuses()),
	}
}

func (s *service) validate(ctx context.Context, t Task, excludeID uuid.UUID) error {
	errs, err := validation.Run(ctx, s.validators(t, excludeID)...)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// resolveConflict handles a uniqueness race lost at write time: validation is
// re-run exactly once so the caller sees the same field error the pre-check
// would have produced.
func (s *service) resolveConflict(ctx context.Context, t Task, excludeID uuid.UUID) error {
	if err := s.validate(ctx, t, excludeID); err != nil {
		return err
	}
	// The conflicting row vanished between the write and the re-check;
	// still report the title as taken rather than an internal failure.
	return validation.Errors{{Field: "title", Reason: validation.ReasonTaken}}
}

func (s *service) Create(ctx context.Context, caller authz.Identity, input CreateInput) (Task, error) {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return Task{}, err
	}

	t := Task{
		ID:        uuid.New(),
		OwnerID:   caller.UserID,
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Status:    input.Status,
		Deadline:  input.Deadline,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.validate(ctx, t, uuid.Nil); err != nil {
		return Task{}, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, ErrTitleTaken) {
			return Task{}, s.resolveConflict(ctx, t, uuid.Nil)
		}
		return Task{}, err
	}
	return t, nil
}

func (s *service) Update(ctx context.Context, caller authz.Identity, id uuid.UUID, input UpdateInput) (Task, error) {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return Task{}, err
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if err := s.gate.RequireOwner(caller, t.OwnerID); err != nil {
		return Task{}, err
	}

	updated := t
	if input.Title != nil {
		updated.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		updated.Content = *input.Content
	}
	if input.Status != nil {
		updated.Status = *input.Status
	}
	if input.Deadline != nil {
		updated.Deadline = input.Deadline
	}

	// Full re-validation before any field is committed; a failure leaves
	// the stored task untouched.
	if err := s.validate(ctx, updated, t.ID); err != nil {
		return Task{}, err
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		if errors.Is(err, ErrTitleTaken) {
			return Task{}, s.resolveConflict(ctx, updated, t.ID)
		}
		return Task{}, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, caller authz.Identity, id uuid.UUID, confirmed bool) error {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return err
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gate.RequireOwner(caller, t.OwnerID); err != nil {
		return err
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.repo.Delete(ctx, t.ID)
}

func (s *service) Show(ctx context.Context, id uuid.UUID) (Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Task, error) {
	return s.repo.List(ctx)
}
