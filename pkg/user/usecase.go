package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ogaworks/taskboard/pkg/authz"
	"github.com/ogaworks/taskboard/pkg/task"
	"github.com/ogaworks/taskboard/pkg/validation"
)

// SignUpInput carries the registration form fields.
type SignUpInput struct {
	Email                string
	Password             string
	PasswordConfirmation string
}

// UpdateInput carries a profile update; only the email may change.
type UpdateInput struct {
	Email string
}

// Dashboard is a user's private view: the tasks they own plus a count.
type Dashboard struct {
	User  User
	Tasks []task.Task
	Count int
}

// UseCase describes account management behavior. Sign-up is public; profile
// update and dashboard are visible to the account owner only.
type UseCase interface {
	SignUp(ctx context.Context, input SignUpInput) (User, error)
	Update(ctx context.Context, caller authz.Identity, id uuid.UUID, input UpdateInput) (User, error)
	Dashboard(ctx context.Context, caller authz.Identity, id uuid.UUID) (Dashboard, error)
}

type service struct {
	repo  Repository
	tasks task.Repository
	gate  authz.Gate
}

// NewService returns default implementation of UseCase.
func NewService(repo Repository, tasks task.Repository, gate authz.Gate) UseCase {
	return &service{repo: repo, tasks: tasks, gate: gate}
}

func (s *service) emailValidators(email string, excludeID uuid.UUID) []validation.Validator {
	return []validation.Validator{
		validation.Required("email", email),
		validation.Unique("email", func(ctx context.Context) (bool, error) {
			return s.repo.EmailTaken(ctx, email, excludeID)
		}),
	}
}

// conflictError maps a uniqueness race lost at write time to the same field
// error the pre-check produces, re-running validation exactly once.
func (s *service) conflictError(ctx context.Context, email string, excludeID uuid.UUID) error {
	errs, err := validation.Run(ctx, s.emailValidators(email, excludeID)...)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return errs
	}
	return validation.Errors{{Field: "email", Reason: validation.ReasonTaken}}
}

func (s *service) SignUp(ctx context.Context, input SignUpInput) (User, error) {
	email := strings.TrimSpace(input.Email)

	checks := s.emailValidators(email, uuid.Nil)
	checks = append(checks,
		validation.Required("password", input.Password),
		validation.Confirmed("password_confirmation", input.Password, input.PasswordConfirmation),
	)
	errs, err := validation.Run(ctx, checks...)
	if err != nil {
		return User{}, err
	}
	if len(errs) > 0 {
		return User{}, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, s.conflictError(ctx, email, uuid.Nil)
		}
		return User{}, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, caller authz.Identity, id uuid.UUID, input UpdateInput) (User, error) {
	if err := s.gate.RequireOwner(caller, id); err != nil {
		return User{}, err
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	email := strings.TrimSpace(input.Email)
	errs, err := validation.Run(ctx, s.emailValidators(email, u.ID)...)
	if err != nil {
		return User{}, err
	}
	if len(errs) > 0 {
		return User{}, errs
	}

	if err := s.repo.UpdateEmail(ctx, u.ID, email); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, s.conflictError(ctx, email, u.ID)
		}
		return User{}, err
	}
	u.Email = email
	return u, nil
}

func (s *service) Dashboard(ctx context.Context, caller authz.Identity, id uuid.UUID) (Dashboard, error) {
	if err := s.gate.RequireOwner(caller, id); err != nil {
		return Dashboard{}, err
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dashboard{}, err
	}
	tasks, err := s.tasks.ListByOwner(ctx, u.ID)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{User: u, Tasks: tasks, Count: len(tasks)}, nil
}
