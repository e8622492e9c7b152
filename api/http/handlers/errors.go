package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ogaworks/taskboard/api/http/presenter"
	"github.com/ogaworks/taskboard/pkg/authz"
	"github.com/ogaworks/taskboard/pkg/session"
	"github.com/ogaworks/taskboard/pkg/task"
	"github.com/ogaworks/taskboard/pkg/user"
	"github.com/ogaworks/taskboard/pkg/validation"
)

// respondError maps domain errors onto the HTTP error surface. Every
// validation or authorization failure terminates the request here; nothing
// is retried at this layer.
func respondError(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return presenter.ValidationErrors(c, http.StatusUnprocessableEntity, verrs)
	case errors.Is(err, authz.ErrLoginRequired):
		return presenter.Error(c, http.StatusUnauthorized, "Login required")
	case errors.Is(err, authz.ErrForbidden):
		return presenter.Error(c, http.StatusForbidden, "Forbidden access.")
	case errors.Is(err, session.ErrInvalidCredentials):
		return presenter.Error(c, http.StatusUnauthorized, "Login failed")
	case errors.Is(err, task.ErrConfirmationRequired):
		return presenter.Error(c, http.StatusConflict, "Are you sure?")
	case errors.Is(err, task.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "task not found")
	case errors.Is(err, user.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "user not found")
	default:
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
}
