package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ogaworks/taskboard/api/http/presenter"
	"github.com/ogaworks/taskboard/pkg/security/jwt"
	"github.com/ogaworks/taskboard/pkg/user"
)

type UserHandler struct {
	useCase user.UseCase
}

func NewUserHandler(useCase user.UseCase) *UserHandler {
	return &UserHandler{useCase: useCase}
}

type signUpRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type updateUserRequest struct {
	Email string `json:"email"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{ID: u.ID.String(), Email: u.Email, CreatedAt: u.CreatedAt}
}

// SignUp handles account registration.
// @Summary Sign up
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body signUpRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationErrorResponse
// @Router  /users [post]
func (h *UserHandler) SignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	u, err := h.useCase.SignUp(c.Context(), user.SignUpInput{
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"message": "User was successfully created.",
		"user":    toUserResponse(u),
	})
}

// Dashboard returns the owner's tasks and their count.
// @Summary User dashboard
// @Tags    users
// @Produce json
// @Param   id path string true "user ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /users/{id} [get]
func (h *UserHandler) Dashboard(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	d, err := h.useCase.Dashboard(c.Context(), jwt.IdentityFromCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	tasks := make([]taskResponse, len(d.Tasks))
	for i, t := range d.Tasks {
		tasks[i] = toTaskResponse(t)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"user":  toUserResponse(d.User),
		"tasks": tasks,
		"count": d.Count,
	})
}

// Update changes the account's email.
// @Summary Update user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   id path string true "user ID (UUID)"
// @Param   input body updateUserRequest true "profile fields"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationErrorResponse
// @Router  /users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	u, err := h.useCase.Update(c.Context(), jwt.IdentityFromCtx(c), id, user.UpdateInput{Email: req.Email})
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "User was successfully updated.",
		"user":    toUserResponse(u),
	})
}
