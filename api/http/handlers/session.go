package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ogaworks/taskboard/api/http/presenter"
	"github.com/ogaworks/taskboard/pkg/security/jwt"
	"github.com/ogaworks/taskboard/pkg/session"
)

type SessionHandler struct {
	manager *session.Manager
}

func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles credential verification and session creation.
// @Summary Log in
// @Tags    sessions
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "credentials"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /sessions [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	s, token, err := h.manager.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"message":    "Login successful",
		"token":      token,
		"user_id":    s.UserID.String(),
		"expires_at": s.ExpiresAt,
	})
}

// Logout destroys the caller's session. Destroying an absent or already
// destroyed session is not an error.
// @Summary Log out
// @Tags    sessions
// @Produce json
// @Success 204 {object} nil
// @Router  /sessions [delete]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	token := jwt.TokenFromRequest(c)
	if token != "" {
		if err := h.manager.Destroy(c.Context(), token); err != nil {
			return respondError(c, err)
		}
	}
	return c.SendStatus(http.StatusNoContent)
}
