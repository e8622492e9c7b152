package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ogaworks/taskboard/api/http/presenter"
	"github.com/ogaworks/taskboard/pkg/security/jwt"
	"github.com/ogaworks/taskboard/pkg/task"
)

type TaskHandler struct {
	useCase task.UseCase
}

func NewTaskHandler(useCase task.UseCase) *TaskHandler {
	return &TaskHandler{useCase: useCase}
}

type createTaskRequest struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Status   string     `json:"status"`
	Deadline *time.Time `json:"deadline"`
}

type updateTaskRequest struct {
	Title    *string    `json:"title"`
	Content  *string    `json:"content"`
	Status   *string    `json:"status"`
	Deadline *time.Time `json:"deadline"`
}

type deleteTaskRequest struct {
	Confirmed bool `json:"confirmed"`
}

type taskResponse struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    string     `json:"status"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toTaskResponse(t task.Task) taskResponse {
	return taskResponse{
		ID:        t.ID.String(),
		OwnerID:   t.OwnerID.String(),
		Title:     t.Title,
		Content:   t.Content,
		Status:    string(t.Status),
		Deadline:  t.Deadline,
		CreatedAt: t.CreatedAt,
	}
}

// Create adds a task owned by the authenticated caller.
// @Summary Create task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   input body createTaskRequest true "task fields"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationErrorResponse
// @Router  /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	t, err := h.useCase.Create(c.Context(), jwt.IdentityFromCtx(c), task.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Status:   task.Status(req.Status),
		Deadline: req.Deadline,
	})
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"message": "Task was successfully created.",
		"task":    toTaskResponse(t),
	})
}

// List returns all tasks in creation order. Public.
// @Summary List tasks
// @Tags    tasks
// @Produce json
// @Success 200 {array} taskResponse
// @Router  /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.useCase.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toTaskResponse(t)
	}
	return presenter.JSON(c, http.StatusOK, resp)
}

// Show returns one task. Public.
// @Summary Show task
// @Tags    tasks
// @Produce json
// @Param   id path string true "task ID (UUID)"
// @Success 200 {object} taskResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [get]
func (h *TaskHandler) Show(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	t, err := h.useCase.Show(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toTaskResponse(t))
}

// Update changes fields of an owned task.
// @Summary Update task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   id path string true "task ID (UUID)"
// @Param   input body updateTaskRequest true "fields to change"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ValidationErrorResponse
// @Router  /tasks/{id} [patch]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	input := task.UpdateInput{
		Title:    req.Title,
		Content:  req.Content,
		Deadline: req.Deadline,
	}
	if req.Status != nil {
		status := task.Status(*req.Status)
		input.Status = &status
	}
	t, err := h.useCase.Update(c.Context(), jwt.IdentityFromCtx(c), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "Task was successfully updated.",
		"task":    toTaskResponse(t),
	})
}

// Delete removes an owned task once the caller has acknowledged the
// confirmation challenge; an unconfirmed request mutates nothing.
// @Summary Delete task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   id path string true "task ID (UUID)"
// @Param   input body deleteTaskRequest false "confirmation acknowledgment"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req deleteTaskRequest
	// The body is optional; the acknowledgment may also arrive as a query
	// parameter.
	_ = c.BodyParser(&req)
	confirmed := req.Confirmed || c.QueryBool("confirmed", false)

	if err := h.useCase.Delete(c.Context(), jwt.IdentityFromCtx(c), id, confirmed); err != nil {
		return respondError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "Task was successfully destroyed.",
	})
}
