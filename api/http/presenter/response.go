package presenter

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ogaworks/taskboard/pkg/validation"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse carries every failed field check of a request.
type ValidationErrorResponse struct {
	Errors []FieldErrorDTO `json:"errors"`
}

type FieldErrorDTO struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// ValidationErrors renders field-level failures as structured data for the
// presentation layer.
func ValidationErrors(c *fiber.Ctx, status int, errs validation.Errors) error {
	dto := make([]FieldErrorDTO, len(errs))
	for i, fe := range errs {
		dto[i] = FieldErrorDTO{Field: fe.Field, Reason: fe.Reason, Message: fe.Error()}
	}
	return JSON(c, status, ValidationErrorResponse{Errors: dto})
}
