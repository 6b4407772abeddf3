package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mapadf/pontos/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, not_found, internal_error
	Message   string `json:"message"` // Human-readable message (Portuguese)
	Field     string `json:"campo,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code, message, field string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		Field:     field,
		RequestID: reqID,
	})
}

// errValidation returns a 400 carrying the offending field.
func errValidation(c *fiber.Ctx, ve *domain.ValidationError) error {
	return newError(c, 400, "bad_request", ve.Message, ve.Field)
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg, "")
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, "not_found", msg, "")
}

// errInternal returns a 500 error. Storage detail is logged upstream and
// never echoed to the caller.
func errInternal(c *fiber.Ctx) error {
	return newError(c, 500, "internal_error", "erro interno do servidor", "")
}
