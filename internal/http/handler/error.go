package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"questionnaire/internal/http/middleware"
	"questionnaire/internal/logging"
	"questionnaire/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_QUESTIONS", "FILE_REQUIRED", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeValidationError maps a service validation error to a 400 response.
// Validation messages are produced by this service and are safe to return.
func writeValidationError(c *fiber.Ctx, err error) error {
	code := "BAD_REQUEST"
	switch {
	case errors.Is(err, service.ErrQuestionsRequired):
		code = "INVALID_QUESTIONS"
	case errors.Is(err, service.ErrLengthMismatch):
		code = "LENGTH_MISMATCH"
	case errors.Is(err, service.ErrContentRequired):
		code = "FILE_REQUIRED"
	case errors.Is(err, service.ErrSlotIDRequired):
		code = "SLOT_ID_REQUIRED"
	case errors.Is(err, service.ErrInvalidSlotID):
		code = "INVALID_SLOT_ID"
	}
	return writeError(c, fiber.StatusBadRequest, code, err.Error())
}

// logFailure records an internal error that is hidden from the client.
func logFailure(c *fiber.Ctx, msg string, err error) {
	logging.Error(msg, err, map[string]any{
		"request_id": middleware.RequestIDFromCtx(c),
		"method":     c.Method(),
		"path":       c.Path(),
	})
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			logFailure(c, "unhandled_error", err)
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
