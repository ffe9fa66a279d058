package response

import (
	"time"

	"eventhub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the standard API response shape:
// {createdAt, status, message|error} plus optional data.
type Envelope struct {
	CreatedAt time.Time   `json:"createdAt"`
	Status    int         `json:"status"`
	Message   string      `json:"message,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// Success sends a 200 response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		CreatedAt: time.Now().UTC(),
		Status:    fiber.StatusOK,
		Message:   message,
		Data:      data,
	})
}

// OK sends a 200 response with a raw payload (no envelope).
// Used where the API contract returns the resource body directly.
func OK(c *fiber.Ctx, payload interface{}) error {
	return c.Status(fiber.StatusOK).JSON(payload)
}

// Created sends a 201 response with a Location header and raw payload
func Created(c *fiber.Ctx, location string, payload interface{}) error {
	c.Set(fiber.HeaderLocation, location)
	return c.Status(fiber.StatusCreated).JSON(payload)
}

// Error sends an error response in the standard envelope
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Envelope{
		CreatedAt: time.Now().UTC(),
		Status:    statusCode,
		Error:     message,
	})
}

// ValidationFailed sends a 400 with one entry per invalid field
func ValidationFailed(c *fiber.Ctx, fields []validation.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		CreatedAt: time.Now().UTC(),
		Status:    fiber.StatusBadRequest,
		Error:     fields,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
