package handlers

import (
	"errors"
	"strings"

	"eventhub/internal/core/domain"
	"eventhub/internal/core/services"
	"eventhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateAdmin provisions a new administrator account
// @Summary Create admin user
// @Description Create a user holding the Admin and User roles. Requires the Admin role.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.CreateAdminInput true "Admin credentials"
// @Success 201 {object} services.AdminCreated
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /users/admin [post]
func (h *UserHandler) CreateAdmin(c *fiber.Ctx) error {
	var input services.CreateAdminInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	input.Email = strings.TrimSpace(input.Email)

	result, err := h.userService.CreateAdmin(c.Context(), &input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Fields)
		}
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "User already exists, Login")
		case errors.Is(err, domain.ErrRoleNotConfigured):
			return response.BadRequest(c, "Required roles not found in database.")
		default:
			return err
		}
	}

	return response.Created(c, "/users/"+result.UserID, result)
}
