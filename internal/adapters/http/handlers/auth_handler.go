package handlers

import (
	"errors"
	"strings"

	"eventhub/internal/core/domain"
	"eventhub/internal/core/services"
	"eventhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new user, grant the default role and return a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} services.AuthResponse
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	input.Email = strings.TrimSpace(input.Email)

	result, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Fields)
		}
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "User already exists, Login")
		case errors.Is(err, domain.ErrRoleNotConfigured):
			return response.BadRequest(c, "Default role 'User' not found in database.")
		default:
			return err
		}
	}

	return response.Created(c, "/users/"+result.UserID, result)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password and return a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	input.Email = strings.TrimSpace(input.Email)

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Fields)
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid credentials")
		}
		return err
	}

	return response.OK(c, result)
}

// VerifyEmail handles email verification
// @Summary Verify email
// @Description Redeem an email verification token; verifying twice is a no-op
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.VerifyEmailInput true "Verification token"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /verify-email [post]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var input services.VerifyEmailInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.VerifyEmail(c.Context(), &input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Fields)
		}
		if errors.Is(err, domain.ErrInvalidVerifyToken) {
			return response.BadRequest(c, "Invalid or expired token.")
		}
		return err
	}

	if result.AlreadyVerified {
		return response.Success(c, "Email is already verified", nil)
	}
	return response.Success(c, "Email Verified successfully", nil)
}

// RefreshToken handles refresh-token rotation
// @Summary Refresh tokens
// @Description Redeem a refresh token for a new token pair; the old token is revoked
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RefreshTokenInput true "Refresh token"
// @Success 200 {object} services.TokenPair
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /refresh-token [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input services.RefreshTokenInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tokens, err := h.authService.RefreshToken(c.Context(), &input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Fields)
		}
		if errors.Is(err, domain.ErrRefreshTokenInvalid) {
			return response.Unauthorized(c, "Invalid or expired refresh token")
		}
		return err
	}

	return response.OK(c, tokens)
}
