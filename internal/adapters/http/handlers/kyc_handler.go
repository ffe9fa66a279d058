package handlers

import (
	"errors"

	"eventhub/internal/core/domain"
	"eventhub/internal/core/services"
	"eventhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// KycHandler handles role promotion endpoints
type KycHandler struct {
	kycService *services.KycService
}

// NewKycHandler creates a new KYC handler
func NewKycHandler(kycService *services.KycService) *KycHandler {
	return &KycHandler{kycService: kycService}
}

// PromoteToManager grants the Manager role to a user
// @Summary Promote user to Manager
// @Description Grant the Manager role to the given user. Promoting twice is a no-op. Requires the Admin role.
// @Tags KYC
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /kyc/approve/{userId} [post]
func (h *KycHandler) PromoteToManager(c *fiber.Ctx) error {
	result, err := h.kycService.PromoteToManager(c.Context(), c.Params("userId"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrRoleNotConfigured):
			return response.BadRequest(c, "Role 'Manager' not found in database.")
		default:
			return err
		}
	}

	return response.Success(c, result.Message(), nil)
}
