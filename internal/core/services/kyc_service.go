package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"eventhub/internal/adapters/persistence/models"
	"eventhub/internal/adapters/persistence/repositories"
	"eventhub/internal/core/domain"

	"gorm.io/gorm"
)

// KycService handles the verified-user promotion flow
type KycService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
}

// NewKycService creates a new KYC service
func NewKycService(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository) *KycService {
	return &KycService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// PromotionResult reports the outcome of a promotion attempt
type PromotionResult struct {
	Email          string
	AlreadyManager bool
}

// Message returns the user-facing outcome description
func (r *PromotionResult) Message() string {
	if r.AlreadyManager {
		return fmt.Sprintf("User %s already has 'Manager' role.", r.Email)
	}
	return fmt.Sprintf("User %s has been promoted to 'Manager'.", r.Email)
}

// PromoteToManager grants the Manager role to a verified user. Granting
// twice is idempotent and never duplicates the user-role link. Callers
// keep their old role set until their current access token expires.
func (s *KycService) PromoteToManager(ctx context.Context, targetUserID string) (*PromotionResult, error) {
	user, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	managerRole, err := s.roleRepo.GetByName(ctx, models.RoleManager)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Missing catalog entry means the seed data is broken
			return nil, domain.ErrRoleNotConfigured
		}
		return nil, err
	}

	alreadyManager, err := s.roleRepo.HasRole(ctx, user.ID, managerRole.ID)
	if err != nil {
		return nil, err
	}
	if alreadyManager {
		return &PromotionResult{Email: user.Email, AlreadyManager: true}, nil
	}

	if err := s.roleRepo.AssignRole(ctx, user.ID, managerRole.ID); err != nil {
		return nil, err
	}

	log.Printf("✅ User promoted to Manager: %s", user.Email)
	return &PromotionResult{Email: user.Email, AlreadyManager: false}, nil
}
