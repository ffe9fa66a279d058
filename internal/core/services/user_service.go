package services

import (
	"context"
	"errors"
	"log"
	"time"

	"eventhub/internal/adapters/persistence/models"
	"eventhub/internal/adapters/persistence/repositories"
	"eventhub/internal/config"
	"eventhub/internal/core/domain"
	"eventhub/internal/pkg/jwt"
	"eventhub/internal/pkg/password"
	"eventhub/internal/pkg/validation"

	"gorm.io/gorm"
)

// UserService handles administrative user management
type UserService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
	cfg      *config.Config
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository, cfg *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		cfg:      cfg,
	}
}

// CreateAdminInput represents admin creation input
type CreateAdminInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks admin creation fields
func (in *CreateAdminInput) Validate() error {
	var errs validation.Errors
	errs.Require("email", in.Email, "Email and password are required")
	errs.Email("email", in.Email, "Invalid email address")
	errs.Require("password", in.Password, "Email and password are required")
	errs.MinLen("password", in.Password, 8, "Password must be at least 8 characters")
	return domain.NewValidationError(errs)
}

// AdminCreated describes the newly created admin account
type AdminCreated struct {
	UserID      string    `json:"uid"`
	AccessToken string    `json:"token"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateAdmin creates a user holding the Admin and User roles and
// returns an access token for it
func (s *UserService) CreateAdmin(ctx context.Context, input *CreateAdminInput) (*AdminCreated, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	adminRole, err := s.roleRepo.GetByName(ctx, models.RoleAdmin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotConfigured
		}
		return nil, err
	}
	userRole, err := s.roleRepo.GetByName(ctx, models.RoleUser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotConfigured
		}
		return nil, err
	}

	if err := s.roleRepo.AssignRoles(ctx, user.ID, []string{adminRole.ID, userRole.ID}); err != nil {
		return nil, err
	}

	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		[]string{models.RoleAdmin, models.RoleUser},
		s.cfg.Auth.Key,
		s.cfg.Auth.Issuer,
		s.cfg.Auth.Audience,
		s.cfg.Auth.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Admin user created: %s", user.Email)

	return &AdminCreated{
		UserID:      user.ID,
		AccessToken: accessToken,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}, nil
}
