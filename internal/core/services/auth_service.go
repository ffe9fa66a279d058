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
	"eventhub/internal/pkg/token"
	"eventhub/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier delivers out-of-band registration notifications
type Notifier interface {
	NotifyUserRegistered(ctx context.Context, userID, email, verificationToken string) error
}

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	roleRepo         repositories.RoleRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	notifier         Notifier
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	notifier Notifier,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		roleRepo:         roleRepo,
		refreshTokenRepo: refreshTokenRepo,
		notifier:         notifier,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks registration fields
func (in *RegisterInput) Validate() error {
	var errs validation.Errors
	errs.Require("email", in.Email, "Email is required")
	errs.Email("email", in.Email, "Invalid Email Address")
	errs.Require("password", in.Password, "Password is required")
	errs.MinLen("password", in.Password, 8, "Password must be at least 8 characters")
	return domain.NewValidationError(errs)
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks login fields. Format failures deliberately carry the
// same message as credential failures so responses do not reveal whether
// an account exists.
func (in *LoginInput) Validate() error {
	var errs validation.Errors
	errs.Require("email", in.Email, "Email is required")
	errs.Email("email", in.Email, "Invalid credentials")
	errs.Require("password", in.Password, "Invalid credentials")
	errs.MinLen("password", in.Password, 8, "Invalid credentials")
	return domain.NewValidationError(errs)
}

// VerifyEmailInput represents email verification input
type VerifyEmailInput struct {
	Token string `json:"token"`
}

// Validate checks the verification token is present
func (in *VerifyEmailInput) Validate() error {
	var errs validation.Errors
	errs.Require("token", in.Token, "Token is required.")
	return domain.NewValidationError(errs)
}

// RefreshTokenInput represents refresh input
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken"`
}

// Validate checks the refresh token is present
func (in *RefreshTokenInput) Validate() error {
	var errs validation.Errors
	errs.Require("refreshToken", in.RefreshToken, "Refresh token is required.")
	return domain.NewValidationError(errs)
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	UserID       string    `json:"uid"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	Email        string    `json:"email"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Register registers a new user, grants the default role and issues a
// token pair. The verification token goes out through the notifier.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// 2. Reject duplicate email
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// 3. Hash password and create user with a fresh verification token
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	verificationToken := uuid.New().String()
	user := &models.User{
		Email:                  input.Email,
		PasswordHash:           hashed,
		IsEmailVerified:        false,
		EmailVerificationToken: &verificationToken,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 4. Assign the default User role
	role, err := s.roleRepo.GetByName(ctx, models.RoleUser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotConfigured
		}
		return nil, err
	}
	if err := s.roleRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
		return nil, err
	}

	// 5. Issue token pair with the freshly assigned roles
	roles, err := s.roleRepo.GetRoleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	tokens, err := s.generateTokenPair(ctx, user.ID, user.Email, roles)
	if err != nil {
		return nil, err
	}

	// 6. Emit the verification token; delivery failures never fail
	// the registration itself
	if notifyErr := s.notifier.NotifyUserRegistered(ctx, user.ID, user.Email, verificationToken); notifyErr != nil {
		log.Printf("⚠️ Verification notification failed for %s: %v", user.Email, notifyErr)
	}

	log.Printf("✅ User registered: %s", user.Email)

	return &AuthResponse{
		UserID:       user.ID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Email:        user.Email,
		Roles:        roles,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}, nil
}

// Login authenticates a user. Absent users and wrong passwords produce
// the same error.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// 2. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Load roles and issue token pair
	roles, err := s.roleRepo.GetRoleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	tokens, err := s.generateTokenPair(ctx, user.ID, user.Email, roles)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		UserID:       user.ID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Email:        user.Email,
		Roles:        roles,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}, nil
}

// VerifyEmailResult reports whether the call verified the email or found
// it already verified
type VerifyEmailResult struct {
	AlreadyVerified bool
}

// VerifyEmail marks a user's email verified and clears the token.
// A second call for an already verified user succeeds without mutation.
func (s *AuthService) VerifyEmail(ctx context.Context, input *VerifyEmailInput) (*VerifyEmailResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByVerificationToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidVerifyToken
		}
		return nil, err
	}

	if user.IsEmailVerified {
		return &VerifyEmailResult{AlreadyVerified: true}, nil
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Email verified: %s", user.Email)
	return &VerifyEmailResult{AlreadyVerified: false}, nil
}

// RefreshToken rotates a refresh token: the presented value is revoked
// before a new pair is minted, so each value redeems at most once even
// under concurrent duplicate requests.
func (s *AuthService) RefreshToken(ctx context.Context, input *RefreshTokenInput) (*TokenPair, error) {
	// 1. Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// 2. Look up the active record; expired tokens are treated exactly
	// like unknown ones
	record, err := s.refreshTokenRepo.GetActiveByToken(ctx, input.RefreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, err
	}
	if record.IsExpired() {
		return nil, domain.ErrRefreshTokenInvalid
	}

	// 3. Revoke unconditionally before minting. The conditional update
	// admits exactly one winner per token value; losers get the same
	// error as an unknown token.
	revoked, err := s.refreshTokenRepo.Revoke(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	if !revoked {
		return nil, domain.ErrRefreshTokenInvalid
	}

	// 4. Re-derive roles and issue a brand-new pair
	roles, err := s.roleRepo.GetRoleNames(ctx, record.UserID)
	if err != nil {
		return nil, err
	}
	tokens, err := s.generateTokenPair(ctx, record.UserID, record.User.Email, roles)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", record.User.Email)
	return tokens, nil
}

// generateTokenPair mints an access token and an opaque refresh token.
// The refresh record is durably stored before the pair is returned; on
// any failure no tokens are handed out.
func (s *AuthService) generateTokenPair(ctx context.Context, userID, email string, roles []string) (*TokenPair, error) {
	auth := s.cfg.Auth
	if auth.Key == "" || auth.AccessTokenMins <= 0 || auth.RefreshTokenSize <= 0 || auth.RefreshTokenDays <= 0 {
		return nil, domain.ErrSigningConfigIncomplete
	}

	accessToken, err := jwt.GenerateAccessToken(
		userID,
		email,
		roles,
		auth.Key,
		auth.Issuer,
		auth.Audience,
		auth.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := token.NewOpaque(auth.RefreshTokenSize)
	if err != nil {
		return nil, err
	}

	record := &models.RefreshToken{
		Token:     refreshToken,
		UserID:    userID,
		ExpiresAt: jwt.GetExpiryTime(auth.RefreshTokenDays),
		IsRevoked: false,
	}
	if err := s.refreshTokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateAccessToken validates an access token against the configured
// key, issuer and audience
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.Auth.Key, s.cfg.Auth.Issuer, s.cfg.Auth.Audience)
}
