package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"eventhub/internal/config"
	"eventhub/internal/core/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		Auth: config.AuthConfig{
			Key:              "test-signing-key",
			Issuer:           "eventhub-test",
			Audience:         "eventhub-clients",
			AccessTokenMins:  15,
			RefreshTokenSize: 32,
			RefreshTokenDays: 7,
		},
	}
}

type authFixture struct {
	service  *AuthService
	users    *fakeUserRepo
	roles    *fakeRoleRepo
	refresh  *fakeRefreshTokenRepo
	notifier *fakeNotifier
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	roles := newFakeRoleRepo("Admin", "Manager", "User")
	refresh := newFakeRefreshTokenRepo(users)
	notifier := &fakeNotifier{}
	return &authFixture{
		service:  NewAuthService(users, roles, refresh, notifier, testConfig()),
		users:    users,
		roles:    roles,
		refresh:  refresh,
		notifier: notifier,
	}
}

func TestRegisterIssuesTokensAndDefaultRole(t *testing.T) {
	f := newAuthFixture()

	result, err := f.service.Register(context.Background(), &RegisterInput{
		Email:    "new@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected a token pair, got %+v", result)
	}
	if len(result.Roles) != 1 || result.Roles[0] != "User" {
		t.Fatalf("expected default User role, got %v", result.Roles)
	}

	claims, err := f.service.ValidateAccessToken(result.AccessToken)
	if err != nil {
		t.Fatalf("access token did not validate: %v", err)
	}
	if claims.UserID() != result.UserID {
		t.Fatalf("expected subject %s, got %s", result.UserID, claims.UserID())
	}
	if claims.Email != "new@example.com" {
		t.Fatalf("expected email claim, got %s", claims.Email)
	}
	if !claims.HasRole("User") {
		t.Fatalf("expected User role claim, got %v", claims.Roles)
	}

	if f.notifier.calls != 1 {
		t.Fatalf("expected 1 notification, got %d", f.notifier.calls)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	input := &RegisterInput{Email: "dup@example.com", Password: "password123"}

	if _, err := f.service.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := f.service.Register(context.Background(), input); !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.Register(context.Background(), &RegisterInput{
		Email:    "not-an-email",
		Password: "short",
	})
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", ve.Fields)
	}
}

func TestRegisterMissingDefaultRole(t *testing.T) {
	users := newFakeUserRepo()
	roles := newFakeRoleRepo("Admin")
	refresh := newFakeRefreshTokenRepo(users)
	service := NewAuthService(users, roles, refresh, &fakeNotifier{}, testConfig())

	_, err := service.Register(context.Background(), &RegisterInput{
		Email:    "new@example.com",
		Password: "password123",
	})
	if !errors.Is(err, domain.ErrRoleNotConfigured) {
		t.Fatalf("expected ErrRoleNotConfigured, got %v", err)
	}
}

func TestRegisterSucceedsWhenNotifierFails(t *testing.T) {
	f := newAuthFixture()
	f.notifier.err = errors.New("broker down")

	result, err := f.service.Register(context.Background(), &RegisterInput{
		Email:    "new@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register should survive notifier failure: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected tokens despite notifier failure")
	}
}

func TestLoginMatchesRegisteredCredentials(t *testing.T) {
	f := newAuthFixture()

	registered, err := f.service.Register(context.Background(), &RegisterInput{
		Email:    "login@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := f.service.Login(context.Background(), &LoginInput{
		Email:    "login@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.UserID != registered.UserID {
		t.Fatalf("expected user %s, got %s", registered.UserID, result.UserID)
	}

	claims, err := f.service.ValidateAccessToken(result.AccessToken)
	if err != nil {
		t.Fatalf("access token did not validate: %v", err)
	}
	if claims.Email != "login@example.com" || !claims.HasRole("User") {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginUnknownUserAndWrongPassword(t *testing.T) {
	f := newAuthFixture()

	if _, err := f.service.Register(context.Background(), &RegisterInput{
		Email:    "known@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Unknown account and wrong password produce the same error
	if _, err := f.service.Login(context.Background(), &LoginInput{
		Email:    "unknown@example.com",
		Password: "password123",
	}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := f.service.Login(context.Background(), &LoginInput{
		Email:    "known@example.com",
		Password: "wrongpassword",
	}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestVerifyEmailIdempotent(t *testing.T) {
	f := newAuthFixture()

	if _, err := f.service.Register(context.Background(), &RegisterInput{
		Email:    "verify@example.com",
		Password: "password123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if len(f.notifier.tokens) != 1 {
		t.Fatalf("expected a verification token, got %v", f.notifier.tokens)
	}
	verificationToken := f.notifier.tokens[0]

	first, err := f.service.VerifyEmail(context.Background(), &VerifyEmailInput{Token: verificationToken})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if first.AlreadyVerified {
		t.Fatalf("first verification should not report already verified")
	}

	user, err := f.users.GetByEmail(context.Background(), "verify@example.com")
	if err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if !user.IsEmailVerified {
		t.Fatalf("expected user to be verified")
	}
	if user.EmailVerificationToken != nil {
		t.Fatalf("expected verification token to be cleared")
	}

	// The token is cleared, so a second redemption fails
	if _, err := f.service.VerifyEmail(context.Background(), &VerifyEmailInput{Token: verificationToken}); !errors.Is(err, domain.ErrInvalidVerifyToken) {
		t.Fatalf("expected ErrInvalidVerifyToken after token cleared, got %v", err)
	}
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	f := newAuthFixture()
	if _, err := f.service.VerifyEmail(context.Background(), &VerifyEmailInput{Token: "nope"}); !errors.Is(err, domain.ErrInvalidVerifyToken) {
		t.Fatalf("expected ErrInvalidVerifyToken, got %v", err)
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newAuthFixture()

	registered, err := f.service.Register(context.Background(), &RegisterInput{
		Email:    "rotate@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, err := f.service.RefreshToken(context.Background(), &RefreshTokenInput{RefreshToken: registered.RefreshToken})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if pair.RefreshToken == registered.RefreshToken {
		t.Fatalf("expected a new refresh token value")
	}

	claims, err := f.service.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("new access token did not validate: %v", err)
	}
	if claims.UserID() != registered.UserID || claims.Email != "rotate@example.com" {
		t.Fatalf("unexpected claims after refresh: %+v", claims)
	}

	// The old value is spent
	if _, err := f.service.RefreshToken(context.Background(), &RefreshTokenInput{RefreshToken: registered.RefreshToken}); !errors.Is(err, domain.ErrRefreshTokenInvalid) {
		t.Fatalf("expected ErrRefreshTokenInvalid on reuse, got %v", err)
	}
}

func TestRefreshTokenConcurrentRedemptionSingleWinner(t *testing.T) {
	f := newAuthFixture()

	registered, err := f.service.Register(context.Background(), &RegisterInput{
		Email:    "race@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.service.RefreshToken(context.Background(), &RefreshTokenInput{
				RefreshToken: registered.RefreshToken,
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else if !errors.Is(err, domain.ErrRefreshTokenInvalid) {
			t.Fatalf("unexpected error from loser: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}

func TestRefreshTokenExpired(t *testing.T) {
	f := newAuthFixture()

	registered, err := f.service.Register(context.Background(), &RegisterInput{
		Email:    "expired@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	f.refresh.expire(registered.RefreshToken)

	if _, err := f.service.RefreshToken(context.Background(), &RefreshTokenInput{RefreshToken: registered.RefreshToken}); !errors.Is(err, domain.ErrRefreshTokenInvalid) {
		t.Fatalf("expected ErrRefreshTokenInvalid for expired token, got %v", err)
	}
}

func TestRefreshTokenUnknownValue(t *testing.T) {
	f := newAuthFixture()
	if _, err := f.service.RefreshToken(context.Background(), &RefreshTokenInput{RefreshToken: "bogus"}); !errors.Is(err, domain.ErrRefreshTokenInvalid) {
		t.Fatalf("expected ErrRefreshTokenInvalid, got %v", err)
	}
}

func TestIncompleteSigningConfig(t *testing.T) {
	users := newFakeUserRepo()
	roles := newFakeRoleRepo("Admin", "Manager", "User")
	refresh := newFakeRefreshTokenRepo(users)
	cfg := testConfig()
	cfg.Auth.Key = ""
	service := NewAuthService(users, roles, refresh, &fakeNotifier{}, cfg)

	_, err := service.Register(context.Background(), &RegisterInput{
		Email:    "new@example.com",
		Password: "password123",
	})
	if !errors.Is(err, domain.ErrSigningConfigIncomplete) {
		t.Fatalf("expected ErrSigningConfigIncomplete, got %v", err)
	}
}

func TestNoTokensHandedOutWhenPersistenceFails(t *testing.T) {
	f := newAuthFixture()
	f.refresh.createErr = errors.New("disk full")

	result, err := f.service.Register(context.Background(), &RegisterInput{
		Email:    "new@example.com",
		Password: "password123",
	})
	if err == nil {
		t.Fatalf("expected error when refresh token cannot be stored")
	}
	if result != nil {
		t.Fatalf("expected no tokens, got %+v", result)
	}
	if f.refresh.activeCount() != 0 {
		t.Fatalf("expected no stored refresh tokens")
	}
}
