package repositories

import (
	"context"

	"eventhub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
}

// RoleRepository defines role catalog access and role assignment
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*models.Role, error)
	GetRoleNames(ctx context.Context, userID string) ([]string, error)
	AssignRole(ctx context.Context, userID, roleID string) error
	AssignRoles(ctx context.Context, userID string, roleIDs []string) error
	HasRole(ctx context.Context, userID, roleID string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetActiveByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	// Revoke marks a token revoked only if it is still active and reports
	// whether this call performed the revocation. Exactly one of two
	// concurrent calls for the same token observes true.
	Revoke(ctx context.Context, id string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// EventTypeRepository defines read access to the seeded event type catalog
type EventTypeRepository interface {
	GetByID(ctx context.Context, id string) (*models.EventType, error)
}

// EventRepository defines event repository interface
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetAll(ctx context.Context) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	ReplaceTickets(ctx context.Context, eventID string, tickets []models.Ticket) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
