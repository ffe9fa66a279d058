package repositories

import (
	"context"

	"eventhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// roleRepository implements RoleRepository interface
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// GetByName gets a role from the seeded catalog by name
func (r *roleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRoleNames returns the role names held by a user
func (r *roleRepository) GetRoleNames(ctx context.Context, userID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// AssignRole inserts a single user-role link
func (r *roleRepository) AssignRole(ctx context.Context, userID, roleID string) error {
	return r.db.WithContext(ctx).Create(&models.UserRole{
		UserID: userID,
		RoleID: roleID,
	}).Error
}

// AssignRoles inserts user-role links in a single batch
func (r *roleRepository) AssignRoles(ctx context.Context, userID string, roleIDs []string) error {
	if len(roleIDs) == 0 {
		return nil
	}
	links := make([]models.UserRole, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		links = append(links, models.UserRole{UserID: userID, RoleID: roleID})
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

// HasRole checks whether a user already holds a role
func (r *roleRepository) HasRole(ctx context.Context, userID, roleID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&count).Error
	return count > 0, err
}
