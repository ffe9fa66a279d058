package repositories

import (
	"context"
	"time"

	"eventhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// refreshTokenRepository implements RefreshTokenRepository interface
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create creates a new refresh token
func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetActiveByToken gets a non-revoked refresh token by its opaque value,
// with the owning user preloaded
func (r *refreshTokenRepository) GetActiveByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var record models.RefreshToken
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("token = ?", token).
		Where("is_revoked = ?", false).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Revoke marks a token as revoked with a conditional single-row update.
// The is_revoked guard makes concurrent redemptions of one token resolve
// to exactly one winner.
func (r *refreshTokenRepository) Revoke(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ? AND is_revoked = ?", id, false).
		Update("is_revoked", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// DeleteExpired deletes all expired tokens (cleanup job)
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
