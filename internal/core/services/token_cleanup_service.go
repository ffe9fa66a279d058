package services

import (
	"context"
	"log"
	"time"

	"eventhub/internal/adapters/persistence/repositories"
)

// TokenCleanupService deletes expired refresh tokens in the background.
// Revoked-but-unexpired rows are kept so a replayed value keeps failing
// until its natural expiry.
type TokenCleanupService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	interval         time.Duration
	stopChan         chan struct{}
}

// NewTokenCleanupService creates a new cleanup service
func NewTokenCleanupService(refreshTokenRepo repositories.RefreshTokenRepository) *TokenCleanupService {
	return &TokenCleanupService{
		refreshTokenRepo: refreshTokenRepo,
		interval:         time.Hour,
		stopChan:         make(chan struct{}),
	}
}

// Start launches the cleanup goroutine
func (s *TokenCleanupService) Start() {
	log.Println("🚀 TokenCleanupService started")
	go s.run()
}

// Stop gracefully stops the cleanup goroutine
func (s *TokenCleanupService) Stop() {
	close(s.stopChan)
	log.Println("🛑 TokenCleanupService stopped")
}

func (s *TokenCleanupService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopChan:
			return
		}
	}
}

func (s *TokenCleanupService) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Refresh token cleanup error: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🧹 Deleted %d expired refresh tokens", deleted)
	}
}
