package config

import (
	"fmt"
	"log"
	"strings"

	"eventhub/internal/adapters/persistence/models"
	"eventhub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders. Seeding is idempotent; a second run inserts
// nothing.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedRoles(); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	if err := s.seedEventTypes(); err != nil {
		return fmt.Errorf("failed to seed event types: %w", err)
	}
	if err := s.seedFirstAdmin(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedRoles inserts the fixed role catalog. The catalog is immutable
// after seeding; the rest of the system looks roles up by name.
func (s *Seeder) seedRoles() error {
	roles := []string{models.RoleAdmin, models.RoleManager, models.RoleUser}
	for _, name := range roles {
		var count int64
		if err := s.db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.db.Create(&models.Role{Name: name}).Error; err != nil {
			return err
		}
	}
	log.Printf("✅ Seeded roles: %s", strings.Join(roles, ", "))
	return nil
}

// seedEventTypes inserts the event genre catalog
func (s *Seeder) seedEventTypes() error {
	eventTypes := []string{"Music", "Sports", "Conference", "Workshop"}
	for _, name := range eventTypes {
		var count int64
		if err := s.db.Model(&models.EventType{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.db.Create(&models.EventType{Name: name}).Error; err != nil {
			return err
		}
	}
	log.Printf("✅ Seeded event types: %s", strings.Join(eventTypes, ", "))
	return nil
}

// seedFirstAdmin creates the bootstrap admin from ADMIN_EMAIL and
// ADMIN_PASSWORD. Skipped when credentials are not provided or the
// account already exists.
func (s *Seeder) seedFirstAdmin() error {
	email := strings.TrimSpace(s.cfg.Admin.Email)
	pass := s.cfg.Admin.Password
	if email == "" || pass == "" {
		return fmt.Errorf("seed admin credentials not provided")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(pass)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:           email,
		PasswordHash:    hashed,
		IsEmailVerified: true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	var adminRole, userRole models.Role
	if err := s.db.Where("name = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		return fmt.Errorf("admin role missing, seed roles first: %w", err)
	}
	if err := s.db.Where("name = ?", models.RoleUser).First(&userRole).Error; err != nil {
		return fmt.Errorf("user role missing, seed roles first: %w", err)
	}

	links := []models.UserRole{
		{UserID: admin.ID, RoleID: adminRole.ID},
		{UserID: admin.ID, RoleID: userRole.ID},
	}
	if err := s.db.Create(&links).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded first admin: %s", email)
	return nil
}
