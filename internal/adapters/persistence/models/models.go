package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role catalog names, seeded at startup and immutable afterwards
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID                     string     `gorm:"type:char(36);primaryKey" json:"id"`
	Email                  string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash           string     `gorm:"size:255;not null" json:"-"`
	IsEmailVerified        bool       `gorm:"default:false" json:"is_email_verified"`
	EmailVerificationToken *string    `gorm:"size:64;index" json:"-"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	UserRoles              []UserRole `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// RoleNames returns the names of the user's loaded roles
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.UserRoles))
	for _, ur := range u.UserRoles {
		if ur.Role.Name != "" {
			names = append(names, ur.Role.Name)
		}
	}
	return names
}

// Role represents the fixed role catalog (Admin, Manager, User)
type Role struct {
	ID   string `gorm:"type:char(36);primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:64;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// UserRole links users to roles (composite primary key)
type UserRole struct {
	UserID string `gorm:"type:char(36);primaryKey" json:"user_id"`
	RoleID string `gorm:"type:char(36);primaryKey" json:"role_id"`
	Role   Role   `gorm:"foreignKey:RoleID" json:"-"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// RefreshToken represents refresh_tokens table.
// The opaque token value is stored as issued and looked up by value.
type RefreshToken struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;size:255;not null" json:"-"`
	UserID    string    `gorm:"type:char(36);index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsRevoked bool      `gorm:"default:false" json:"is_revoked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == "" {
		rt.ID = uuid.New().String()
	}
	return nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Event Tables
// ============================================================

// EventType represents the seeded event genre catalog
type EventType struct {
	ID   string `gorm:"type:char(36);primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:64;not null" json:"name"`
}

func (EventType) TableName() string {
	return "event_types"
}

func (et *EventType) BeforeCreate(tx *gorm.DB) error {
	if et.ID == "" {
		et.ID = uuid.New().String()
	}
	return nil
}

// Event represents events table
type Event struct {
	ID              string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Location        string    `gorm:"size:255" json:"location"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Description     string    `gorm:"type:text" json:"description"`
	EventTypeID     string    `gorm:"type:char(36);not null;index" json:"event_type_id"`
	EventType       EventType `gorm:"foreignKey:EventTypeID" json:"-"`
	IsPublished     bool      `gorm:"default:false" json:"is_published"`
	BannerURL       *string   `gorm:"size:512" json:"banner_url"`
	MaxAttendees    *int      `json:"max_attendees"`
	Tags            []string  `gorm:"serializer:json" json:"tags"`
	CreatedByUserID string    `gorm:"type:char(36);not null;index" json:"created_by_user_id"`
	CreatedByUser   User      `gorm:"foreignKey:CreatedByUserID" json:"-"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Tickets         []Ticket  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"tickets"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// EventResponse DTO with catalog and creator fields flattened
type EventResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Description  string    `json:"description"`
	EventType    string    `json:"event_type"`
	IsPublished  bool      `json:"is_published"`
	BannerURL    *string   `json:"banner_url"`
	MaxAttendees *int      `json:"max_attendees"`
	Tags         []string  `json:"tags"`
	CreatedBy    string    `json:"created_by"`
	Tickets      []Ticket  `json:"tickets"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToResponse flattens preloaded associations into the API shape
func (e *Event) ToResponse() *EventResponse {
	return &EventResponse{
		ID:           e.ID,
		Name:         e.Name,
		Location:     e.Location,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Description:  e.Description,
		EventType:    e.EventType.Name,
		IsPublished:  e.IsPublished,
		BannerURL:    e.BannerURL,
		MaxAttendees: e.MaxAttendees,
		Tags:         e.Tags,
		CreatedBy:    e.CreatedByUser.Email,
		Tickets:      e.Tickets,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// Ticket represents a ticket class sold for an event (VIP, Regular, ...)
type Ticket struct {
	ID          string  `gorm:"type:char(36);primaryKey" json:"id"`
	EventID     string  `gorm:"type:char(36);not null;index" json:"event_id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price"`
	Count       int     `json:"count"`
}

func (Ticket) TableName() string {
	return "tickets"
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// AutoMigrate creates or updates all application tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Role{},
		&UserRole{},
		&RefreshToken{},
		&EventType{},
		&Event{},
		&Ticket{},
	)
}
