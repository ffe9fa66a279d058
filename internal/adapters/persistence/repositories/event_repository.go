package repositories

import (
	"context"

	"eventhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// eventTypeRepository implements EventTypeRepository interface
type eventTypeRepository struct {
	db *gorm.DB
}

// NewEventTypeRepository creates a new event type repository
func NewEventTypeRepository(db *gorm.DB) EventTypeRepository {
	return &eventTypeRepository{db: db}
}

// GetByID gets an event type by ID
func (r *eventTypeRepository) GetByID(ctx context.Context, id string) (*models.EventType, error) {
	var eventType models.EventType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&eventType).Error
	if err != nil {
		return nil, err
	}
	return &eventType, nil
}

// eventRepository implements EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event with its tickets
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByID gets an event with tickets, type and creator preloaded
func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Tickets").
		Preload("EventType").
		Preload("CreatedByUser").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetAll lists all events with tickets, type and creator preloaded
func (r *eventRepository) GetAll(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.WithContext(ctx).
		Preload("Tickets").
		Preload("EventType").
		Preload("CreatedByUser").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Update persists changed event fields without touching associations
func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(event).Error
}

// ReplaceTickets removes an event's existing tickets and inserts new ones
// in a single transaction
func (r *eventRepository) ReplaceTickets(ctx context.Context, eventID string, tickets []models.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.Ticket{}).Error; err != nil {
			return err
		}
		if len(tickets) == 0 {
			return nil
		}
		for i := range tickets {
			tickets[i].EventID = eventID
		}
		return tx.Create(&tickets).Error
	})
}

// Delete removes an event and its tickets
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Ticket{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Event{}).Error
	})
}

// DeleteAll removes every event and returns how many were deleted
func (r *eventRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Ticket{}).Error; err != nil {
			return err
		}
		result := tx.Where("1 = 1").Delete(&models.Event{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}
