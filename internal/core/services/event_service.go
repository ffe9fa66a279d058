package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eventhub/internal/adapters/persistence/models"
	"eventhub/internal/adapters/persistence/repositories"
	"eventhub/internal/core/domain"
	"eventhub/internal/pkg/validation"

	"gorm.io/gorm"
)

// Actor is the authenticated caller derived from verified access-token
// claims. Roles are trusted as-of token issuance; a role change only
// shows up here after the caller obtains a fresh token.
type Actor struct {
	UserID string
	Roles  []string
}

// HasRole reports whether the actor holds the named role
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor holds the Admin role
func (a Actor) IsAdmin() bool {
	return a.HasRole(models.RoleAdmin)
}

// EventService handles event CRUD and the ownership checks that gate
// mutations
type EventService struct {
	eventRepo     repositories.EventRepository
	eventTypeRepo repositories.EventTypeRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo repositories.EventRepository, eventTypeRepo repositories.EventTypeRepository) *EventService {
	return &EventService{
		eventRepo:     eventRepo,
		eventTypeRepo: eventTypeRepo,
	}
}

// TicketInput describes one ticket class on a create or patch request
type TicketInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Count       int     `json:"count"`
}

func (t *TicketInput) validate(prefix string, errs *validation.Errors) {
	errs.Require(prefix+".name", t.Name, "Ticket Name is required.")
	errs.MaxLen(prefix+".name", t.Name, 255, "Ticket Name must not exceed 255 characters.")
	errs.Require(prefix+".description", t.Description, "Ticket Description is required.")
	errs.MaxLen(prefix+".description", t.Description, 3000, "Ticket Description must not exceed 3,000 characters.")
	if t.Price <= 0 {
		errs.Add(prefix+".price", "Ticket Price is required.")
	}
	if t.Count <= 0 {
		errs.Add(prefix+".count", "Ticket Count is required.")
	}
}

// CreateEventInput represents event creation input
type CreateEventInput struct {
	Name         string        `json:"name"`
	Location     string        `json:"location"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	Description  string        `json:"description"`
	EventTypeID  string        `json:"event_type_id"`
	IsPublished  bool          `json:"is_published"`
	BannerURL    *string       `json:"banner_url"`
	MaxAttendees *int          `json:"max_attendees"`
	Tags         []string      `json:"tags"`
	Tickets      []TicketInput `json:"tickets"`
}

// Validate checks event creation fields
func (in *CreateEventInput) Validate() error {
	var errs validation.Errors
	errs.Require("name", in.Name, "Name is required.")
	errs.MaxLen("name", in.Name, 255, "Name must not exceed 255 characters.")
	errs.Require("location", in.Location, "Location is required.")
	errs.MaxLen("location", in.Location, 255, "Location must not exceed 255 characters.")
	if in.StartTime.IsZero() {
		errs.Add("start_time", "Start time is required.")
	}
	if in.EndTime.IsZero() {
		errs.Add("end_time", "End time is required.")
	}
	errs.Require("description", in.Description, "Description is required.")
	errs.MaxLen("description", in.Description, 3000, "Description must not exceed 3,000 characters.")
	errs.Require("event_type_id", in.EventTypeID, "Event Type ID is required.")
	if in.MaxAttendees == nil || *in.MaxAttendees <= 0 {
		errs.Add("max_attendees", "Max attendees count is required.")
	}
	if len(in.Tickets) == 0 {
		errs.Add("tickets", "Tickets are required.")
	}
	for i := range in.Tickets {
		in.Tickets[i].validate(fmt.Sprintf("tickets[%d]", i), &errs)
	}
	return domain.NewValidationError(errs)
}

// PatchEventInput represents a partial event update; nil fields are
// left untouched
type PatchEventInput struct {
	Name         *string        `json:"name"`
	Location     *string        `json:"location"`
	StartTime    *time.Time     `json:"start_time"`
	EndTime      *time.Time     `json:"end_time"`
	Description  *string        `json:"description"`
	EventTypeID  *string        `json:"event_type_id"`
	IsPublished  *bool          `json:"is_published"`
	BannerURL    *string        `json:"banner_url"`
	MaxAttendees *int           `json:"max_attendees"`
	Tags         *[]string      `json:"tags"`
	Tickets      *[]TicketInput `json:"tickets"`
}

// Validate checks patch fields
func (in *PatchEventInput) Validate() error {
	var errs validation.Errors
	if in.Name != nil {
		errs.MaxLen("name", *in.Name, 255, "Name must not exceed 255 characters.")
	}
	if in.Location != nil {
		errs.MaxLen("location", *in.Location, 255, "Location must not exceed 255 characters.")
	}
	if in.Description != nil {
		errs.MaxLen("description", *in.Description, 3000, "Description must not exceed 3,000 characters.")
	}
	if in.Tickets != nil {
		tickets := *in.Tickets
		for i := range tickets {
			tickets[i].validate(fmt.Sprintf("tickets[%d]", i), &errs)
		}
	}
	return domain.NewValidationError(errs)
}

// GetAll lists every event
func (s *EventService) GetAll(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

// GetByID returns a single event with its tickets, type and creator
func (s *EventService) GetByID(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// Create creates an event with its tickets, owned by the actor
func (s *EventService) Create(ctx context.Context, actor Actor, input *CreateEventInput) (*models.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.eventTypeRepo.GetByID(ctx, input.EventTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventTypeInvalid
		}
		return nil, err
	}

	tickets := make([]models.Ticket, 0, len(input.Tickets))
	for _, t := range input.Tickets {
		tickets = append(tickets, models.Ticket{
			Name:        t.Name,
			Description: t.Description,
			Price:       t.Price,
			Count:       t.Count,
		})
	}

	event := &models.Event{
		Name:            input.Name,
		Location:        input.Location,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Description:     input.Description,
		EventTypeID:     input.EventTypeID,
		IsPublished:     input.IsPublished,
		BannerURL:       input.BannerURL,
		MaxAttendees:    input.MaxAttendees,
		Tags:            input.Tags,
		CreatedByUserID: actor.UserID,
		Tickets:         tickets,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	log.Printf("✅ Event created: %s by %s", event.Name, actor.UserID)
	return s.eventRepo.GetByID(ctx, event.ID)
}

// Patch partially updates an event. Only the Admin role or the original
// creator may modify a specific event; providing tickets replaces the
// whole ticket set.
func (s *EventService) Patch(ctx context.Context, actor Actor, eventID string, input *PatchEventInput) (*models.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}

	if !actor.IsAdmin() && event.CreatedByUserID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	if input.EventTypeID != nil {
		if _, err := s.eventTypeRepo.GetByID(ctx, *input.EventTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrEventTypeInvalid
			}
			return nil, err
		}
	}

	if input.Name != nil {
		event.Name = *input.Name
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.StartTime != nil {
		event.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = *input.EndTime
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.EventTypeID != nil {
		event.EventTypeID = *input.EventTypeID
	}
	if input.IsPublished != nil {
		event.IsPublished = *input.IsPublished
	}
	if input.BannerURL != nil {
		event.BannerURL = input.BannerURL
	}
	if input.MaxAttendees != nil {
		event.MaxAttendees = input.MaxAttendees
	}
	if input.Tags != nil {
		event.Tags = *input.Tags
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	if input.Tickets != nil {
		tickets := make([]models.Ticket, 0, len(*input.Tickets))
		for _, t := range *input.Tickets {
			tickets = append(tickets, models.Ticket{
				Name:        t.Name,
				Description: t.Description,
				Price:       t.Price,
				Count:       t.Count,
			})
		}
		if err := s.eventRepo.ReplaceTickets(ctx, event.ID, tickets); err != nil {
			return nil, err
		}
	}

	return s.eventRepo.GetByID(ctx, event.ID)
}

// Delete removes one event, subject to the same Admin-or-owner check as
// Patch
func (s *EventService) Delete(ctx context.Context, actor Actor, eventID string) (string, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrEventNotFound
		}
		return "", err
	}

	if !actor.IsAdmin() && event.CreatedByUserID != actor.UserID {
		return "", domain.ErrForbidden
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return "", err
	}

	log.Printf("✅ Event deleted: %s", event.Name)
	return event.Name, nil
}

// DeleteAll removes every event. Route-level middleware restricts this
// to Admin callers.
func (s *EventService) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := s.eventRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, domain.ErrNoEvents
	}

	log.Printf("✅ All %d events deleted", deleted)
	return deleted, nil
}
