package handlers

import (
	"errors"
	"fmt"

	"eventhub/internal/core/domain"
	"eventhub/internal/core/services"
	"eventhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles event endpoints
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func actorFromContext(c *fiber.Ctx) services.Actor {
	actor := services.Actor{}
	if userID, ok := c.Locals("userID").(string); ok {
		actor.UserID = userID
	}
	if roles, ok := c.Locals("roles").([]string); ok {
		actor.Roles = roles
	}
	return actor
}

// GetAll lists all events
// @Summary List events
// @Description Return every event with its tickets, type and creator
// @Tags Events
// @Produce json
// @Success 200 {array} models.EventResponse
// @Router /events [get]
func (h *EventHandler) GetAll(c *fiber.Ctx) error {
	events, err := h.eventService.GetAll(c.Context())
	if err != nil {
		return err
	}

	result := make([]interface{}, 0, len(events))
	for _, event := range events {
		result = append(result, event.ToResponse())
	}
	return response.OK(c, result)
}

// GetByID returns a single event
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.EventResponse
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) GetByID(c *fiber.Ctx) error {
	event, err := h.eventService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return err
	}
	return response.OK(c, event.ToResponse())
}

// Create creates a new event
// @Summary Create event
// @Description Create an event with its ticket tiers. Requires the Admin or Manager role.
// @Tags Events
// @Accept json
// @Produce json
// @Param body body services.CreateEventInput true "Event data"
// @Success 201 {object} models.EventResponse
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var input services.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	event, err := h.eventService.Create(c.Context(), actorFromContext(c), &input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Fields)
		}
		if errors.Is(err, domain.ErrEventTypeInvalid) {
			return response.BadRequest(c, "Invalid Event Type ID.")
		}
		return err
	}

	return response.Created(c, "/events/"+event.ID, event.ToResponse())
}

// Patch partially updates an event
// @Summary Patch event
// @Description Update the supplied fields of an event. Admins may patch any event, Managers only their own.
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param body body services.PatchEventInput true "Fields to update"
// @Success 200 {object} models.EventResponse
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /events/{id} [patch]
func (h *EventHandler) Patch(c *fiber.Ctx) error {
	var input services.PatchEventInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	event, err := h.eventService.Patch(c.Context(), actorFromContext(c), c.Params("id"), &input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Fields)
		}
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			return response.NotFound(c, "Event not found")
		case errors.Is(err, domain.ErrEventTypeInvalid):
			return response.BadRequest(c, "Invalid Event Type ID.")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You are not allowed to modify this event")
		default:
			return err
		}
	}

	return response.OK(c, event.ToResponse())
}

// Delete removes a single event
// @Summary Delete event
// @Description Delete an event and its tickets. Admins may delete any event, Managers only their own.
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	name, err := h.eventService.Delete(c.Context(), actorFromContext(c), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			return response.NotFound(c, "Event not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You are not allowed to modify this event")
		default:
			return err
		}
	}

	return response.Success(c, fmt.Sprintf("The %s was deleted.", name), nil)
}

// DeleteAll removes every event
// @Summary Delete all events
// @Description Delete every event and their tickets. Requires the Admin role.
// @Tags Events
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /events [delete]
func (h *EventHandler) DeleteAll(c *fiber.Ctx) error {
	deleted, err := h.eventService.DeleteAll(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoEvents) {
			return response.NotFound(c, "No events found")
		}
		return err
	}

	return response.Success(c, fmt.Sprintf("All %d events have been deleted.", deleted), nil)
}
