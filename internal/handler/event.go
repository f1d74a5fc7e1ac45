package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avesta-dev/campus-connect/internal/model"
	"github.com/avesta-dev/campus-connect/internal/queue"
	"github.com/avesta-dev/campus-connect/internal/repository"
	queue_publisher "github.com/avesta-dev/campus-connect/internal/service"
)

// EventHandler exposes event creation, browsing and seat registration.
// Creation is restricted to admins by route middleware; registration derives
// the registrant from the authenticated context, never from the body.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(events *repository.EventRepo) *EventHandler {
	if events == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{Events: events}
}

type createEventReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	StartsAt    string `json:"starts_at"` // RFC3339
	SeatCount   uint32 `json:"seat_capacity"`
}

type eventResp struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Venue          string `json:"venue"`
	StartsAt       string `json:"starts_at"`
	SeatCapacity   uint32 `json:"seat_capacity"`
	SeatsRemaining uint32 `json:"seats_remaining"`
}

func toEventResp(e model.Event) eventResp {
	return eventResp{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		Venue:          e.Venue,
		StartsAt:       e.StartsAt.UTC().Format(time.RFC3339),
		SeatCapacity:   e.SeatCapacity,
		SeatsRemaining: e.SeatsRemaining,
	}
}

// Create handles POST /v1/events (ADMIN only).  seat_capacity may be zero,
// which produces an event nobody can register for.
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be RFC3339"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := model.Event{
		Title:          req.Title,
		Description:    req.Description,
		Venue:          req.Venue,
		StartsAt:       startsAt,
		SeatCapacity:   req.SeatCount,
		SeatsRemaining: req.SeatCount,
	}
	id, err := h.Events.Create(ctx, &e)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	e.ID = id
	return c.JSON(http.StatusCreated, toEventResp(e))
}

// List handles GET /v1/events.
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.Events.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResp(e))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	e, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toEventResp(e))
}

// Register handles POST /v1/events/:id/register.  The repository performs
// the capacity check and the decrement as one atomic conditional update, so
// this handler only translates outcomes:
//
//	201 – seat booked, body carries the updated remaining count
//	404 – event id unknown
//	409 – this user already holds a seat on the event
//	400 – event is sold out
//
// SoldOut and AlreadyRegistered are terminal and never retried here.
func (h *EventHandler) Register(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	remaining, err := h.Events.Register(ctx, eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, repository.ErrAlreadyRegistered):
			return c.JSON(http.StatusConflict, echo.Map{"error": "already registered"})
		case errors.Is(err, repository.ErrEventSoldOut):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "event sold out"})
		default:
			log.Printf("event register failed: event_id=%d user_id=%d err=%v", eventID, userID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
		}
	}

	// Confirmation event for downstream consumers; a publish failure is
	// logged inside the publisher and never fails the request.
	if reg, regErr := h.Events.RegistrationByEventAndUser(ctx, eventID, userID); regErr == nil {
		e, _ := h.Events.GetByID(ctx, eventID)
		_ = queue_publisher.PublishRegistrationConfirmed(ctx, queue.RegistrationConfirmedEvent{
			RegistrationID: reg.ID,
			EventID:        eventID,
			UserID:         userID,
			EventTitle:     e.Title,
			SeatsRemaining: remaining,
			ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"event_id":        eventID,
		"seats_remaining": remaining,
	})
}

// MyRegistrations handles GET /v1/my-registrations.
func (h *EventHandler) MyRegistrations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.Events.ListRegisteredByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list registrations failed"})
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResp(e))
	}
	return c.JSON(http.StatusOK, out)
}
