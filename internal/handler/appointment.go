package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avesta-dev/campus-connect/internal/model"
	"github.com/avesta-dev/campus-connect/internal/repository"
)

// AppointmentHandler exposes counseling appointment booking.  All operations
// are scoped to the authenticated student; there is no way to see or cancel
// someone else's appointment.
type AppointmentHandler struct {
	Appointments *repository.AppointmentRepo
}

func NewAppointmentHandler(appts *repository.AppointmentRepo) *AppointmentHandler {
	if appts == nil {
		panic("nil repository passed to NewAppointmentHandler")
	}
	return &AppointmentHandler{Appointments: appts}
}

type createAppointmentReq struct {
	CounselorName string `json:"counselor_name"`
	Topic         string `json:"topic"`
	ScheduledAt   string `json:"scheduled_at"` // RFC3339
}

type appointmentResp struct {
	ID            uint64 `json:"id"`
	CounselorName string `json:"counselor_name"`
	Topic         string `json:"topic"`
	ScheduledAt   string `json:"scheduled_at"`
	CreatedAt     string `json:"created_at"`
}

// Create handles POST /v1/appointments.
func (h *AppointmentHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createAppointmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.CounselorName = strings.TrimSpace(req.CounselorName)
	if req.CounselorName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "counselor_name required"})
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "scheduled_at must be RFC3339"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a := model.Appointment{
		StudentID:     userID,
		CounselorName: req.CounselorName,
		Topic:         req.Topic,
		ScheduledAt:   scheduledAt,
	}
	id, err := h.Appointments.Create(ctx, &a)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create appointment failed"})
	}
	return c.JSON(http.StatusCreated, appointmentResp{
		ID:            id,
		CounselorName: a.CounselorName,
		Topic:         a.Topic,
		ScheduledAt:   scheduledAt.UTC().Format(time.RFC3339),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}

// List handles GET /v1/appointments and returns only the caller's bookings.
func (h *AppointmentHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	appts, err := h.Appointments.ListByStudent(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list appointments failed"})
	}
	out := make([]appointmentResp, 0, len(appts))
	for _, a := range appts {
		out = append(out, appointmentResp{
			ID:            a.ID,
			CounselorName: a.CounselorName,
			Topic:         a.Topic,
			ScheduledAt:   a.ScheduledAt.UTC().Format(time.RFC3339),
			CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/appointments/:id, scoped to the booking student.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.Appointments.DeleteByIDAndStudent(c.Request().Context(), id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
