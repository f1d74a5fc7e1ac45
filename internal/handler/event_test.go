package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/avesta-dev/campus-connect/internal/repository"
)

func newEventHandler(t *testing.T) (*EventHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEventHandler(repository.NewEventRepo(db)), mock
}

// registerRequest drives POST /v1/events/:id/register as an authenticated
// user, the way the route middleware would set things up.
func registerRequest(t *testing.T, h *EventHandler, eventID string, userID uint64) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events/"+eventID+"/register", strings.NewReader(""))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events/:id/register")
	c.SetParamNames("id")
	c.SetParamValues(eventID)
	c.Set("user_id", userID)
	c.Set("role", "STUDENT")
	require.NoError(t, h.Register(c))
	return rec
}

func TestEventRegister_Success(t *testing.T) {
	h, mock := newEventHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO event_registrations").
		WithArgs(uint64(1), uint64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE events SET seats_remaining").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT seats_remaining FROM events").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seats_remaining"}).AddRow(4))
	mock.ExpectCommit()

	rec := registerRequest(t, h, "1", 7)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"seats_remaining":4`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRegister_SoldOut(t *testing.T) {
	h, mock := newEventHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO event_registrations").
		WithArgs(uint64(1), uint64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE events SET seats_remaining").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT seats_remaining FROM events").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seats_remaining"}).AddRow(0))
	mock.ExpectRollback()

	rec := registerRequest(t, h, "1", 7)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "sold out")
}

func TestEventRegister_AlreadyRegistered(t *testing.T) {
	h, mock := newEventHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO event_registrations").
		WithArgs(uint64(1), uint64(7)).
		WillReturnError(errors.New("Error 1062: Duplicate entry '1-7' for key 'uq_event_user'"))
	mock.ExpectRollback()

	rec := registerRequest(t, h, "1", 7)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "already registered")
}

func TestEventRegister_UnknownEvent(t *testing.T) {
	h, mock := newEventHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO event_registrations").
		WithArgs(uint64(42), uint64(7)).
		WillReturnError(errors.New("Error 1452: Cannot add or update a child row: a foreign key constraint fails"))
	mock.ExpectRollback()

	rec := registerRequest(t, h, "42", 7)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "event not found")
}

func TestEventRegister_BadEventID(t *testing.T) {
	h, _ := newEventHandler(t)

	rec := registerRequest(t, h, "zero", 7)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventGet_NotFound(t *testing.T) {
	h, mock := newEventHandler(t)

	mock.ExpectQuery("SELECT id, title, description, venue").
		WithArgs(uint64(5)).
		WillReturnError(sql.ErrNoRows)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/events/5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events/:id")
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
