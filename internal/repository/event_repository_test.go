package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/avesta-dev/campus-connect/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestEventRepo_Register_Success(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewEventRepo(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO event_registrations").
		WithArgs(uint64(1), uint64(7)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("UPDATE events SET seats_remaining = seats_remaining - 1").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT seats_remaining FROM events").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seats_remaining"}).AddRow(2))
	mock.ExpectCommit()

	remaining, err := r.Register(ctx, 1, 7)
	require.NoError(t, err)
	require.Equal(t, uint32(2), remaining)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Register_SoldOut(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewEventRepo(db)
	ctx := context.Background()

	// The registration row inserts fine, but the conditional decrement
	// matches nothing because seats_remaining is already 0.  The insert is
	// rolled back with the transaction, so a failed attempt leaves no trace.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO event_registrations").
		WithArgs(uint64(1), uint64(7)).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("UPDATE events SET seats_remaining = seats_remaining - 1").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT seats_remaining FROM events").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seats_remaining"}).AddRow(0))
	mock.ExpectRollback()

	_, err := r.Register(ctx, 1, 7)
	require.ErrorIs(t, err, ErrEventSoldOut)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Register_UnknownEvent(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewEventRepo(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO event_registrations").
		WithArgs(uint64(99), uint64(7)).
		WillReturnError(errors.New("Error 1452: Cannot add or update a child row: a foreign key constraint fails"))
	mock.ExpectRollback()

	_, err := r.Register(ctx, 99, 7)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Register_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewEventRepo(db)
	ctx := context.Background()

	// Second attempt by the same user trips the UNIQUE (event_id, user_id)
	// index before any seat is touched, so seats_remaining is unchanged.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO event_registrations").
		WithArgs(uint64(1), uint64(7)).
		WillReturnError(errors.New("Error 1062: Duplicate entry '1-7' for key 'uq_event_user'"))
	mock.ExpectRollback()

	_, err := r.Register(ctx, 1, 7)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewEventRepo(db)
	ctx := context.Background()

	starts := time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)
	e := model.Event{Title: "Tech Talk", Venue: "Hall A", StartsAt: starts, SeatCapacity: 100}

	// seats_remaining starts equal to seat_capacity.
	mock.ExpectExec("INSERT INTO events").
		WithArgs("Tech Talk", "", "Hall A", starts, uint32(100), uint32(100)).
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := r.Create(ctx, &e)
	require.NoError(t, err)
	require.Equal(t, uint64(5), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewEventRepo(db)

	mock.ExpectQuery("SELECT id, title, description, venue").
		WithArgs(uint64(3)).
		WillReturnError(sql.ErrNoRows)

	_, err := r.GetByID(context.Background(), 3)
	require.ErrorIs(t, err, sql.ErrNoRows)
}
