package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/avesta-dev/campus-connect/internal/model"
)

// EventRepo provides persistence for events and their registrations.  Events
// are created by admins and never deleted; the only mutation after creation
// is the seat decrement performed by Register.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// Create inserts an event with seats_remaining initialised to the full
// capacity and returns the generated ID.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO events (title, description, venue, starts_at, seat_capacity, seats_remaining)
		 VALUES (?,?,?,?,?,?)`,
		e.Title, e.Description, e.Venue, e.StartsAt.UTC(), e.SeatCapacity, e.SeatCapacity)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single event; sql.ErrNoRows when it does not exist.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	var e model.Event
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, venue, starts_at, seat_capacity, seats_remaining, created_at
		 FROM events WHERE id=? LIMIT 1`, id).
		Scan(&e.ID, &e.Title, &e.Description, &e.Venue, &e.StartsAt, &e.SeatCapacity, &e.SeatsRemaining, &e.CreatedAt)
	return e, err
}

// List returns all events, newest first.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, venue, starts_at, seat_capacity, seats_remaining, created_at
		 FROM events ORDER BY starts_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Venue, &e.StartsAt, &e.SeatCapacity, &e.SeatsRemaining, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ListRegisteredByUser returns the events a user has registered for, joined
// through the event_registrations relation.
func (r *EventRepo) ListRegisteredByUser(ctx context.Context, userID uint64) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.id, e.title, e.description, e.venue, e.starts_at, e.seat_capacity, e.seats_remaining, e.created_at
		 FROM events e
		 JOIN event_registrations reg ON reg.event_id = e.id
		 WHERE reg.user_id = ?
		 ORDER BY e.starts_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Venue, &e.StartsAt, &e.SeatCapacity, &e.SeatsRemaining, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Register books one seat on an event for a user.  The whole operation runs
// in a single transaction built around two guards:
//
//   - the UNIQUE (event_id, user_id) index on event_registrations rejects a
//     second registration by the same user (ErrAlreadyRegistered);
//   - the decrement is conditional: UPDATE ... SET seats_remaining =
//     seats_remaining - 1 WHERE id = ? AND seats_remaining > 0.  Zero rows
//     affected means the event is either unknown (sql.ErrNoRows) or full
//     (ErrEventSoldOut).
//
// Correctness does not depend on in-process locks.  Two concurrent callers
// racing for the last seat both reach the conditional UPDATE; the row lock
// serialises them and the loser matches zero rows, so seats_remaining can
// never go negative regardless of how many service instances run.  There is
// no read-check-write window: the check and the mutation are one statement.
//
// On success the remaining seat count after the decrement is returned.
// Failures are terminal and never retried here; retrying AlreadyRegistered
// is a no-op and retrying SoldOut is meaningless until state changes.
func (r *EventRepo) Register(ctx context.Context, eventID, userID uint64) (uint32, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Record the registrant first so a duplicate attempt reports
	// AlreadyRegistered even when the event has since sold out.
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO event_registrations (event_id, user_id) VALUES (?,?)",
		eventID, userID); err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			return 0, ErrAlreadyRegistered
		}
		// 1452: foreign key failure, i.e. the event row does not exist.
		if strings.Contains(msg, "1452") {
			return 0, sql.ErrNoRows
		}
		return 0, err
	}

	// Atomic conditional decrement: the capacity check and the mutation are
	// indivisible, so no interleaved reader can observe free capacity that
	// has already been claimed.
	res, err := tx.ExecContext(ctx,
		"UPDATE events SET seats_remaining = seats_remaining - 1 WHERE id = ? AND seats_remaining > 0",
		eventID)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		// Distinguish unknown event from sold out; either way the inserted
		// registration row is rolled back with the transaction.
		var remaining uint32
		scanErr := tx.QueryRowContext(ctx,
			"SELECT seats_remaining FROM events WHERE id=? LIMIT 1", eventID).Scan(&remaining)
		if scanErr == sql.ErrNoRows {
			return 0, sql.ErrNoRows
		}
		if scanErr != nil {
			return 0, scanErr
		}
		return 0, ErrEventSoldOut
	}

	var remaining uint32
	if err := tx.QueryRowContext(ctx,
		"SELECT seats_remaining FROM events WHERE id=? LIMIT 1", eventID).Scan(&remaining); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return remaining, nil
}

// RegistrationByEventAndUser fetches a single registration row, mainly so
// handlers can include the registration id in confirmations.
func (r *EventRepo) RegistrationByEventAndUser(ctx context.Context, eventID, userID uint64) (model.Registration, error) {
	var reg model.Registration
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx,
		"SELECT id, event_id, user_id, created_at FROM event_registrations WHERE event_id=? AND user_id=? LIMIT 1",
		eventID, userID).Scan(&reg.ID, &reg.EventID, &reg.UserID, &createdAt)
	reg.CreatedAt = createdAt
	return reg, err
}
