package model

import "time"

// Event is a campus event with a fixed number of seats.  SeatCapacity is set
// once at creation; SeatsRemaining is only ever mutated by the registration
// flow through a conditional decrement and can never go below zero.
type Event struct {
	ID             uint64    // events.id
	Title          string    // events.title
	Description    string    // events.description
	Venue          string    // events.venue
	StartsAt       time.Time // events.starts_at
	SeatCapacity   uint32    // events.seat_capacity
	SeatsRemaining uint32    // events.seats_remaining
	CreatedAt      time.Time // events.created_at
}

// Registration maps a user to an event.  The (EventID, UserID) pair is
// unique – a user may register for a given event at most once.
type Registration struct {
	ID        uint64    // event_registrations.id
	EventID   uint64    // event_registrations.event_id
	UserID    uint64    // event_registrations.user_id
	CreatedAt time.Time // event_registrations.created_at
}
