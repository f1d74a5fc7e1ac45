// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationConfirmedEvent is published when a seat registration commits.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type RegistrationConfirmedEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	EventID        uint64 `json:"event_id"`
	UserID         uint64 `json:"user_id"`
	EventTitle     string `json:"event_title"`
	SeatsRemaining uint32 `json:"seats_remaining"`
	ConfirmedAt    string `json:"confirmed_at"`
}
