// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// string-matching database errors. Not-found (including "exists but is
// owned by someone else") is reported as sql.ErrNoRows so that handlers
// cannot accidentally leak the existence of other users' resources.
package repository

import "errors"

// ErrEmailExists is returned when signup is attempted with an email that
// already belongs to a user. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrEventSoldOut is returned by the registration flow when the event exists
// but has no seats remaining. Terminal: retrying is meaningless until state
// changes, so callers must surface it verbatim.
var ErrEventSoldOut = errors.New("event sold out")

// ErrAlreadyRegistered is returned when a user attempts to register for an
// event they are already registered for. Terminal: retrying would be a no-op.
var ErrAlreadyRegistered = errors.New("already registered for this event")
