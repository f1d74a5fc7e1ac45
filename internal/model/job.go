package model

import "time"

// Job is a job posting shared on the board.  Only the poster may delete it.
type Job struct {
	ID          uint64    // jobs.id
	PosterID    uint64    // jobs.poster_id
	Title       string    // jobs.title
	Company     string    // jobs.company
	Description string    // jobs.description
	ApplyLink   string    // jobs.apply_link
	CreatedAt   time.Time // jobs.created_at
}
