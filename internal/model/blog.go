package model

import "time"

// Blog is a post authored by a user.  Only the author may delete it.
type Blog struct {
	ID        uint64    // blogs.id
	AuthorID  uint64    // blogs.author_id
	Title     string    // blogs.title
	Body      string    // blogs.body
	CreatedAt time.Time // blogs.created_at
}
