package repository

import (
	"context"
	"database/sql"

	"github.com/avesta-dev/campus-connect/internal/model"
)

// BlogRepo provides persistence for blog posts.
type BlogRepo struct {
	db *sql.DB
}

// NewBlogRepo returns a BlogRepo bound to the given database.
func NewBlogRepo(db *sql.DB) *BlogRepo { return &BlogRepo{db: db} }

// Create inserts a blog post and returns the generated ID.
func (r *BlogRepo) Create(ctx context.Context, b *model.Blog) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO blogs (author_id, title, body) VALUES (?,?,?)",
		b.AuthorID, b.Title, b.Body)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all blog posts, newest first.
func (r *BlogRepo) List(ctx context.Context) ([]model.Blog, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, author_id, title, body, created_at FROM blogs ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var blogs []model.Blog
	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(&b.ID, &b.AuthorID, &b.Title, &b.Body, &b.CreatedAt); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// DeleteByIDAndAuthor removes a post only when both the id and the author
// match, as a single conditional statement.  Existence and ownership are
// checked atomically with the delete itself, so there is no window in which
// another caller could act between a check and the mutation.  Zero rows
// affected is reported as sql.ErrNoRows whether the post is missing or owned
// by someone else; callers cannot tell the two apart.
func (r *BlogRepo) DeleteByIDAndAuthor(ctx context.Context, id, authorID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM blogs WHERE id=? AND author_id=?", id, authorID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
