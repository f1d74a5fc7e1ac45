package repository

import (
	"context"
	"database/sql"

	"github.com/avesta-dev/campus-connect/internal/model"
)

// JobRepo provides persistence for job postings.
type JobRepo struct {
	db *sql.DB
}

// NewJobRepo returns a JobRepo bound to the given database.
func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{db: db} }

// Create inserts a job posting and returns the generated ID.
func (r *JobRepo) Create(ctx context.Context, j *model.Job) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO jobs (poster_id, title, company, description, apply_link) VALUES (?,?,?,?,?)",
		j.PosterID, j.Title, j.Company, j.Description, j.ApplyLink)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all job postings, newest first.
func (r *JobRepo) List(ctx context.Context) ([]model.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, poster_id, title, company, description, apply_link, created_at FROM jobs ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.PosterID, &j.Title, &j.Company, &j.Description, &j.ApplyLink, &j.CreatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// DeleteByIDAndPoster removes a job only when both the id and the poster
// match.  Same single-statement ownership guard as BlogRepo: missing and
// not-owned both surface as sql.ErrNoRows.
func (r *JobRepo) DeleteByIDAndPoster(ctx context.Context, id, posterID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM jobs WHERE id=? AND poster_id=?", id, posterID)
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
