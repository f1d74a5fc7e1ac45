package repository

import (
	"context"
	"database/sql"

	"github.com/avesta-dev/campus-connect/internal/model"
)

// AppointmentRepo provides persistence for counseling appointments.
// Appointments are private: every read and delete is scoped to the booking
// student.
type AppointmentRepo struct {
	db *sql.DB
}

// NewAppointmentRepo returns an AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

// Create inserts an appointment and returns the generated ID.
func (r *AppointmentRepo) Create(ctx context.Context, a *model.Appointment) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO appointments (student_id, counselor_name, topic, scheduled_at) VALUES (?,?,?,?)",
		a.StudentID, a.CounselorName, a.Topic, a.ScheduledAt.UTC())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByStudent returns the student's own appointments, soonest first.
func (r *AppointmentRepo) ListByStudent(ctx context.Context, studentID uint64) ([]model.Appointment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, student_id, counselor_name, topic, scheduled_at, created_at
		 FROM appointments WHERE student_id=? ORDER BY scheduled_at ASC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var appts []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.StudentID, &a.CounselorName, &a.Topic, &a.ScheduledAt, &a.CreatedAt); err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

// DeleteByIDAndStudent cancels an appointment only when both the id and the
// booking student match, in one conditional statement.  Missing and
// not-owned both surface as sql.ErrNoRows.
func (r *AppointmentRepo) DeleteByIDAndStudent(ctx context.Context, id, studentID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM appointments WHERE id=? AND student_id=?", id, studentID)
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
