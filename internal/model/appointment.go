package model

import "time"

// Appointment is a counseling slot booked by a student.  Students only see
// and cancel their own appointments.
type Appointment struct {
	ID            uint64    // appointments.id
	StudentID     uint64    // appointments.student_id
	CounselorName string    // appointments.counselor_name
	Topic         string    // appointments.topic
	ScheduledAt   time.Time // appointments.scheduled_at
	CreatedAt     time.Time // appointments.created_at
}
