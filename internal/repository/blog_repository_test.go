package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/avesta-dev/campus-connect/internal/model"
)

func TestBlogRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewBlogRepo(db)

	mock.ExpectExec("INSERT INTO blogs").
		WithArgs(uint64(4), "Exam tips", "Sleep.").
		WillReturnResult(sqlmock.NewResult(9, 1))

	id, err := r.Create(context.Background(), &model.Blog{AuthorID: 4, Title: "Exam tips", Body: "Sleep."})
	require.NoError(t, err)
	require.Equal(t, uint64(9), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepo_DeleteByIDAndAuthor_Owned(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewBlogRepo(db)

	mock.ExpectExec("DELETE FROM blogs WHERE id=\\? AND author_id=\\?").
		WithArgs(uint64(9), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.DeleteByIDAndAuthor(context.Background(), 9, 4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepo_DeleteByIDAndAuthor_NotOwned(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewBlogRepo(db)

	// A post owned by user 4 deleted by user 5: the single conditional
	// statement matches nothing, and the caller cannot distinguish this
	// from a post that never existed.
	mock.ExpectExec("DELETE FROM blogs WHERE id=\\? AND author_id=\\?").
		WithArgs(uint64(9), uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.DeleteByIDAndAuthor(context.Background(), 9, 5)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_DeleteByIDAndPoster_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewJobRepo(db)

	mock.ExpectExec("DELETE FROM jobs WHERE id=\\? AND poster_id=\\?").
		WithArgs(uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.DeleteByIDAndPoster(context.Background(), 1, 2)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAppointmentRepo_DeleteByIDAndStudent_Owned(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewAppointmentRepo(db)

	mock.ExpectExec("DELETE FROM appointments WHERE id=\\? AND student_id=\\?").
		WithArgs(uint64(3), uint64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.DeleteByIDAndStudent(context.Background(), 3, 8))
}
