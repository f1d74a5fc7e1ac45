package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_Create_NormalizesEmailAndHashes(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	// The stored hash is bcrypt output; match it loosely.
	mock.ExpectExec("INSERT INTO users").
		WithArgs("Sara", "sara@campus.edu", sqlmock.AnyArg(), "STUDENT").
		WillReturnResult(sqlmock.NewResult(3, 1))

	id, err := r.Create(context.Background(), "Sara", "  SARA@Campus.EDU ", "pass1234", "STUDENT", 4)
	require.NoError(t, err)
	require.Equal(t, uint64(3), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Sara", "sara@campus.edu", sqlmock.AnyArg(), "STUDENT").
		WillReturnError(errors.New("Error 1062: Duplicate entry 'sara@campus.edu' for key 'users.email'"))

	_, err := r.Create(context.Background(), "Sara", "sara@campus.edu", "pass1234", "STUDENT", 4)
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE email=\\?").
		WithArgs("sara@campus.edu").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(3, "Sara", "sara@campus.edu", "$2a$04$hash", "STUDENT", now, now))

	u, err := r.GetByEmail(context.Background(), "SARA@campus.edu")
	require.NoError(t, err)
	require.Equal(t, uint64(3), u.ID)
	require.Equal(t, "STUDENT", u.Role)

	mock.ExpectQuery("SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE email=\\?").
		WithArgs("nobody@campus.edu").
		WillReturnError(sql.ErrNoRows)
	_, err = r.GetByEmail(context.Background(), "nobody@campus.edu")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTokenRepo_ValidateRefresh(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewTokenRepo(db)

	// Active token.
	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("hash-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(3, time.Now().UTC().Add(time.Hour), nil))
	uid, err := r.ValidateRefresh(context.Background(), "hash-1")
	require.NoError(t, err)
	require.Equal(t, uint64(3), uid)

	// Expired token is treated as missing.
	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("hash-2").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(3, time.Now().UTC().Add(-time.Hour), nil))
	_, err = r.ValidateRefresh(context.Background(), "hash-2")
	require.ErrorIs(t, err, sql.ErrNoRows)

	// Revoked token is treated as missing.
	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("hash-3").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(3, time.Now().UTC().Add(time.Hour), time.Now().UTC()))
	_, err = r.ValidateRefresh(context.Background(), "hash-3")
	require.ErrorIs(t, err, sql.ErrNoRows)
}
