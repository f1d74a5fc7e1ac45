package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/avesta-dev/campus-connect/internal/repository"
)

func newBlogHandler(t *testing.T) (*BlogHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBlogHandler(repository.NewBlogRepo(db)), mock
}

func deleteBlogRequest(t *testing.T, h *BlogHandler, blogID string, userID uint64) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/blogs/"+blogID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/blogs/:id")
	c.SetParamNames("id")
	c.SetParamValues(blogID)
	c.Set("user_id", userID)
	require.NoError(t, h.Delete(c))
	return rec
}

func TestBlogDelete_Owned(t *testing.T) {
	h, mock := newBlogHandler(t)

	mock.ExpectExec("DELETE FROM blogs").
		WithArgs(uint64(9), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := deleteBlogRequest(t, h, "9", 4)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBlogDelete_NotOwnedLooksLikeMissing(t *testing.T) {
	h, mock := newBlogHandler(t)

	// user 5 deleting user 4's post gets the same 404 a missing post would
	// produce; existence of other users' posts is never leaked.
	mock.ExpectExec("DELETE FROM blogs").
		WithArgs(uint64(9), uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := deleteBlogRequest(t, h, "9", 5)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "not found")
}

func TestBlogCreate_Validation(t *testing.T) {
	h, _ := newBlogHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/blogs", strings.NewReader(`{"title":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(4))
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
