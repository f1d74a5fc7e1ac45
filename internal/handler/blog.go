package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avesta-dev/campus-connect/internal/model"
	"github.com/avesta-dev/campus-connect/internal/repository"
)

// BlogHandler exposes blog post creation, listing and owner-scoped deletion.
type BlogHandler struct {
	Blogs *repository.BlogRepo
}

func NewBlogHandler(blogs *repository.BlogRepo) *BlogHandler {
	if blogs == nil {
		panic("nil repository passed to NewBlogHandler")
	}
	return &BlogHandler{Blogs: blogs}
}

type createBlogReq struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type blogResp struct {
	ID        uint64 `json:"id"`
	AuthorID  uint64 `json:"author_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// Create handles POST /v1/blogs.
func (h *BlogHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBlogReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Body) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title/body required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b := model.Blog{AuthorID: userID, Title: req.Title, Body: req.Body}
	id, err := h.Blogs.Create(ctx, &b)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create blog failed"})
	}
	return c.JSON(http.StatusCreated, blogResp{
		ID: id, AuthorID: userID, Title: b.Title, Body: b.Body,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// List handles GET /v1/blogs.
func (h *BlogHandler) List(c echo.Context) error {
	blogs, err := h.Blogs.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list blogs failed"})
	}
	out := make([]blogResp, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, blogResp{
			ID: b.ID, AuthorID: b.AuthorID, Title: b.Title, Body: b.Body,
			CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/blogs/:id.  The repository delete is conditional
// on both id and author, so a post that exists but belongs to someone else
// looks exactly like a missing one: 404 either way.
func (h *BlogHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.Blogs.DeleteByIDAndAuthor(c.Request().Context(), id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "blog not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
