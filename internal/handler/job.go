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

// JobHandler exposes job board creation, listing and owner-scoped deletion.
type JobHandler struct {
	Jobs *repository.JobRepo
}

func NewJobHandler(jobs *repository.JobRepo) *JobHandler {
	if jobs == nil {
		panic("nil repository passed to NewJobHandler")
	}
	return &JobHandler{Jobs: jobs}
}

type createJobReq struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	ApplyLink   string `json:"apply_link"`
}

type jobResp struct {
	ID          uint64 `json:"id"`
	PosterID    uint64 `json:"poster_id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	ApplyLink   string `json:"apply_link"`
	CreatedAt   string `json:"created_at"`
}

// Create handles POST /v1/jobs.
func (h *JobHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createJobReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Company = strings.TrimSpace(req.Company)
	if req.Title == "" || req.Company == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title/company required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	j := model.Job{
		PosterID:    userID,
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		ApplyLink:   req.ApplyLink,
	}
	id, err := h.Jobs.Create(ctx, &j)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create job failed"})
	}
	return c.JSON(http.StatusCreated, jobResp{
		ID: id, PosterID: userID, Title: j.Title, Company: j.Company,
		Description: j.Description, ApplyLink: j.ApplyLink,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// List handles GET /v1/jobs.
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.Jobs.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list jobs failed"})
	}
	out := make([]jobResp, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, jobResp{
			ID: j.ID, PosterID: j.PosterID, Title: j.Title, Company: j.Company,
			Description: j.Description, ApplyLink: j.ApplyLink,
			CreatedAt: j.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/jobs/:id with the same conditional ownership
// guard as blogs: not-found and not-owned are indistinguishable.
func (h *JobHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.Jobs.DeleteByIDAndPoster(c.Request().Context(), id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
