package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/service"
)

// JobHandler serves the public circular catalog. No authentication — job
// listings are the portal's front page.
type JobHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(catalog *service.CatalogService, logger *slog.Logger) *JobHandler {
	return &JobHandler{catalog: catalog, logger: logger}
}

// HandleList returns circulars whose deadline has not passed, newest
// publication first. "Not passed" includes the deadline day itself.
//
// HTTP: GET /api/jobs
func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.catalog.ListOpen(r.Context(), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"jobs":   jobs,
	})
}

// HandleGet returns one circular by id, open or closed.
//
// HTTP: GET /api/jobs/{id}
func (h *JobHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "id must be an integer"))
		return
	}

	job, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"job":    job,
	})
}
