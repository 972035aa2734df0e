package handler

import (
	"log/slog"
	"net/http"

	"github.com/shahriar/govjobs/internal/service"
)

// ReportHandler serves the admin reporting surface. Both routes sit behind
// the admin-role middleware; the handler itself does no role checks.
type ReportHandler struct {
	reports *service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reports *service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// HandleCounts returns the portal-wide totals.
//
// HTTP: GET /api/admin/stats
func (h *ReportHandler) HandleCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reports.Counts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"stats":  counts,
	})
}

// HandlePerJob returns application volume per circular, zero-application
// circulars included.
//
// HTTP: GET /api/admin/stats/jobs
func (h *ReportHandler) HandlePerJob(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reports.CountsPerJob(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"jobs":   counts,
	})
}
