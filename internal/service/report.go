package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shahriar/govjobs/internal/model"
	"github.com/shahriar/govjobs/internal/repository"
)

// ReportService serves the read-only aggregate projection consumed by the
// admin surface. It never writes.
type ReportService struct {
	reports repository.ReportRepository
	logger  *slog.Logger
}

// NewReportService creates a ReportService.
func NewReportService(reports repository.ReportRepository, logger *slog.Logger) *ReportService {
	return &ReportService{reports: reports, logger: logger}
}

// Counts returns the total/pending application and job counts.
func (s *ReportService) Counts(ctx context.Context) (model.ReportCounts, error) {
	c, err := s.reports.Counts(ctx)
	if err != nil {
		s.logger.Error("failed to compute report counts", slog.String("error", err.Error()))
		return model.ReportCounts{}, fmt.Errorf("computing report counts: %w", err)
	}
	return c, nil
}

// CountsPerJob returns application volume per circular, zero-application
// circulars included.
func (s *ReportService) CountsPerJob(ctx context.Context) ([]model.JobApplicationCount, error) {
	counts, err := s.reports.CountsPerJob(ctx)
	if err != nil {
		s.logger.Error("failed to compute per-job counts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("computing per-job counts: %w", err)
	}
	return counts, nil
}
