package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shahriar/govjobs/internal/model"
	"github.com/shahriar/govjobs/internal/repository"
)

// CatalogService serves the read-only circular catalog.
type CatalogService struct {
	jobs   repository.JobRepository
	logger *slog.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(jobs repository.JobRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{jobs: jobs, logger: logger}
}

// ListOpen returns circulars still accepting applications as of now,
// newest publication first.
func (s *CatalogService) ListOpen(ctx context.Context, now time.Time) ([]model.Job, error) {
	jobs, err := s.jobs.ListOpen(ctx, now)
	if err != nil {
		s.logger.Error("failed to list open circulars", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing open circulars: %w", err)
	}
	return jobs, nil
}

// GetByID returns one circular, open or closed.
// Returns apperror.ErrNotFound if it doesn't exist.
func (s *CatalogService) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err // already a proper apperror
	}
	return job, nil
}
