// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage is the concrete implementation;
// tests substitute in-memory fakes.
package repository

import (
	"context"
	"time"

	"github.com/shahriar/govjobs/internal/model"
)

// UserRepository owns account rows.
type UserRepository interface {
	// CreateUser inserts a new account. The uniqueness check and the
	// insert are one atomic unit: the UNIQUE constraints on nid and email
	// decide, and a violation comes back as apperror.ErrDuplicateIdentity.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByNID returns the account for an identity number, or
	// apperror.ErrNotFound.
	GetUserByNID(ctx context.Context, nid string) (*model.User, error)
}

// JobRepository reads the circular catalog. The catalog is read-only to this
// core; rows arrive through an administrative process.
type JobRepository interface {
	// ListOpen returns circulars whose deadline is on/after now's date,
	// ordered by publish date descending.
	ListOpen(ctx context.Context, now time.Time) ([]model.Job, error)

	// GetByID returns one circular, or apperror.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*model.Job, error)
}

// ApplicationRepository owns application rows.
type ApplicationRepository interface {
	// Create inserts one complete application atomically. ID and AppliedAt
	// are filled in on the passed struct.
	Create(ctx context.Context, app *model.Application) error

	// ListForUser returns the user's applications joined with their jobs,
	// most recent first.
	ListForUser(ctx context.Context, userID int64) ([]model.ApplicationSummary, error)
}

// ReportRepository serves the read-only aggregate projection.
type ReportRepository interface {
	Counts(ctx context.Context) (model.ReportCounts, error)

	// CountsPerJob includes circulars with zero applications.
	CountsPerJob(ctx context.Context) ([]model.JobApplicationCount, error)
}
