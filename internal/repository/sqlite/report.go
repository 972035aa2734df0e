package sqlite

import (
	"context"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/model"
	"github.com/shahriar/govjobs/internal/repository"
)

// compile-time check that *DB implements repository.ReportRepository
var _ repository.ReportRepository = (*DB)(nil)

// Counts returns the aggregate snapshot for the reporting projection.
func (db *DB) Counts(ctx context.Context) (model.ReportCounts, error) {
	var c model.ReportCounts

	err := db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM applications),
			(SELECT COUNT(*) FROM applications WHERE status = 'pending'),
			(SELECT COUNT(*) FROM jobs)
	`).Scan(&c.TotalApplications, &c.PendingApplications, &c.TotalJobs)
	if err != nil {
		return model.ReportCounts{}, apperror.Storage("computing report counts", err)
	}

	return c, nil
}

// CountsPerJob returns application volume per circular. The LEFT JOIN keeps
// circulars nobody applied to, with a zero count, in catalog order.
func (db *DB) CountsPerJob(ctx context.Context) ([]model.JobApplicationCount, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT j.title, COUNT(a.id)
		FROM jobs j
		LEFT JOIN applications a ON j.id = a.job_id
		GROUP BY j.id
		ORDER BY j.id
	`)
	if err != nil {
		return nil, apperror.Storage("computing per-job counts", err)
	}
	defer rows.Close()

	var out []model.JobApplicationCount
	for rows.Next() {
		var c model.JobApplicationCount
		if err := rows.Scan(&c.JobTitle, &c.Applications); err != nil {
			return nil, apperror.Storage("scanning per-job count", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("computing per-job counts", err)
	}

	return out, nil
}
