package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/model"
	"github.com/shahriar/govjobs/internal/repository"
)

// compile-time check that *DB implements repository.JobRepository
var _ repository.JobRepository = (*DB)(nil)

const jobColumns = `id, title, department, circular_no, publish_date, deadline,
	description, requirements, salary, application_fee, created_at`

// ListOpen returns every circular whose deadline is on/after now's date,
// newest publication first. The query is deterministic for a fixed now, so
// repeated calls return the identical ordered sequence.
func (db *DB) ListOpen(ctx context.Context, now time.Time) ([]model.Job, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE deadline >= ?
		 ORDER BY publish_date DESC, id DESC`,
		dateOnly(now),
	)
	if err != nil {
		return nil, apperror.Storage("listing open circulars", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		if err := scanJob(rows.Scan, &j); err != nil {
			return nil, apperror.Storage("scanning circular", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("listing open circulars", err)
	}

	return jobs, nil
}

// GetByID retrieves one circular.
// Returns apperror.ErrNotFound if no circular exists with that id.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	var j model.Job
	err := scanJob(db.conn.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id,
	).Scan, &j)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("job", id)
		}
		return nil, apperror.Storage("looking up circular", err)
	}

	return &j, nil
}

// CreateJob inserts a circular. Circulars are created by the administrative
// process outside the intake core; this method is that process's entry point
// (and the seeding hook below).
func (db *DB) CreateJob(ctx context.Context, job *model.Job) error {
	if job.Fee < 0 {
		return apperror.ValidationFailed("application_fee", "application fee must not be negative")
	}
	job.CreatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO jobs (title, department, circular_no, publish_date, deadline,
			description, requirements, salary, application_fee, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.Title,
		job.Department,
		job.CircularNo,
		dateOnly(job.PublishDate),
		dateOnly(job.Deadline),
		job.Description,
		job.Requirements,
		job.Salary,
		job.Fee,
		job.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.DuplicateCircular(job.CircularNo)
		}
		return apperror.Storage("creating circular", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new job id: %w", err)
	}
	job.ID = id

	return nil
}

// SeedSampleCircular loads the sample circular into an empty catalog so a
// fresh development database has something to apply to. Idempotent: the
// UNIQUE circular_no makes the second run a no-op.
func (db *DB) SeedSampleCircular(ctx context.Context) error {
	job := &model.Job{
		Title:        "সহকারী প্রোগ্রামার",
		Department:   "তথ্য ও যোগাযোগ প্রযুক্তি বিভাগ",
		CircularNo:   "ICT-01/2023",
		PublishDate:  time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
		Deadline:     time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC),
		Description:  "তথ্য ও যোগাযোগ প্রযুক্তি বিভাগে সহকারী প্রোগ্রামার পদে আবেদন গ্রহণ।",
		Requirements: "কম্পিউটার বিজ্ঞান/প্রকৌশলে স্নাতক ডিগ্রী, প্রোগ্রামিং ভাষায় অভিজ্ঞতা",
		Salary:       "২৫,০০০ - ৬০,০০০",
		Fee:          500.00,
	}

	err := db.CreateJob(ctx, job)
	if err != nil && errors.Is(err, apperror.ErrDuplicateCircular) {
		return nil // already seeded
	}
	return err
}

// dateOnly normalises a calendar date to its canonical stored form, so that
// deadline comparisons never depend on the time-of-day component. Writes and
// the deadline filter go through it; reads scan the DATE columns as
// time.Time, the type the driver hands back for them.
func dateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}

// scanJob reads one jobColumns row. The scan func abstraction lets it serve
// both QueryRow and Rows.
func scanJob(scan func(...any) error, j *model.Job) error {
	return scan(
		&j.ID,
		&j.Title,
		&j.Department,
		&j.CircularNo,
		&j.PublishDate,
		&j.Deadline,
		&j.Description,
		&j.Requirements,
		&j.Salary,
		&j.Fee,
		&j.CreatedAt,
	)
}
