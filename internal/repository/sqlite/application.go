package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/model"
	"github.com/shahriar/govjobs/internal/repository"
)

// compile-time check that *DB implements repository.ApplicationRepository
var _ repository.ApplicationRepository = (*DB)(nil)

// Create inserts one complete application.
//
// A single INSERT is the atomicity guarantee: concurrent readers either see
// the whole row — personal fields, all five document references, status —
// or no row at all. The foreign keys on user_id and job_id make the store
// verify referential integrity at write time; a violation (or anything else
// unexpected) surfaces as ErrStorage with no partial row left behind.
//
// Note there is no uniqueness on (user_id, job_id): a citizen may file the
// same circular twice and both rows stand.
func (db *DB) Create(ctx context.Context, app *model.Application) error {
	app.Status = model.StatusPending
	app.AppliedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO applications (user_id, job_id, nid, name, father_name,
			mother_name, dob, gender, education, experience, photo_path,
			signature_path, resume_path, nid_front_path, nid_back_path,
			payment_method, transaction_id, status, applied_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.UserID,
		app.JobID,
		app.NID,
		app.Name,
		app.FatherName,
		app.MotherName,
		app.DOB,
		app.Gender,
		app.Education,
		app.Experience,
		app.PhotoPath,
		app.SignaturePath,
		app.ResumePath,
		app.NIDFrontPath,
		app.NIDBackPath,
		app.PaymentMethod,
		app.TransactionID,
		app.Status,
		app.AppliedAt,
	)
	if err != nil {
		return apperror.Storage("inserting application", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new application id: %w", err)
	}
	app.ID = id

	return nil
}

// ListForUser returns the user's applications joined with their circulars,
// most recent first. This is the applicant dashboard query.
func (db *DB) ListForUser(ctx context.Context, userID int64) ([]model.ApplicationSummary, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT a.id, j.title, j.department, a.status, a.applied_at
		 FROM applications a
		 JOIN jobs j ON a.job_id = j.id
		 WHERE a.user_id = ?
		 ORDER BY a.applied_at DESC, a.id DESC`,
		userID,
	)
	if err != nil {
		return nil, apperror.Storage("listing applications", err)
	}
	defer rows.Close()

	var out []model.ApplicationSummary
	for rows.Next() {
		var s model.ApplicationSummary
		if err := rows.Scan(&s.ApplicationID, &s.JobTitle, &s.Department, &s.Status, &s.AppliedAt); err != nil {
			return nil, apperror.Storage("scanning application", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("listing applications", err)
	}

	return out, nil
}
