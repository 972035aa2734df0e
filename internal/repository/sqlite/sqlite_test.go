package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shahriar/govjobs/internal/model"
)

// newTestDB returns a migrated in-memory database, closed when the test
// finishes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:): %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts an applicant account and fails the test on error.
func createTestUser(t *testing.T, db *DB, nid string) *model.User {
	t.Helper()
	user := &model.User{
		NID:          nid,
		Name:         "Test Citizen",
		Email:        nid + "@example.com",
		Phone:        "01700000000",
		PasswordHash: "$2a$04$fakehashfortestingonly.fakehashfortestingonly12345678",
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}

// createTestJob inserts a circular with the given dates.
func createTestJob(t *testing.T, db *DB, circularNo string, publish, deadline time.Time) *model.Job {
	t.Helper()
	job := &model.Job{
		Title:        "Assistant Programmer " + circularNo,
		Department:   "ICT Division",
		CircularNo:   circularNo,
		PublishDate:  publish,
		Deadline:     deadline,
		Description:  "desc",
		Requirements: "reqs",
		Salary:       "25,000 - 60,000",
		Fee:          500,
	}
	if err := db.CreateJob(context.Background(), job); err != nil {
		t.Fatalf("creating test job: %v", err)
	}
	return job
}

// createTestApplication inserts a complete application for user/job.
func createTestApplication(t *testing.T, db *DB, user *model.User, job *model.Job) *model.Application {
	t.Helper()
	app := &model.Application{
		UserID: user.ID,
		JobID:  job.ID,
		NID:    user.NID,
		PersonalFields: model.PersonalFields{
			Name:       user.Name,
			FatherName: "Father",
			MotherName: "Mother",
			DOB:        "1995-01-15",
			Gender:     "male",
			Education:  "BSc in CSE",
			Experience: "2 years",
		},
		PhotoPath:     "photos/1_photo_me.jpg",
		SignaturePath: "signatures/1_signature_sig.png",
		ResumePath:    "resumes/1_resume_cv.pdf",
		NIDFrontPath:  "nids/1_nid_front_f.jpg",
		NIDBackPath:   "nids/1_nid_back_b.jpg",
	}
	if err := db.Create(context.Background(), app); err != nil {
		t.Fatalf("creating test application: %v", err)
	}
	return app
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
