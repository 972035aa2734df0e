package sqlite

import (
	"context"
	"testing"
)

func TestCounts(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "1234567890")
	jobA := createTestJob(t, db, "A-01/2023", date(2023, 1, 1), date(2024, 1, 1))
	createTestJob(t, db, "B-01/2023", date(2023, 2, 1), date(2024, 1, 1))

	before, err := db.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if before.TotalJobs != 2 {
		t.Errorf("TotalJobs = %d, want 2", before.TotalJobs)
	}
	if before.TotalApplications != 0 || before.PendingApplications != 0 {
		t.Errorf("fresh store counts = %+v, want zeros", before)
	}

	createTestApplication(t, db, user, jobA)

	after, err := db.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if after.TotalApplications != before.TotalApplications+1 {
		t.Errorf("TotalApplications = %d, want %d", after.TotalApplications, before.TotalApplications+1)
	}
	if after.PendingApplications != before.PendingApplications+1 {
		t.Errorf("PendingApplications = %d, want %d", after.PendingApplications, before.PendingApplications+1)
	}
}

func TestCountsPerJob_IncludesZeroApplicationJobs(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "1234567890")
	jobA := createTestJob(t, db, "A-01/2023", date(2023, 1, 1), date(2024, 1, 1))
	jobB := createTestJob(t, db, "B-01/2023", date(2023, 2, 1), date(2024, 1, 1))

	createTestApplication(t, db, user, jobA)
	createTestApplication(t, db, user, jobA)

	counts, err := db.CountsPerJob(context.Background())
	if err != nil {
		t.Fatalf("CountsPerJob() error = %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("CountsPerJob() returned %d rows, want 2 (left join keeps empty jobs)", len(counts))
	}

	byTitle := map[string]int64{}
	for _, c := range counts {
		byTitle[c.JobTitle] = c.Applications
	}
	if byTitle[jobA.Title] != 2 {
		t.Errorf("applications for %q = %d, want 2", jobA.Title, byTitle[jobA.Title])
	}
	if got, ok := byTitle[jobB.Title]; !ok || got != 0 {
		t.Errorf("applications for %q = %d (present=%v), want 0 row present", jobB.Title, got, ok)
	}
}
