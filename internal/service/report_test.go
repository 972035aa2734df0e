package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shahriar/govjobs/internal/model"
)

type mockReportRepo struct {
	counts model.ReportCounts
	perJob []model.JobApplicationCount
	err    error
}

func (m *mockReportRepo) Counts(_ context.Context) (model.ReportCounts, error) {
	return m.counts, m.err
}

func (m *mockReportRepo) CountsPerJob(_ context.Context) ([]model.JobApplicationCount, error) {
	return m.perJob, m.err
}

func TestReportCounts(t *testing.T) {
	repo := &mockReportRepo{counts: model.ReportCounts{
		TotalApplications:   5,
		PendingApplications: 3,
		TotalJobs:           2,
	}}
	svc := NewReportService(repo, testLogger())

	got, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if got != repo.counts {
		t.Errorf("Counts() = %+v, want %+v", got, repo.counts)
	}
}

func TestReportCountsPerJob(t *testing.T) {
	repo := &mockReportRepo{perJob: []model.JobApplicationCount{
		{JobTitle: "Assistant Programmer", Applications: 4},
		{JobTitle: "Sub-Assistant Engineer", Applications: 0},
	}}
	svc := NewReportService(repo, testLogger())

	got, err := svc.CountsPerJob(context.Background())
	if err != nil {
		t.Fatalf("CountsPerJob() error = %v", err)
	}
	if len(got) != 2 || got[1].Applications != 0 {
		t.Errorf("CountsPerJob() = %+v", got)
	}
}

func TestReport_RepoFailure(t *testing.T) {
	repo := &mockReportRepo{err: errors.New("database is locked")}
	svc := NewReportService(repo, testLogger())

	if _, err := svc.Counts(context.Background()); err == nil {
		t.Error("Counts() expected error")
	}
	if _, err := svc.CountsPerJob(context.Background()); err == nil {
		t.Error("CountsPerJob() expected error")
	}
}
