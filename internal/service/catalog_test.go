package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/model"
)

func TestCatalogGetByID(t *testing.T) {
	jobs := newMockJobRepo(&model.Job{ID: 1, Title: "Assistant Programmer", CircularNo: "ICT-01/2023"})
	svc := NewCatalogService(jobs, testLogger())

	job, err := svc.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if job.CircularNo != "ICT-01/2023" {
		t.Errorf("CircularNo = %q", job.CircularNo)
	}

	_, err = svc.GetByID(context.Background(), 42)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID(42) error = %v, want ErrNotFound", err)
	}
}

func TestCatalogListOpen_RepoFailure(t *testing.T) {
	jobs := newMockJobRepo()
	jobs.err = errors.New("database is locked")
	svc := NewCatalogService(jobs, testLogger())

	_, err := svc.ListOpen(context.Background(), time.Now())
	if err == nil {
		t.Fatal("ListOpen() expected error")
	}
}
