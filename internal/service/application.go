package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/auth"
	"github.com/shahriar/govjobs/internal/metrics"
	"github.com/shahriar/govjobs/internal/model"
	"github.com/shahriar/govjobs/internal/repository"
	"github.com/shahriar/govjobs/internal/storage"
)

// ApplicationService orchestrates the submission workflow: principal check,
// job resolution, field validation, document intake fan-out, and the final
// atomic insert of the application row.
type ApplicationService struct {
	jobs     repository.JobRepository
	apps     repository.ApplicationRepository
	docs     storage.Store
	validate *validator.Validate
	logger   *slog.Logger
}

// NewApplicationService creates an ApplicationService.
func NewApplicationService(
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	docs storage.Store,
	logger *slog.Logger,
) *ApplicationService {
	v := validator.New()
	// Report errors under the form field name (json tag), not the Go
	// struct field name, so an InvalidSubmission names "father_name"
	// rather than "FatherName".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ApplicationService{
		jobs:     jobs,
		apps:     apps,
		docs:     docs,
		validate: v,
		logger:   logger,
	}
}

// Submit files one application for the principal against jobID.
//
// The checks run in a fixed order, each failing the whole call with no
// application row written:
//
//  1. principal must be authenticated (Unauthenticated)
//  2. jobID must resolve (JobNotFound) — a passed deadline does NOT block
//     submission; late filing is accepted, preserved deliberately
//  3. every personal field must be present (InvalidSubmission, named field)
//  4. combined upload size under the ceiling (PayloadTooLarge), checked
//     before any document is written
//  5. all five documents must be present and of a whitelisted type
//     (AttachmentRejected, named roles)
//
// Documents written before a later role fails are removed best-effort; a
// leftover orphan blob is harmless since no row references it. The final
// insert is a single statement, so readers see the whole application or
// none of it. Duplicate submissions per (user, job) are allowed.
func (s *ApplicationService) Submit(
	ctx context.Context,
	principal auth.Principal,
	jobID int64,
	fields model.PersonalFields,
	uploads map[storage.Role]storage.Upload,
) (int64, error) {
	if principal.UserID == 0 {
		return 0, apperror.Unauthenticated()
	}

	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			metrics.SubmissionsTotal.WithLabelValues("job_not_found").Inc()
			return 0, err
		}
		metrics.SubmissionsTotal.WithLabelValues("storage_failure").Inc()
		s.logger.Error("job resolution failed",
			slog.Int64("jobID", jobID),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("resolving job: %w", err)
	}

	if err := s.validateFields(fields); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("invalid_submission").Inc()
		return 0, err
	}

	if err := storage.CheckSubmissionSize(uploads); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("payload_too_large").Inc()
		return 0, err
	}

	refs, err := s.acceptDocuments(principal.UserID, uploads)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("attachment_rejected").Inc()
		return 0, err
	}

	app := &model.Application{
		UserID:         principal.UserID,
		JobID:          jobID,
		NID:            principal.NID,
		PersonalFields: fields,
		PhotoPath:      refs[storage.RolePhoto],
		SignaturePath:  refs[storage.RoleSignature],
		ResumePath:     refs[storage.RoleResume],
		NIDFrontPath:   refs[storage.RoleNIDFront],
		NIDBackPath:    refs[storage.RoleNIDBack],
	}

	if err := s.apps.Create(ctx, app); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("storage_failure").Inc()
		s.logger.Error("application insert failed",
			slog.Int64("userID", principal.UserID),
			slog.Int64("jobID", jobID),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("submitting application: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	s.logger.Info("application submitted",
		slog.Int64("applicationID", app.ID),
		slog.Int64("userID", principal.UserID),
		slog.Int64("jobID", jobID),
	)

	return app.ID, nil
}

// ListForUser returns the principal's applications joined with their
// circulars, most recent first. Pure read.
func (s *ApplicationService) ListForUser(ctx context.Context, userID int64) ([]model.ApplicationSummary, error) {
	if userID == 0 {
		return nil, apperror.Unauthenticated()
	}

	apps, err := s.apps.ListForUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list applications",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	return apps, nil
}

// validateFields checks the required personal fields and reports the first
// missing one by its form name.
func (s *ApplicationService) validateFields(fields model.PersonalFields) error {
	err := s.validate.Struct(fields)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		field := ve[0].Field()
		return apperror.ValidationFailed(field, field+" is required")
	}
	return apperror.ValidationFailed("", "invalid submission")
}

// acceptDocuments runs document intake for each of the five roles, in
// order, and collects failures rather than stopping at the first. If any
// role is rejected, documents already written in this call are removed
// best-effort and the rejection names every offending role.
func (s *ApplicationService) acceptDocuments(ownerID int64, uploads map[storage.Role]storage.Upload) (map[storage.Role]string, error) {
	refs := make(map[storage.Role]string, len(storage.Roles))
	var rejected []string
	var firstCause string

	for _, role := range storage.Roles {
		u := uploads[role]

		if !u.Present() {
			// Intake treats absence as "omitted", but every role is
			// required on an application, so an omitted role rejects
			// the submission.
			rejected = append(rejected, string(role))
			if firstCause == "" {
				firstCause = fmt.Sprintf("%s document is required", role)
			}
			continue
		}

		key, err := s.docs.Accept(role, u.Filename, u.Data, ownerID)
		if err != nil {
			rejected = append(rejected, string(role))
			if firstCause == "" {
				firstCause = err.Error()
			}
			continue
		}
		refs[role] = key
	}

	if len(rejected) > 0 {
		s.cleanupRejected(refs)
		return nil, apperror.AttachmentRejected(
			strings.Join(rejected, ", "),
			fmt.Sprintf("documents rejected (%s): %s", strings.Join(rejected, ", "), firstCause),
		)
	}

	return refs, nil
}

// cleanupRejected deletes documents written earlier in a rejected
// submission. Best-effort: a failed delete only logs — the orphan blob is
// harmless because no application row references it.
func (s *ApplicationService) cleanupRejected(refs map[storage.Role]string) {
	for role, key := range refs {
		if err := s.docs.Remove(key); err != nil {
			s.logger.Warn("orphan cleanup failed",
				slog.String("role", string(role)),
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
}
