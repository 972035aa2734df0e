package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/auth"
	"github.com/shahriar/govjobs/internal/model"
	"github.com/shahriar/govjobs/internal/service"
	"github.com/shahriar/govjobs/internal/storage"
)

// multipartSlack covers form-field bytes and multipart framing on top of
// the document ceiling. The real size check happens in the service against
// the decoded documents.
const multipartSlack = 1 << 20

// ApplicationHandler serves the submission workflow and the applicant's own
// application list. All routes require an authenticated principal.
type ApplicationHandler struct {
	apps   *service.ApplicationService
	logger *slog.Logger
}

// NewApplicationHandler creates an ApplicationHandler.
func NewApplicationHandler(apps *service.ApplicationService, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, logger: logger}
}

// HandleSubmit files an application against a circular.
//
// HTTP: POST /api/jobs/{jobID}/apply — multipart/form-data with the
// personal fields plus five file parts: photo, signature, resume,
// nid_front, nid_back.
func (h *ApplicationHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	jobID, err := strconv.ParseInt(chi.URLParam(r, "jobID"), 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("jobID", "jobID must be an integer"))
		return
	}

	// Reject oversized bodies before buffering anything.
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxSubmissionBytes+multipartSlack)
	if err := r.ParseMultipartForm(storage.MaxSubmissionBytes + multipartSlack); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, apperror.PayloadTooLarge(storage.MaxSubmissionBytes))
			return
		}
		writeError(w, apperror.ValidationFailed("", "request is not valid multipart form data"))
		return
	}

	fields := model.PersonalFields{
		Name:          r.FormValue("name"),
		FatherName:    r.FormValue("father_name"),
		MotherName:    r.FormValue("mother_name"),
		DOB:           r.FormValue("dob"),
		Gender:        r.FormValue("gender"),
		Education:     r.FormValue("education"),
		Experience:    r.FormValue("experience"),
		PaymentMethod: r.FormValue("payment_method"),
		TransactionID: r.FormValue("transaction_id"),
	}

	uploads, err := h.readUploads(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := h.apps.Submit(r.Context(), principal, jobID, fields, uploads)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "আবেদন সফলভাবে জমা হয়েছে!", map[string]any{
		"id": id,
	})
}

// HandleList returns the caller's applications, most recent first.
//
// HTTP: GET /api/applications
func (h *ApplicationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	apps, err := h.apps.ListForUser(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "success",
		"applications": apps,
	})
}

// readUploads pulls the five document parts out of the parsed form. An
// absent part yields an empty Upload; the service decides what absence
// means, not the HTTP layer.
func (h *ApplicationHandler) readUploads(r *http.Request) (map[storage.Role]storage.Upload, error) {
	uploads := make(map[storage.Role]storage.Upload, len(storage.Roles))

	for _, role := range storage.Roles {
		file, header, err := r.FormFile(string(role))
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				continue
			}
			return nil, apperror.ValidationFailed(string(role), "unreadable file part")
		}

		data, err := readPart(file)
		if err != nil {
			h.logger.Error("reading upload part failed",
				slog.String("role", string(role)),
				slog.String("error", err.Error()),
			)
			return nil, apperror.Storage("read upload", err)
		}

		uploads[role] = storage.Upload{Filename: header.Filename, Data: data}
	}

	return uploads, nil
}

func readPart(file multipart.File) ([]byte, error) {
	defer file.Close()
	return io.ReadAll(file)
}
