package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "DuplicateIdentity wraps ErrDuplicateIdentity",
			err:       DuplicateIdentity(),
			target:    ErrDuplicateIdentity,
			wantMatch: true,
		},
		{
			name:      "InvalidCredentials wraps ErrInvalidCredentials",
			err:       InvalidCredentials(),
			target:    ErrInvalidCredentials,
			wantMatch: true,
		},
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("job", 42),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("father_name", "father_name is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "UnsupportedType wraps ErrUnsupportedType",
			err:       UnsupportedType("resume", "virus.exe"),
			target:    ErrUnsupportedType,
			wantMatch: true,
		},
		{
			name:      "Storage keeps ErrStorage on the chain",
			err:       Storage("inserting application", errors.New("disk I/O error")),
			target:    ErrStorage,
			wantMatch: true,
		},
		{
			name:      "Storage survives further wrapping",
			err:       fmt.Errorf("submitting application: %w", Storage("insert", errors.New("boom"))),
			target:    ErrStorage,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("job", 42),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "PayloadTooLarge does NOT match ErrUnsupportedType",
			err:       PayloadTooLarge(16 << 20),
			target:    ErrUnsupportedType,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("job", 7),
			wantMessage: "job not found with id 7",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("name", "name is required"),
			wantMessage: "name is required",
		},
		{
			name:        "UnsupportedType names the role and file",
			err:         UnsupportedType("photo", "me.bmp"),
			wantMessage: `file type of "me.bmp" is not allowed for photo`,
		},
		{
			name:        "Storage hides the low-level cause",
			err:         Storage("inserting application", errors.New("database is locked")),
			wantMessage: "storage failure during inserting application",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestFieldAndRoleDetail(t *testing.T) {
	// Handlers surface Field and Role so the frontend knows what to fix.
	if err := ValidationFailed("dob", "dob is required"); err.Field != "dob" {
		t.Errorf("Field = %q, want %q", err.Field, "dob")
	}
	if err := AttachmentRejected("nid_front, nid_back", "documents rejected"); err.Role != "nid_front, nid_back" {
		t.Errorf("Role = %q, want %q", err.Role, "nid_front, nid_back")
	}
	if err := UnsupportedType("signature", "sig.txt"); err.Role != "signature" {
		t.Errorf("Role = %q, want %q", err.Role, "signature")
	}
}
