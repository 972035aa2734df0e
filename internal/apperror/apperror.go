// Package apperror defines the failure taxonomy shared by every layer of the
// application intake core.
//
// Services return these errors; the HTTP handlers translate them to status
// codes via errors.Is/errors.As. Nothing below the handler layer knows about
// HTTP, and nothing above the repository layer sees raw database or
// filesystem errors.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors — the machine-readable failure kinds. Each AppError wraps
// one of these so callers can branch with errors.Is.
var (
	ErrDuplicateIdentity  = errors.New("duplicate identity")
	ErrDuplicateCircular  = errors.New("duplicate circular")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrUnsupportedType    = errors.New("unsupported file type")
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrAttachmentRejected = errors.New("attachment rejected")
	ErrStorage            = errors.New("storage failure")
)

// AppError pairs a sentinel with a human-readable message and, where it
// helps the caller, the offending form field or attachment role.
type AppError struct {
	Err     error  // sentinel (possibly wrapping a low-level cause)
	Message string // human-readable description
	Field   string // optional: form field causing a validation failure
	Role    string // optional: attachment role(s) causing a rejection
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// DuplicateIdentity reports a registration whose NID or email is already
// taken. The store's UNIQUE constraint is the source of truth; this is its
// translated form.
func DuplicateIdentity() *AppError {
	return &AppError{
		Err:     ErrDuplicateIdentity,
		Message: "এই NID বা ইমেইল already registered!",
	}
}

// DuplicateCircular reports a catalog insert whose circular number is
// already taken. A catalog concern, kept apart from identity duplicates.
func DuplicateCircular(circularNo string) *AppError {
	return &AppError{
		Err:     ErrDuplicateCircular,
		Message: fmt.Sprintf("circular %s already exists", circularNo),
	}
}

// InvalidCredentials reports a failed login. The message is deliberately
// identical for "no such NID" and "wrong password" so responses do not
// reveal which accounts exist.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "ভুল NID বা পাসওয়ার্ড!",
	}
}

// Unauthenticated reports a call that requires a principal but has none.
func Unauthenticated() *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: "login required",
	}
}

// Forbidden reports a principal that lacks the required role.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// NotFound reports a missing record.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// ValidationFailed reports a missing or malformed submission field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// UnsupportedType reports an attachment whose extension is outside the
// whitelist.
func UnsupportedType(role, filename string) *AppError {
	return &AppError{
		Err:     ErrUnsupportedType,
		Message: fmt.Sprintf("file type of %q is not allowed for %s", filename, role),
		Role:    role,
	}
}

// PayloadTooLarge reports a submission whose combined attachments exceed the
// intake ceiling. Raised before any document is written.
func PayloadTooLarge(limit int64) *AppError {
	return &AppError{
		Err:     ErrPayloadTooLarge,
		Message: fmt.Sprintf("attachments exceed the %d byte limit", limit),
	}
}

// AttachmentRejected reports the role(s) whose documents were missing or
// invalid. roles is a comma-joined list when several fail at once.
func AttachmentRejected(roles, message string) *AppError {
	return &AppError{
		Err:     ErrAttachmentRejected,
		Message: message,
		Role:    roles,
	}
}

// Storage wraps an unexpected database or filesystem error. The cause stays
// on the chain for logging; the message shown to callers is generic.
func Storage(op string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %v", ErrStorage, cause),
		Message: fmt.Sprintf("storage failure during %s", op),
	}
}
