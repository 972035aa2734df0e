// Package storage implements document intake: validation and durable
// persistence of uploaded application attachments.
//
// Intake is deliberately database-free — it is a pure function of bytes and
// metadata whose only side effect is the blob write. The relational record
// that references the returned keys is committed elsewhere, afterwards.
package storage

import (
	"strings"

	"github.com/shahriar/govjobs/internal/apperror"
)

// Role is the semantic kind of an uploaded document. There are exactly five.
type Role string

const (
	RolePhoto     Role = "photo"
	RoleSignature Role = "signature"
	RoleResume    Role = "resume"
	RoleNIDFront  Role = "nid_front"
	RoleNIDBack   Role = "nid_back"
)

// Roles lists every role in submission order. One application carries
// exactly one reference per role.
var Roles = []Role{RolePhoto, RoleSignature, RoleResume, RoleNIDFront, RoleNIDBack}

// Subdir is the role-specific storage area. Both NID scans share one area,
// matching the layout applications have always been stored under.
func (r Role) Subdir() string {
	switch r {
	case RolePhoto:
		return "photos"
	case RoleSignature:
		return "signatures"
	case RoleResume:
		return "resumes"
	case RoleNIDFront, RoleNIDBack:
		return "nids"
	}
	return "misc"
}

// MaxSubmissionBytes is the ceiling on the combined size of all documents in
// one submission.
const MaxSubmissionBytes int64 = 16 << 20 // 16 MiB

// allowedExtensions is the fixed whitelist of acceptable file types.
// Content is not inspected beyond this — by contract, not an oversight.
var allowedExtensions = map[string]bool{
	"pdf":  true,
	"doc":  true,
	"docx": true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// Upload is one candidate file as received from the caller. A zero Upload
// means the applicant chose no file for that role.
type Upload struct {
	Filename string
	Data     []byte
}

// Present reports whether a file was actually supplied. Absence is not an
// error at intake level; it yields an empty reference so callers can
// distinguish "omitted" from "invalid".
func (u Upload) Present() bool {
	return u.Filename != "" || len(u.Data) > 0
}

// Store persists attachment blobs and hands back stable references.
//
// Accept writes the document under a key derived from (owner, role,
// filename); re-accepting the same triple overwrites the previous object —
// last-write-wins, not versioned. Remove is the best-effort cleanup hook
// used when a submission is rejected after some documents were written.
type Store interface {
	Accept(role Role, filename string, data []byte, ownerID int64) (string, error)
	Remove(key string) error
}

// CheckSubmissionSize enforces the combined ceiling across one submission.
// It runs before any document is written so an oversized submission leaves
// no partial blobs behind.
func CheckSubmissionSize(uploads map[Role]Upload) error {
	var total int64
	for _, u := range uploads {
		total += int64(len(u.Data))
	}
	if total > MaxSubmissionBytes {
		return apperror.PayloadTooLarge(MaxSubmissionBytes)
	}
	return nil
}

// allowedFile reports whether the filename's extension, lower-cased, is in
// the whitelist. Mirrors the check applications have always gone through.
func allowedFile(filename string) bool {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return false
	}
	return allowedExtensions[strings.ToLower(filename[i+1:])]
}

// sanitizeFilename strips path components and maps every byte outside
// [A-Za-z0-9._-] to '_', closing off traversal and unsafe-character tricks.
// An input that sanitises to nothing (or only dots) becomes "file".
func sanitizeFilename(name string) string {
	// Drop any directory part regardless of separator convention.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	cleaned := strings.TrimLeft(b.String(), "._")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}
