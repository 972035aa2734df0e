package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shahriar/govjobs/internal/apperror"
)

// compile-time check that *DiskStore implements Store
var _ Store = (*DiskStore)(nil)

// DiskStore persists attachments on the local filesystem under a fixed root
// directory. Keys are root-relative, slash-separated paths such as
// "photos/42_photo_me.jpg"; the same key always addresses the same object.
type DiskStore struct {
	root string
}

// NewDiskStore creates a DiskStore rooted at dir, creating it if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: creating upload dir %s: %w", dir, err)
	}
	return &DiskStore{root: dir}, nil
}

// Accept validates and writes one document, returning its stable key.
//
// Absence (no file chosen) yields ("", nil) — the caller decides whether the
// role was required. A filename outside the whitelist fails with
// UnsupportedType before anything touches the disk. The key embeds owner id
// and role, so two applicants — or two roles of one applicant — can upload
// identically named files without collision.
func (s *DiskStore) Accept(role Role, filename string, data []byte, ownerID int64) (string, error) {
	if filename == "" && len(data) == 0 {
		return "", nil
	}

	if !allowedFile(filename) {
		return "", apperror.UnsupportedType(string(role), filename)
	}

	name := fmt.Sprintf("%d_%s_%s", ownerID, role, sanitizeFilename(filename))
	key := role.Subdir() + "/" + name

	dir := filepath.Join(s.root, role.Subdir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperror.Storage(fmt.Sprintf("preparing %s area", role), err)
	}

	// create-or-overwrite: re-accepting the same (owner, role, filename)
	// replaces the previous object at the same key.
	if err := os.WriteFile(filepath.Join(s.root, filepath.FromSlash(key)), data, 0o644); err != nil {
		return "", apperror.Storage(fmt.Sprintf("writing %s document", role), err)
	}

	return key, nil
}

// Remove deletes the object at key. Used as the best-effort cleanup hook
// when a submission fails after some documents were already written; a
// missing object is not an error.
func (s *DiskStore) Remove(key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: removing %s: %w", key, err)
	}
	return nil
}
