package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/auth"
	"github.com/shahriar/govjobs/internal/model"
)

// testLogger discards output — service tests assert behavior, not logs.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserRepo is an in-memory repository.UserRepository. It reproduces the
// store's contract: uniqueness on nid and email decided inside Create.
type mockUserRepo struct {
	users  map[string]*model.User // keyed by NID
	nextID int64
	err    error // forced failure for every call when set
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[user.NID]; ok {
		return apperror.DuplicateIdentity()
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.DuplicateIdentity()
		}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.NID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByNID(_ context.Context, nid string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[nid]
	if !ok {
		return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "user not found"}
	}
	found := *u
	return &found, nil
}

func newTestIdentityService() (*IdentityService, *mockUserRepo) {
	repo := newMockUserRepo()
	return NewIdentityService(repo, auth.NewPasswordServiceForTest(4), testLogger()), repo
}

func TestRegister_Success(t *testing.T) {
	svc, repo := newTestIdentityService()

	p, err := svc.Register(context.Background(), "1234567890", "Test Citizen", "tc@example.com", "01700000000", "secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if p.UserID == 0 {
		t.Error("Register() returned zero UserID")
	}
	if p.NID != "1234567890" || p.Name != "Test Citizen" {
		t.Errorf("principal = %+v", p)
	}
	if p.Role != model.RoleApplicant {
		t.Errorf("Role = %q, want applicant", p.Role)
	}

	// The clear password must never reach the store.
	if stored := repo.users["1234567890"]; stored.PasswordHash == "secret123" || stored.PasswordHash == "" {
		t.Errorf("stored credential = %q — not a digest", stored.PasswordHash)
	}
}

func TestRegister_DuplicateNID(t *testing.T) {
	svc, _ := newTestIdentityService()

	if _, err := svc.Register(context.Background(), "1234567890", "First", "first@example.com", "1", "pw111111"); err != nil {
		t.Fatalf("Register() first: %v", err)
	}

	// Same NID, every other field different — still a duplicate.
	_, err := svc.Register(context.Background(), "1234567890", "Second", "second@example.com", "2", "pw222222")
	if !errors.Is(err, apperror.ErrDuplicateIdentity) {
		t.Errorf("Register() error = %v, want ErrDuplicateIdentity", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestIdentityService()

	tests := []struct {
		name                  string
		nid, uname, email, pw string
		wantField             string
	}{
		{"missing nid", "", "n", "e@x.com", "pw", "nid"},
		{"missing name", "123", "", "e@x.com", "pw", "name"},
		{"missing email", "123", "n", "", "pw", "email"},
		{"missing password", "123", "n", "e@x.com", "", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.nid, tt.uname, tt.email, "phone", tt.pw)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("Register() error = %v, want ErrValidation", err)
			}
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", appErr.Field, tt.wantField)
			}
		})
	}
}

func TestRegister_PasswordTooLong(t *testing.T) {
	svc, repo := newTestIdentityService()

	long := strings.Repeat("x", 73)
	_, err := svc.Register(context.Background(), "1234567890", "Test Citizen", "tc@example.com", "017", long)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Register() error = %v, want ErrValidation", err)
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Field != "password" {
		t.Errorf("Field = %q, want password", appErr.Field)
	}
	if len(repo.users) != 0 {
		t.Error("account stored despite rejected password")
	}
}

func TestRegister_HashFailure(t *testing.T) {
	// A cost beyond bcrypt's maximum makes hashing itself fail; that is an
	// internal fault, not a validation problem with the password.
	repo := newMockUserRepo()
	svc := NewIdentityService(repo, auth.NewPasswordServiceForTest(99), testLogger())

	_, err := svc.Register(context.Background(), "1234567890", "Test Citizen", "tc@example.com", "017", "secret123")
	if !errors.Is(err, apperror.ErrStorage) {
		t.Fatalf("Register() error = %v, want ErrStorage", err)
	}
	if errors.Is(err, apperror.ErrValidation) {
		t.Error("hash failure mislabeled as a validation error")
	}
	if len(repo.users) != 0 {
		t.Error("account stored despite hashing failure")
	}
}

func TestAuthenticate_Roundtrip(t *testing.T) {
	svc, _ := newTestIdentityService()

	reg, err := svc.Register(context.Background(), "1234567890", "Test Citizen", "tc@example.com", "017", "secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	p, err := svc.Authenticate(context.Background(), "1234567890", "secret123")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if p != reg {
		t.Errorf("Authenticate() principal = %+v, want %+v", p, reg)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, _ := newTestIdentityService()

	if _, err := svc.Register(context.Background(), "1234567890", "Test Citizen", "tc@example.com", "017", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Authenticate(context.Background(), "1234567890", "wrong-guess")
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticate_UnknownNID(t *testing.T) {
	svc, _ := newTestIdentityService()

	// Unknown NID gets the same error as a wrong password.
	_, err := svc.Authenticate(context.Background(), "0000000000", "whatever")
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterAdmin_SetsRole(t *testing.T) {
	svc, _ := newTestIdentityService()

	p, err := svc.RegisterAdmin(context.Background(), "9999999999", "Portal Admin", "admin@example.com", "adminpass")
	if err != nil {
		t.Fatalf("RegisterAdmin() error = %v", err)
	}
	if !p.IsAdmin() {
		t.Errorf("principal role = %q, want admin", p.Role)
	}

	// Admins authenticate through the same path as applicants.
	got, err := svc.Authenticate(context.Background(), "9999999999", "adminpass")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if !got.IsAdmin() {
		t.Error("authenticated admin lost its role")
	}
}
