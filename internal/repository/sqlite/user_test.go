package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/model"
)

func TestUserCreate(t *testing.T) {
	db := newTestDB(t)

	user := createTestUser(t, db, "1234567890")

	if user.ID == 0 {
		t.Error("CreateUser() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreateUser() did not set user.CreatedAt")
	}
	if user.Role != model.RoleApplicant {
		t.Errorf("Role = %q, want default %q", user.Role, model.RoleApplicant)
	}
}

func TestUserCreate_DuplicateNID(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "1234567890")

	// Same NID, everything else different — must still be rejected.
	dup := &model.User{
		NID:          "1234567890",
		Name:         "Someone Else",
		Email:        "different@example.com",
		Phone:        "01811111111",
		PasswordHash: "$2a$04$differenthash",
	}
	err := db.CreateUser(context.Background(), dup)
	if err == nil {
		t.Fatal("CreateUser() should have failed for duplicate NID")
	}
	if !errors.Is(err, apperror.ErrDuplicateIdentity) {
		t.Errorf("CreateUser() error = %v, want ErrDuplicateIdentity", err)
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	first := createTestUser(t, db, "1111111111")

	dup := &model.User{
		NID:          "2222222222",
		Name:         "Other",
		Email:        first.Email, // taken
		Phone:        "01811111111",
		PasswordHash: "$2a$04$hash",
	}
	err := db.CreateUser(context.Background(), dup)
	if !errors.Is(err, apperror.ErrDuplicateIdentity) {
		t.Errorf("CreateUser() error = %v, want ErrDuplicateIdentity", err)
	}
}

func TestUserCreate_AdminRolePersists(t *testing.T) {
	db := newTestDB(t)

	admin := &model.User{
		NID:          "9999999999",
		Name:         "Portal Admin",
		Email:        "admin@example.com",
		Phone:        "0",
		PasswordHash: "$2a$04$hash",
		Role:         model.RoleAdmin,
	}
	if err := db.CreateUser(context.Background(), admin); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	found, err := db.GetUserByNID(context.Background(), "9999999999")
	if err != nil {
		t.Fatalf("GetUserByNID() error = %v", err)
	}
	if found.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want %q", found.Role, model.RoleAdmin)
	}
}

func TestUserGetByNID(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "5556667778")

	found, err := db.GetUserByNID(context.Background(), "5556667778")
	if err != nil {
		t.Fatalf("GetUserByNID() error = %v", err)
	}

	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Email != created.Email {
		t.Errorf("Email = %q, want %q", found.Email, created.Email)
	}
	if found.PasswordHash != created.PasswordHash {
		t.Error("PasswordHash was not round-tripped")
	}
}

func TestUserGetByNID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByNID(context.Background(), "0000000000")
	if err == nil {
		t.Fatal("GetUserByNID() should have failed for unknown NID")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByNID() error = %v, want ErrNotFound", err)
	}
}
