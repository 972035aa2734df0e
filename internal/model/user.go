// Package model defines the data structures used throughout the application.
package model

import "time"

// Roles a user account can hold. Admin accounts go through the same identity
// store as applicants; the role flag is the only difference.
const (
	RoleApplicant = "applicant"
	RoleAdmin     = "admin"
)

// User represents a registered account, keyed by the citizen's national
// identity number (NID).
//
// NID and Email each carry a UNIQUE constraint in the store — one citizen,
// one account. PasswordHash is a bcrypt digest; the clear password is never
// stored, logged, or returned. Accounts are created once at registration and
// never mutated or deleted by this core.
type User struct {
	ID           int64     `json:"id"        db:"id"`
	NID          string    `json:"nid"       db:"nid"`
	Name         string    `json:"name"      db:"name"`
	Email        string    `json:"email"     db:"email"`
	Phone        string    `json:"phone"     db:"phone"`
	PasswordHash string    `json:"-"         db:"password"` // bcrypt digest, never serialised
	Role         string    `json:"role"      db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
