package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/model"
	"github.com/shahriar/govjobs/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new account row.
//
// There is deliberately no SELECT-then-INSERT here: under concurrent
// registration attempts that race would let two accounts claim one NID. The
// UNIQUE constraints do the check and the insert as one atomic unit, and the
// constraint failure is translated to ErrDuplicateIdentity.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleApplicant
	}
	user.CreatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (nid, name, email, phone, password, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.NID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.DuplicateIdentity()
		}
		return apperror.Storage("registering user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetUserByNID retrieves an account by identity number.
// Returns apperror.ErrNotFound if no account exists with that NID.
func (db *DB) GetUserByNID(ctx context.Context, nid string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, nid, name, email, phone, password, role, created_at
		 FROM users WHERE nid = ?`,
		nid,
	).Scan(
		&u.ID,
		&u.NID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Message: fmt.Sprintf("user not found with nid %s", nid),
			}
		}
		return nil, apperror.Storage("looking up user", err)
	}

	return &u, nil
}
