// Package sqlite implements the repository interfaces on SQLite.
//
// The driver is modernc.org/sqlite — a pure Go translation of SQLite, so no
// CGo and no separate database server: the store lives inside the binary as
// a single file (or ":memory:" for tests).
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods for
// users, jobs, applications, and reporting.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for an in-memory store),
// configures it, and runs migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Pragmas apply per connection; a single pooled connection keeps them
	// in force everywhere (and SQLite serialises writers anyway).
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets concurrent readers proceed while a submit is writing.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Applications reference users and jobs; the store must check it.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool, flushing the WAL.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the three record sets. CREATE TABLE IF NOT EXISTS keeps it
// safe to run on every start.
func (db *DB) migrate() error {
	// Accounts. nid and email each carry the UNIQUE constraint that makes
	// registration's check-and-insert a single atomic unit.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			nid        TEXT NOT NULL UNIQUE,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL UNIQUE,
			phone      TEXT NOT NULL,
			password   TEXT NOT NULL,
			role       TEXT NOT NULL DEFAULT 'applicant',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// Circulars. Read-only to this core.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS jobs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			title           TEXT NOT NULL,
			department      TEXT NOT NULL,
			circular_no     TEXT NOT NULL UNIQUE,
			publish_date    DATE NOT NULL,
			deadline        DATE NOT NULL,
			description     TEXT NOT NULL,
			requirements    TEXT NOT NULL,
			salary          TEXT NOT NULL DEFAULT '',
			application_fee DECIMAL(10,2) NOT NULL DEFAULT 0,
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_jobs_deadline ON jobs(deadline);
	`)
	if err != nil {
		return fmt.Errorf("creating jobs table: %w", err)
	}

	// Applications. All five document references are NOT NULL — a row only
	// exists once every required document was accepted. (user_id, job_id)
	// is deliberately NOT unique: repeat applications are allowed.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS applications (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id        INTEGER NOT NULL REFERENCES users(id),
			job_id         INTEGER NOT NULL REFERENCES jobs(id),
			nid            TEXT NOT NULL,
			name           TEXT NOT NULL,
			father_name    TEXT NOT NULL,
			mother_name    TEXT NOT NULL,
			dob            DATE NOT NULL,
			gender         TEXT NOT NULL,
			education      TEXT NOT NULL,
			experience     TEXT NOT NULL,
			photo_path     TEXT NOT NULL,
			signature_path TEXT NOT NULL,
			resume_path    TEXT NOT NULL,
			nid_front_path TEXT NOT NULL,
			nid_back_path  TEXT NOT NULL,
			payment_method TEXT NOT NULL DEFAULT '',
			transaction_id TEXT NOT NULL DEFAULT '',
			status         TEXT NOT NULL DEFAULT 'pending',
			applied_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_applications_user_id ON applications(user_id);
		CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications(job_id);
	`)
	if err != nil {
		return fmt.Errorf("creating applications table: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure. The
// pure Go driver surfaces constraint errors by message, not by a typed
// error, so the message is the contract we have.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
