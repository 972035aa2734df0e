package model

import "time"

// Job is a published government job circular. Circulars are created by an
// administrative process outside this core and are read-only here.
//
// Dates are calendar dates (the time component is always midnight UTC). A
// circular whose Deadline is before today is closed; the catalog's ListOpen
// filters on that, but the lifecycle deliberately does not — late submission
// is the preserved behavior of the system this replaces.
type Job struct {
	ID           int64     `json:"id"           db:"id"`
	Title        string    `json:"title"        db:"title"`
	Department   string    `json:"department"   db:"department"`
	CircularNo   string    `json:"circularNo"   db:"circular_no"` // unique, e.g. "ICT-01/2023"
	PublishDate  time.Time `json:"publishDate"  db:"publish_date"`
	Deadline     time.Time `json:"deadline"     db:"deadline"`
	Description  string    `json:"description"  db:"description"`
	Requirements string    `json:"requirements" db:"requirements"`
	Salary       string    `json:"salary"       db:"salary"` // free-text band, may be empty
	Fee          float64   `json:"fee"          db:"application_fee"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
}
