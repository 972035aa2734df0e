package model

import "time"

// Application statuses. Pending is the only value this core ever writes;
// approval and rejection happen in an administrative workflow elsewhere.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// PersonalFields is the applicant-supplied portion of a submission. Every
// field is required; the validate tags drive the service-level check and the
// tag name is what an InvalidSubmission error reports back.
//
// DOB is kept as the submitted "2006-01-02" string, the same shape the store
// persists. The date is applicant-attested data, not something this core
// computes with.
type PersonalFields struct {
	Name       string `json:"name"        validate:"required"`
	FatherName string `json:"father_name" validate:"required"`
	MotherName string `json:"mother_name" validate:"required"`
	DOB        string `json:"dob"         validate:"required"`
	Gender     string `json:"gender"      validate:"required"`
	Education  string `json:"education"   validate:"required"`
	Experience string `json:"experience"  validate:"required"`

	// Recorded as supplied, without settlement verification.
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id"`
}

// Application is one candidate's submission against one job circular.
//
// The personal fields are a denormalised copy taken at submission time — the
// application must reflect what was attested when it was filed, even if the
// account's profile later changes. The five *Path fields are attachment
// references into the document store; each is present exactly once per
// application.
type Application struct {
	ID     int64  `json:"id"     db:"id"`
	UserID int64  `json:"userId" db:"user_id"`
	JobID  int64  `json:"jobId"  db:"job_id"`
	NID    string `json:"nid"    db:"nid"`

	PersonalFields

	PhotoPath     string `json:"photoPath"     db:"photo_path"`
	SignaturePath string `json:"signaturePath" db:"signature_path"`
	ResumePath    string `json:"resumePath"    db:"resume_path"`
	NIDFrontPath  string `json:"nidFrontPath"  db:"nid_front_path"`
	NIDBackPath   string `json:"nidBackPath"   db:"nid_back_path"`

	Status    string    `json:"status"    db:"status"`
	AppliedAt time.Time `json:"appliedAt" db:"applied_at"`
}

// ApplicationSummary is the (application, job) join returned by the
// applicant dashboard listing, newest first.
type ApplicationSummary struct {
	ApplicationID int64     `json:"applicationId"`
	JobTitle      string    `json:"jobTitle"`
	Department    string    `json:"department"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"appliedAt"`
}

// ReportCounts is the admin aggregate snapshot.
type ReportCounts struct {
	TotalApplications   int64 `json:"totalApplications"`
	PendingApplications int64 `json:"pendingApplications"`
	TotalJobs           int64 `json:"totalJobs"`
}

// JobApplicationCount pairs a circular title with its application volume.
// Jobs with zero applications are included.
type JobApplicationCount struct {
	JobTitle     string `json:"jobTitle"`
	Applications int64  `json:"applications"`
}
