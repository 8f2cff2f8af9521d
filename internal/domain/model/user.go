package model

import "time"

// UserRole tags what a user does on the board. The workflow consumes the tag;
// issuing and validating credentials stays with the identity provider.
type UserRole string

const (
	// RoleJobSeeker marks a user who browses postings and applies.
	RoleJobSeeker UserRole = "jobseeker"
	// RoleEmployer marks a user who posts jobs and reviews applications.
	RoleEmployer UserRole = "employer"
)

// Valid returns true if the UserRole is valid.
func (r UserRole) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

// AcceptedApplication is the denormalized summary appended to a user's profile
// when an employer accepts their application. It is a frozen audit record: a
// later status change never rewrites it.
type AcceptedApplication struct {
	JobID           string    `json:"job_id"`
	JobTitle        string    `json:"job_title"`
	Company         string    `json:"company"`
	AppliedAt       time.Time `json:"applied_at"`
	AcceptedAt      time.Time `json:"accepted_at"`
	Status          string    `json:"status"`
	CoverLetter     string    `json:"cover_letter"`
	Experience      string    `json:"experience"`
	Portfolio       string    `json:"portfolio,omitempty"`
	Resume          string    `json:"resume"`
	ExpectedSalary  int64     `json:"expected_salary"`
	ResponseMessage string    `json:"response_message"`
}

// User is a profile record keyed by the identity provider's opaque id.
type User struct {
	ID          string   `json:"id"                    db:"id"`
	Email       string   `json:"email"                 db:"email"`
	DisplayName string   `json:"display_name"          db:"display_name"`
	Role        UserRole `json:"role"                  db:"role"`
	Title       string   `json:"title,omitempty"       db:"title"`
	Location    string   `json:"location,omitempty"    db:"location"`
	Bio         string   `json:"bio,omitempty"         db:"bio"`
	Skills      []string `json:"skills,omitempty"      db:"skills"`
	// Applications holds the accepted-application summaries, append-only.
	Applications []AcceptedApplication `json:"applications" db:"applications"`
	CreatedAt    time.Time             `json:"created_at"   db:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"   db:"updated_at"`
}
