package model

import (
	"errors"
	"strings"
	"time"
)

// ApplicationStatus represents the review state of an application.
type ApplicationStatus string

// MessageSender identifies which side of an application wrote a message.
type MessageSender string

const (
	// ApplicationStatusPending indicates an application awaiting employer review.
	ApplicationStatusPending ApplicationStatus = "pending"
	// ApplicationStatusAccepted indicates an application the employer accepted.
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	// ApplicationStatusRejected indicates an application the employer rejected.
	ApplicationStatusRejected ApplicationStatus = "rejected"

	// MessageSenderEmployer marks a message written by the posting employer.
	MessageSenderEmployer MessageSender = "employer"
	// MessageSenderApplicant marks a message written by the applicant.
	MessageSenderApplicant MessageSender = "applicant"
)

// Valid returns true if the ApplicationStatus is valid.
func (s ApplicationStatus) Valid() bool {
	return s == ApplicationStatusPending || s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// Decision returns true for the two terminal statuses an employer may set.
func (s ApplicationStatus) Decision() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// ApplicationMessage is one entry of an application's ordered message log.
type ApplicationMessage struct {
	From      MessageSender `json:"from"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
}

// Application represents a job seeker's submission against one posting.
//
// Everything except Status, Messages, Version and UpdatedAt is immutable after
// creation. Version backs the optimistic check on status-changing writes.
type Application struct {
	ID             string               `json:"id"                  db:"id"`
	JobID          string               `json:"job_id"              db:"job_id"`
	JobTitle       string               `json:"job_title"           db:"job_title"`
	ApplicantID    string               `json:"applicant_id"        db:"applicant_id"`
	ApplicantName  string               `json:"applicant_name"      db:"applicant_name"`
	ApplicantEmail string               `json:"applicant_email"     db:"applicant_email"`
	ApplicantPhone string               `json:"applicant_phone"     db:"applicant_phone"`
	FirstName      string               `json:"first_name"          db:"first_name"`
	LastName       string               `json:"last_name"           db:"last_name"`
	CoverLetter    string               `json:"cover_letter"        db:"cover_letter"`
	Experience     string               `json:"experience"          db:"experience"`
	Portfolio      string               `json:"portfolio,omitempty" db:"portfolio"`
	Resume         string               `json:"resume"              db:"resume"`
	ExpectedSalary int64                `json:"expected_salary"     db:"expected_salary"`
	Status         ApplicationStatus    `json:"status"              db:"status"`
	Messages       []ApplicationMessage `json:"messages"            db:"messages"`
	Version        int64                `json:"-"                   db:"version"`
	AppliedAt      time.Time            `json:"applied_at"          db:"applied_at"`
	UpdatedAt      time.Time            `json:"updated_at"          db:"updated_at"`
}

// ApplicationForm carries the fields a job seeker fills in when applying.
type ApplicationForm struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	CoverLetter    string `json:"cover_letter"`
	Experience     string `json:"experience"`
	Portfolio      string `json:"portfolio"`
	Resume         string `json:"resume"`
	ExpectedSalary int64  `json:"expected_salary"`
}

// Validate checks the required form fields. Portfolio is the only optional one.
func (f *ApplicationForm) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"phone", f.Phone},
		{"cover_letter", f.CoverLetter},
		{"experience", f.Experience},
		{"resume", f.Resume},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return errors.New(field.name + " is required and cannot be empty")
		}
	}
	if f.ExpectedSalary <= 0 {
		return errors.New("expected_salary is required")
	}
	return nil
}

// ApplicantName joins the form's name fields the way the rest of the system
// displays applicants.
func (f *ApplicationForm) ApplicantName() string {
	return strings.TrimSpace(strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName))
}

// JobSummary is the subset of a posting shown next to an application in the
// applicant's listing. Placeholder values stand in for deleted jobs.
type JobSummary struct {
	ID        string  `json:"id,omitempty"`
	Title     string  `json:"title,omitempty"`
	Company   string  `json:"company"`
	Location  string  `json:"location,omitempty"`
	Type      string  `json:"type"`
	SalaryMin int64   `json:"salary_min,omitempty"`
	SalaryMax int64   `json:"salary_max,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// PlaceholderJobSummary is substituted when an application's posting no longer
// exists. The listing must degrade per item rather than fail.
func PlaceholderJobSummary() JobSummary {
	return JobSummary{Company: "Unknown Company", Type: "Unknown Type"}
}

// EnrichedApplication pairs an application with its (possibly placeholder) job.
type EnrichedApplication struct {
	Application
	Job JobSummary `json:"job"`
}
