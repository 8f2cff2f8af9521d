// Package model defines the core data types and structures used throughout the jobdeck system.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

// JobType represents the employment type of a posting.
type JobType string

const (
	// JobStatusActive indicates a posting that accepts applications.
	JobStatusActive JobStatus = "active"
	// JobStatusClosed indicates a posting that no longer accepts applications.
	JobStatusClosed JobStatus = "closed"

	// JobTypeFullTime represents a full-time position.
	JobTypeFullTime JobType = "Full-time"
	// JobTypePartTime represents a part-time position.
	JobTypePartTime JobType = "Part-time"
	// JobTypeContract represents a contract position.
	JobTypeContract JobType = "Contract"
	// JobTypeInternship represents an internship position.
	JobTypeInternship JobType = "Internship"
	// JobTypeRemote represents a remote position.
	JobTypeRemote JobType = "Remote"
)

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	return s == JobStatusActive || s == JobStatusClosed
}

// Valid returns true if the JobType is valid.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return true
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler for JobType so it can be
// parsed from query params and env values case-insensitively.
func (t *JobType) UnmarshalText(text []byte) error {
	v := strings.TrimSpace(string(text))
	for _, known := range []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote} {
		if strings.EqualFold(v, string(known)) {
			*t = known
			return nil
		}
	}
	return fmt.Errorf("invalid JobType: %q", v)
}

// Job represents an employer-owned posting describing an open role.
//
// ApplicationIDs mirrors the membership of the applications table for this
// posting; the workflow only ever appends to it.
type Job struct {
	ID             string    `json:"id"                        db:"id"`
	Title          string    `json:"title"                     db:"title"`
	Company        string    `json:"company"                   db:"company"`
	Location       string    `json:"location"                  db:"location"`
	Type           JobType   `json:"type"                      db:"type"`
	SalaryMin      int64     `json:"salary_min"                db:"salary_min"`
	SalaryMax      int64     `json:"salary_max"                db:"salary_max"`
	Skills         []string  `json:"skills"                    db:"skills"`
	Benefits       []string  `json:"benefits"                  db:"benefits"`
	PostedBy       string    `json:"posted_by"                 db:"posted_by"`
	PostedByName   string    `json:"posted_by_name,omitempty"  db:"posted_by_name"`
	Status         JobStatus `json:"status"                    db:"status"`
	ApplicationIDs []string  `json:"application_ids"           db:"application_ids"`
	CreatedAt      time.Time `json:"created_at"                db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"                db:"updated_at"`
}

// CreateJobRequest represents a request to create a new job posting.
type CreateJobRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Type         JobType  `json:"type"`
	SalaryMin    int64    `json:"salary_min"`
	SalaryMax    int64    `json:"salary_max"`
	Skills       []string `json:"skills"`
	Benefits     []string `json:"benefits"`
	PostedBy     string   `json:"-"`
	PostedByName string   `json:"-"`
}

// Validate validates the CreateJobRequest fields.
func (r *CreateJobRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(r.Company) == "" {
		return errors.New("company is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		return errors.New("location is required")
	}
	if !r.Type.Valid() {
		return errors.New("invalid job type")
	}
	if r.SalaryMin < 0 || r.SalaryMax < 0 {
		return errors.New("salary must be non-negative")
	}
	if r.SalaryMax > 0 && r.SalaryMin > r.SalaryMax {
		return errors.New("salary_min cannot exceed salary_max")
	}
	if strings.TrimSpace(r.PostedBy) == "" {
		return errors.New("posting employer is required")
	}
	return nil
}

// Normalize trims whitespace from free-text fields and drops empty list entries.
func (r *CreateJobRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Company = strings.TrimSpace(r.Company)
	r.Location = strings.TrimSpace(r.Location)
	r.Skills = trimNonEmpty(r.Skills)
	r.Benefits = trimNonEmpty(r.Benefits)
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JobListOptions holds filters for browsing active postings.
type JobListOptions struct {
	Search   string
	Type     JobType
	Location string
	Limit    int
	Offset   int
}
