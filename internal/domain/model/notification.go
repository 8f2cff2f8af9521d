package model

import "time"

// NotificationType categorizes the workflow event a notification describes.
type NotificationType string

const (
	// NotificationTypeNewApplication tells an employer a seeker applied to their posting.
	NotificationTypeNewApplication NotificationType = "new_application"
	// NotificationTypeApplicationUpdate tells an applicant the employer responded.
	NotificationTypeApplicationUpdate NotificationType = "application_update"
)

// Valid returns true if the NotificationType is valid.
func (t NotificationType) Valid() bool {
	return t == NotificationTypeNewApplication || t == NotificationTypeApplicationUpdate
}

// Notification is a one-way message addressed to one recipient describing a
// workflow event. It is never mutated after creation except for the read flag.
type Notification struct {
	ID            string           `json:"id"                       db:"id"`
	RecipientID   string           `json:"recipient_id"             db:"recipient_id"`
	Type          NotificationType `json:"type"                     db:"type"`
	JobID         string           `json:"job_id"                   db:"job_id"`
	JobTitle      string           `json:"job_title"                db:"job_title"`
	ApplicationID string           `json:"application_id"           db:"application_id"`
	ApplicantID   string           `json:"applicant_id,omitempty"   db:"applicant_id"`
	ApplicantName string           `json:"applicant_name,omitempty" db:"applicant_name"`
	CompanyName   string           `json:"company_name,omitempty"   db:"company_name"`
	EmployerName  string           `json:"employer_name,omitempty"  db:"employer_name"`
	// Status carries the application decision for application_update
	// notifications ("accepted"/"rejected").
	Status  string `json:"status,omitempty"  db:"status"`
	Message string `json:"message,omitempty" db:"message"`
	// Severity is the UI hint the original stored as notificationType:
	// "success" for acceptances, "info" otherwise.
	Severity  string    `json:"severity,omitempty" db:"severity"`
	Read      bool      `json:"read"               db:"read"`
	CreatedAt time.Time `json:"created_at"         db:"created_at"`
}

// CreateNotificationRequest carries the fields for one notification insert.
// The workflow engine fills it from the job and application involved.
type CreateNotificationRequest struct {
	RecipientID   string
	Type          NotificationType
	JobID         string
	JobTitle      string
	ApplicationID string
	ApplicantID   string
	ApplicantName string
	CompanyName   string
	EmployerName  string
	Status        string
	Message       string
	Severity      string
}
