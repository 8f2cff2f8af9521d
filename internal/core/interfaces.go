// Package core defines the ports between the service layer and the data layer.
package core

import (
	"context"
	"time"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Service implementations depend on these interfaces, not concrete implementations.

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	List(ctx context.Context, opts model.JobListOptions) ([]*model.Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*model.Job, error)
	// Close marks a posting closed. Returns false when no posting owned by
	// employerID matches id.
	Close(ctx context.Context, id, employerID string) (bool, error)
}

// NewApplication carries the immutable fields of an application to be created.
// The repository assigns id, status, timestamps and the empty message log.
type NewApplication struct {
	JobID          string
	JobTitle       string
	ApplicantID    string
	ApplicantName  string
	ApplicantEmail string
	ApplicantPhone string
	FirstName      string
	LastName       string
	CoverLetter    string
	Experience     string
	Portfolio      string
	Resume         string
	ExpectedSalary int64
}

// SubmitApplicationParams groups the documents one submission writes. The
// repository persists them in a single transaction: the application row, the
// membership append on the posting, and the employer notification.
type SubmitApplicationParams struct {
	Application  NewApplication
	Notification model.CreateNotificationRequest
}

// ProfileAppend names the applicant profile to receive an accepted-application
// summary. A missing user row skips the append without failing the response.
type ProfileAppend struct {
	UserID string
	Entry  model.AcceptedApplication
}

// ApplyResponseParams groups the documents one employer response writes.
// ExpectedVersion backs the optimistic check: when the stored version moved,
// the repository returns a Conflict error and writes nothing.
type ApplyResponseParams struct {
	ApplicationID   string
	ExpectedVersion int64
	Status          model.ApplicationStatus
	Message         model.ApplicationMessage
	Notification    model.CreateNotificationRequest
	// ProfileEntry is nil unless the decision was an acceptance.
	ProfileEntry *ProfileAppend
}

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	GetByID(ctx context.Context, id string) (*model.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]*model.Application, error)
	Submit(ctx context.Context, params SubmitApplicationParams) (*model.Application, error)
	ApplyResponse(ctx context.Context, params ApplyResponseParams) error
}

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	Create(ctx context.Context, req model.CreateNotificationRequest) (*model.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*model.Notification, error)
	// MarkRead flips the read flag. Returns false when the notification does
	// not exist or belongs to another recipient.
	MarkRead(ctx context.Context, id, recipientID string) (bool, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
}

// UserRepository defines the interface for user profile data operations.
type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	ListByRole(ctx context.Context, role model.UserRole, limit, offset int) ([]*model.User, error)
}

// ChatRepository defines the interface for chat data operations.
type ChatRepository interface {
	Create(ctx context.Context, participantIDs []string) (*model.Chat, error)
	GetByID(ctx context.Context, id string) (*model.Chat, error)
	// FindByParticipants returns the existing chat between two users, or a
	// NotFound error when none exists yet.
	FindByParticipants(ctx context.Context, userA, userB string) (*model.Chat, error)
	ListByParticipant(ctx context.Context, userID string) ([]*model.Chat, error)
	AppendMessage(ctx context.Context, id string, msg model.ChatMessage) (*model.Chat, error)
}

// TimeProvider abstracts the clock so services and repositories can be tested
// with deterministic timestamps.
type TimeProvider interface {
	Now() time.Time
}
