// Package service implements the business logic on top of the repository ports.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jobdeck/jobdeck-api/internal/core"
	"github.com/jobdeck/jobdeck-api/internal/domain/identity"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
	"github.com/jobdeck/jobdeck-api/internal/observability/metrics"
)

const (
	defaultJobSummaryTTL = 5 * time.Minute

	// fallbackEmployerName stands in when a posting carries no display name.
	fallbackEmployerName = "Employer"
)

// WorkflowServiceOptions groups dependencies for WorkflowService.
type WorkflowServiceOptions struct {
	Applications core.ApplicationRepository // Required: application repository
	Jobs         core.JobRepository         // Required: job repository
	Cache        core.CacheRepository       // Optional: job summary cache for listings
	CacheTTL     time.Duration              // Optional: job summary TTL (defaults to 5m)
	Clock        core.TimeProvider          // Optional: clock override for tests
	Logger       *slog.Logger               // Optional: structured logger
}

// WorkflowService drives the application lifecycle: submission by a job
// seeker, the employer's accept/reject response, and the enriched listings
// both sides read.
//
// Each mutating operation groups its document writes into a single repository
// call so the data layer can commit them in one transaction.
type WorkflowService struct {
	apps   core.ApplicationRepository
	jobs   core.JobRepository
	cache  core.CacheRepository
	ttl    time.Duration
	clock  core.TimeProvider
	logger *slog.Logger
}

// NewWorkflowService constructs a new WorkflowService.
func NewWorkflowService(opts WorkflowServiceOptions) (*WorkflowService, error) {
	if opts.Applications == nil {
		return nil, errors.New("ApplicationRepository is required")
	}
	if opts.Jobs == nil {
		return nil, errors.New("JobRepository is required")
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultJobSummaryTTL
	}
	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "workflow_service")
	}

	return &WorkflowService{
		apps:   opts.Applications,
		jobs:   opts.Jobs,
		cache:  opts.Cache,
		ttl:    ttl,
		clock:  clock,
		logger: logger,
	}, nil
}

// MustNewWorkflowService constructs a new WorkflowService and panics on error.
// Use this when you're certain the options are valid (e.g., in main.go).
func MustNewWorkflowService(opts WorkflowServiceOptions) *WorkflowService {
	svc, err := NewWorkflowService(opts)
	if err != nil {
		panic(fmt.Sprintf("failed to create WorkflowService: %v", err))
	}
	return svc
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// SubmitApplication files an application by applicant against the posting
// identified by jobID. It creates the application with status pending and an
// empty message log, appends its id to the posting's membership list, and
// notifies the posting employer, all in one transaction.
func (s *WorkflowService) SubmitApplication(ctx context.Context, jobID string, applicant identity.Identity, form *model.ApplicationForm) (*model.Application, error) {
	if applicant.ID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if form == nil {
		return nil, apperrors.Validation("application form is required")
	}
	if err := form.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != model.JobStatusActive {
		return nil, apperrors.Validation("job is no longer accepting applications")
	}

	name := form.ApplicantName()
	params := core.SubmitApplicationParams{
		Application: core.NewApplication{
			JobID:          job.ID,
			JobTitle:       job.Title,
			ApplicantID:    applicant.ID,
			ApplicantName:  name,
			ApplicantEmail: applicant.Email,
			ApplicantPhone: form.Phone,
			FirstName:      form.FirstName,
			LastName:       form.LastName,
			CoverLetter:    form.CoverLetter,
			Experience:     form.Experience,
			Portfolio:      form.Portfolio,
			Resume:         form.Resume,
			ExpectedSalary: form.ExpectedSalary,
		},
		Notification: model.CreateNotificationRequest{
			RecipientID:   job.PostedBy,
			Type:          model.NotificationTypeNewApplication,
			JobID:         job.ID,
			JobTitle:      job.Title,
			ApplicantID:   applicant.ID,
			ApplicantName: name,
			CompanyName:   job.Company,
			Message:       fmt.Sprintf("%s applied for %s", name, job.Title),
			Severity:      "info",
		},
	}

	app, err := s.apps.Submit(ctx, params)
	if err != nil {
		return nil, err
	}

	s.invalidateJobSummary(ctx, job.ID)
	s.invalidateUnreadCount(ctx, job.PostedBy)
	metrics.ApplicationsSubmitted.Inc()
	metrics.NotificationsCreated.WithLabelValues(string(model.NotificationTypeNewApplication)).Inc()

	if s.logger != nil {
		s.logger.InfoContext(ctx, "application submitted",
			"id", app.ID,
			"job_id", job.ID,
			"applicant_id", applicant.ID,
		)
	}
	return app, nil
}

// RespondToApplication records the employer's decision on one application.
// It appends the response message and sets the status in one write, notifies
// the applicant, and, on acceptance only, appends a frozen summary to the
// applicant's profile. The whole group commits in one transaction guarded by
// the application's version.
//
// Responding again to an already-decided application is allowed and appends a
// second message; only a concurrent response racing the same version fails,
// with a Conflict error.
func (s *WorkflowService) RespondToApplication(ctx context.Context, applicationID string, caller identity.Identity, decision model.ApplicationStatus, message string) error {
	if !decision.Decision() {
		return apperrors.ValidationField("decision", "decision must be accepted or rejected")
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return err
	}
	if job.PostedBy != caller.ID {
		return apperrors.Unauthorized("only the posting employer may respond to this application")
	}

	now := s.clock.Now()
	employerName := job.PostedByName
	if employerName == "" {
		employerName = fallbackEmployerName
	}
	severity := "info"
	if decision == model.ApplicationStatusAccepted {
		severity = "success"
	}

	params := core.ApplyResponseParams{
		ApplicationID:   app.ID,
		ExpectedVersion: app.Version,
		Status:          decision,
		Message: model.ApplicationMessage{
			From:      model.MessageSenderEmployer,
			Message:   message,
			Timestamp: now,
		},
		Notification: model.CreateNotificationRequest{
			RecipientID:   app.ApplicantID,
			Type:          model.NotificationTypeApplicationUpdate,
			JobID:         job.ID,
			JobTitle:      job.Title,
			ApplicationID: app.ID,
			CompanyName:   job.Company,
			EmployerName:  employerName,
			Status:        string(decision),
			Message:       message,
			Severity:      severity,
		},
	}
	if decision == model.ApplicationStatusAccepted {
		params.ProfileEntry = &core.ProfileAppend{
			UserID: app.ApplicantID,
			Entry: model.AcceptedApplication{
				JobID:           job.ID,
				JobTitle:        job.Title,
				Company:         job.Company,
				AppliedAt:       app.AppliedAt,
				AcceptedAt:      now,
				Status:          string(model.ApplicationStatusAccepted),
				CoverLetter:     app.CoverLetter,
				Experience:      app.Experience,
				Portfolio:       app.Portfolio,
				Resume:          app.Resume,
				ExpectedSalary:  app.ExpectedSalary,
				ResponseMessage: message,
			},
		}
	}

	if err := s.apps.ApplyResponse(ctx, params); err != nil {
		if apperrors.IsConflict(err) {
			metrics.ResponseConflicts.Inc()
		}
		return err
	}

	s.invalidateUnreadCount(ctx, app.ApplicantID)
	metrics.ApplicationResponses.WithLabelValues(string(decision)).Inc()
	metrics.NotificationsCreated.WithLabelValues(string(model.NotificationTypeApplicationUpdate)).Inc()

	if s.logger != nil {
		s.logger.InfoContext(ctx, "application response recorded",
			"id", app.ID,
			"job_id", job.ID,
			"decision", decision,
		)
	}
	return nil
}

// ListForApplicant returns the applicant's applications newest first, each
// joined with a summary of its posting. A deleted posting degrades that one
// item to a placeholder rather than failing the listing.
func (s *WorkflowService) ListForApplicant(ctx context.Context, applicantID string) ([]model.EnrichedApplication, error) {
	if applicantID == "" {
		return nil, apperrors.Validation("applicant id is required")
	}

	apps, err := s.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedApplication, 0, len(apps))
	for _, app := range apps {
		enriched = append(enriched, model.EnrichedApplication{
			Application: *app,
			Job:         s.jobSummary(ctx, app.JobID),
		})
	}

	// Newest first; a zero timestamp sorts as the oldest possible value.
	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].AppliedAt.After(enriched[j].AppliedAt)
	})
	return enriched, nil
}

// ListForJob returns the applications filed against one posting, newest
// first. Only the posting employer may read them.
func (s *WorkflowService) ListForJob(ctx context.Context, jobID string, caller identity.Identity) ([]*model.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != caller.ID {
		return nil, apperrors.Unauthorized("only the posting employer may list these applications")
	}
	return s.apps.ListByJob(ctx, job.ID)
}

func jobSummaryCacheKey(jobID string) string { return "job_summary:" + jobID }

// jobSummary resolves the posting summary shown next to an application,
// consulting the cache first. Any failure degrades to the placeholder.
func (s *WorkflowService) jobSummary(ctx context.Context, jobID string) model.JobSummary {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, jobSummaryCacheKey(jobID)); err == nil && raw != nil {
			var summary model.JobSummary
			if err := json.Unmarshal(raw, &summary); err == nil {
				metrics.JobCacheHits.Inc()
				return summary
			}
		}
	}
	metrics.JobCacheMisses.Inc()

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if s.logger != nil && !apperrors.IsNotFound(err) {
			s.logger.WarnContext(ctx, "job lookup failed, using placeholder", "job_id", jobID, "error", err)
		}
		return model.PlaceholderJobSummary()
	}

	status := string(job.Status)
	summary := model.JobSummary{
		ID:        job.ID,
		Title:     job.Title,
		Company:   job.Company,
		Location:  job.Location,
		Type:      string(job.Type),
		SalaryMin: job.SalaryMin,
		SalaryMax: job.SalaryMax,
		Status:    &status,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, jobSummaryCacheKey(jobID), raw, s.ttl); err != nil && s.logger != nil {
				s.logger.WarnContext(ctx, "job summary cache write failed", "job_id", jobID, "error", err)
			}
		}
	}
	return summary
}

// invalidateJobSummary drops the cached summary after a posting-affecting
// write. Failures are logged, never surfaced.
func (s *WorkflowService) invalidateJobSummary(ctx context.Context, jobID string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, jobSummaryCacheKey(jobID)); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "job summary cache invalidation failed", "job_id", jobID, "error", err)
	}
}

// invalidateUnreadCount drops the recipient's cached unread counter after a
// notification-creating write, so the badge reflects it immediately instead
// of waiting out the counter TTL. Failures are logged, never surfaced.
func (s *WorkflowService) invalidateUnreadCount(ctx context.Context, recipientID string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, unreadCountCacheKey(recipientID)); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "unread count cache invalidation failed", "recipient_id", recipientID, "error", err)
	}
}
