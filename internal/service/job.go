package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jobdeck/jobdeck-api/internal/core"
	"github.com/jobdeck/jobdeck-api/internal/domain/identity"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo   core.JobRepository // Required: job repository
	Logger *slog.Logger       // Optional: structured logger
}

// JobService provides business logic for job posting operations: creation and
// closing by employers, and browsing by everyone.
type JobService struct {
	repo   core.JobRepository
	logger *slog.Logger
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) (*JobService, error) {
	if opts.Repo == nil {
		return nil, errors.New("JobRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "job_service")
	}
	return &JobService{repo: opts.Repo, logger: logger}, nil
}

// MustNewJobService constructs a new JobService and panics on error.
func MustNewJobService(opts JobServiceOptions) *JobService {
	svc, err := NewJobService(opts)
	if err != nil {
		panic(fmt.Sprintf("failed to create JobService: %v", err))
	}
	return svc
}

// Create publishes a new posting owned by the calling employer.
func (s *JobService) Create(ctx context.Context, caller identity.Identity, req *model.CreateJobRequest) (*model.Job, error) {
	if !caller.IsEmployer() {
		return nil, apperrors.Unauthorized("only employers may post jobs")
	}
	if req == nil {
		return nil, apperrors.Validation("create job request is required")
	}
	req.PostedBy = caller.ID
	req.PostedByName = caller.Name

	job, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job posted", "id", job.ID, "title", job.Title, "posted_by", job.PostedBy)
	}
	return job, nil
}

// Get retrieves one posting by id.
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	return s.repo.GetByID(ctx, id)
}

// Browse returns active postings matching the filters, newest first.
func (s *JobService) Browse(ctx context.Context, opts model.JobListOptions) ([]*model.Job, error) {
	return s.repo.List(ctx, opts)
}

// ListMine returns every posting owned by the calling employer.
func (s *JobService) ListMine(ctx context.Context, caller identity.Identity) ([]*model.Job, error) {
	if !caller.IsEmployer() {
		return nil, apperrors.Unauthorized("only employers own postings")
	}
	return s.repo.ListByEmployer(ctx, caller.ID)
}

// Close stops a posting from accepting applications. Only the owning
// employer may close it, and only once.
func (s *JobService) Close(ctx context.Context, caller identity.Identity, id string) error {
	if !caller.IsEmployer() {
		return apperrors.Unauthorized("only employers may close postings")
	}

	closed, err := s.repo.Close(ctx, id, caller.ID)
	if err != nil {
		return err
	}
	if !closed {
		return apperrors.NotFoundf("no active posting %s owned by caller", id)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job closed", "id", id, "posted_by", caller.ID)
	}
	return nil
}
