// Package data implements the repository ports on PostgreSQL and Redis.
package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewJobRepo creates a new JobRepo instance.
func NewJobRepo(db *sql.DB, logger *slog.Logger) *JobRepo {
	return &JobRepo{DB: db, logger: logger}
}

const jobColumns = `
  id,
  title,
  company,
  location,
  type,
  salary_min,
  salary_max,
  skills,
  benefits,
  posted_by,
  posted_by_name,
  status,
  application_ids,
  created_at,
  updated_at
`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*model.Job, error) {
	var (
		job                      model.Job
		skills, benefits, appIDs []byte
	)
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Type,
		&job.SalaryMin,
		&job.SalaryMax,
		&skills,
		&benefits,
		&job.PostedBy,
		&job.PostedByName,
		&job.Status,
		&appIDs,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(skills, &job.Skills); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(benefits, &job.Benefits); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(appIDs, &job.ApplicationIDs); err != nil {
		return nil, err
	}
	return &job, nil
}

// Create inserts a new posting with status active and an empty membership list.
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, apperrors.Validation("create job request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	skills, err := marshalJSONB(req.Skills)
	if err != nil {
		return nil, err
	}
	benefits, err := marshalJSONB(req.Benefits)
	if err != nil {
		return nil, err
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO jobs (title, company, location, type, salary_min, salary_max, skills, benefits, posted_by, posted_by_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+jobColumns,
		req.Title, req.Company, req.Location, req.Type,
		req.SalaryMin, req.SalaryMax, skills, benefits,
		req.PostedBy, req.PostedByName,
	)

	job, err := scanJob(row)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("insert job: %w", err))
	}

	if r.logger != nil {
		r.logger.DebugContext(ctx, "job created", "id", job.ID, "title", job.Title, "posted_by", job.PostedBy)
	}
	return job, nil
}

// GetByID retrieves a posting by id.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFoundf("job %s not found", id)
	}

	row := r.DB.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get job %s: %w", id, err))
	}
	return job, nil
}

// List returns active postings matching the filters, newest first.
func (r *JobRepo) List(ctx context.Context, opts model.JobListOptions) ([]*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = 'active'`
	args := []any{}

	if s := strings.TrimSpace(opts.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (title ILIKE $` + n + ` OR company ILIKE $` + n + `)`
	}
	if opts.Type != "" {
		args = append(args, string(opts.Type))
		query += ` AND type = $` + strconv.Itoa(len(args))
	}
	if l := strings.TrimSpace(opts.Location); l != "" {
		args = append(args, "%"+l+"%")
		query += ` AND location ILIKE $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY created_at DESC`
	args = append(args, clampLimit(opts.Limit))
	query += ` LIMIT $` + strconv.Itoa(len(args))
	args = append(args, maxInt(opts.Offset, 0))
	query += ` OFFSET $` + strconv.Itoa(len(args))

	return r.queryJobs(ctx, query, args...)
}

// ListByEmployer returns all postings owned by one employer, newest first.
func (r *JobRepo) ListByEmployer(ctx context.Context, employerID string) ([]*model.Job, error) {
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE posted_by = $1 ORDER BY created_at DESC`,
		employerID,
	)
}

// Close marks an active posting closed. Returns false when no active posting
// owned by employerID matches id.
func (r *JobRepo) Close(ctx context.Context, id, employerID string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE jobs
		SET status = 'closed', updated_at = now()
		WHERE id = $1 AND posted_by = $2 AND status = 'active'
	`, id, employerID)
	if err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("close job %s: %w", id, err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("close job rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *JobRepo) queryJobs(ctx context.Context, query string, args ...any) ([]*model.Job, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("query jobs: %w", err))
	}
	defer rows.Close()

	var jobs []*model.Job
	for rows.Next() {
		job, scanErr := scanJob(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan job: %w", scanErr)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("iterate jobs: %w", err))
	}
	return jobs, nil
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
