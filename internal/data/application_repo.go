package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jobdeck/jobdeck-api/internal/core"
	"github.com/jobdeck/jobdeck-api/internal/data/pgxutil"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

// ApplicationRepo provides database operations for applications, including the
// two multi-document workflow writes. Each of those runs in one transaction so
// a failed step never leaves an orphaned application or a status change
// without its notification.
type ApplicationRepo struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewApplicationRepo creates a new ApplicationRepo instance.
func NewApplicationRepo(db *sql.DB, logger *slog.Logger) *ApplicationRepo {
	return &ApplicationRepo{DB: db, logger: logger}
}

const applicationColumns = `
  id,
  job_id,
  job_title,
  applicant_id,
  applicant_name,
  applicant_email,
  applicant_phone,
  first_name,
  last_name,
  cover_letter,
  experience,
  portfolio,
  resume,
  expected_salary,
  status,
  messages,
  version,
  applied_at,
  updated_at
`

func scanApplication(row rowScanner) (*model.Application, error) {
	var (
		app      model.Application
		messages []byte
	)
	if err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.JobTitle,
		&app.ApplicantID,
		&app.ApplicantName,
		&app.ApplicantEmail,
		&app.ApplicantPhone,
		&app.FirstName,
		&app.LastName,
		&app.CoverLetter,
		&app.Experience,
		&app.Portfolio,
		&app.Resume,
		&app.ExpectedSalary,
		&app.Status,
		&messages,
		&app.Version,
		&app.AppliedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(messages, &app.Messages); err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByID retrieves an application by id.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFoundf("application %s not found", id)
	}

	row := r.DB.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get application %s: %w", id, err))
	}
	return app, nil
}

// ListByApplicant returns one seeker's applications, newest first. A missing
// applied_at sorts as the oldest possible value.
func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	return r.queryApplications(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE applicant_id = $1
		ORDER BY applied_at DESC NULLS LAST
	`, applicantID)
}

// ListByJob returns the applications filed against one posting, newest first.
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]*model.Application, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		return nil, apperrors.NotFoundf("job %s not found", jobID)
	}
	return r.queryApplications(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE job_id = $1
		ORDER BY applied_at DESC NULLS LAST
	`, jobID)
}

// Submit writes one submission's documents atomically: the pending application,
// the membership append on the posting, and the employer notification.
func (r *ApplicationRepo) Submit(ctx context.Context, params core.SubmitApplicationParams) (*model.Application, error) {
	napp := params.Application
	if _, err := uuid.Parse(napp.JobID); err != nil {
		return nil, apperrors.NotFoundf("job %s not found", napp.JobID)
	}

	var app *model.Application
	txErr := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			row := tx.QueryRow(ctx, `
				INSERT INTO applications (
					job_id, job_title, applicant_id, applicant_name, applicant_email, applicant_phone,
					first_name, last_name, cover_letter, experience, portfolio, resume, expected_salary
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
				RETURNING `+applicationColumns,
				napp.JobID, napp.JobTitle, napp.ApplicantID, napp.ApplicantName,
				napp.ApplicantEmail, napp.ApplicantPhone,
				napp.FirstName, napp.LastName, napp.CoverLetter, napp.Experience,
				napp.Portfolio, napp.Resume, napp.ExpectedSalary,
			)
			inserted, err := scanApplication(row)
			if err != nil {
				return fmt.Errorf("insert application: %w", err)
			}

			tag, err := tx.Exec(ctx, `
				UPDATE jobs
				SET application_ids = application_ids || to_jsonb($2::text), updated_at = now()
				WHERE id = $1
			`, napp.JobID, inserted.ID)
			if err != nil {
				return fmt.Errorf("append application to job: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return apperrors.NotFoundf("job %s not found", napp.JobID)
			}

			notif := params.Notification
			notif.ApplicationID = inserted.ID
			if err := insertNotificationTx(ctx, tx, notif); err != nil {
				return err
			}

			app = inserted
			return nil
		},
	})
	if txErr != nil {
		return nil, apperrors.MapDBError(txErr)
	}

	if r.logger != nil {
		r.logger.InfoContext(ctx, "application submitted",
			"id", app.ID, "job_id", app.JobID, "applicant_id", app.ApplicantID)
	}
	return app, nil
}

// ApplyResponse writes one employer response atomically: the version-checked
// status and message update, the applicant notification, and the optional
// profile summary append. A stale version yields Conflict and writes nothing.
func (r *ApplicationRepo) ApplyResponse(ctx context.Context, params core.ApplyResponseParams) error {
	if _, err := uuid.Parse(params.ApplicationID); err != nil {
		return apperrors.NotFoundf("application %s not found", params.ApplicationID)
	}

	message, err := marshalJSONB(params.Message)
	if err != nil {
		return err
	}

	txErr := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			tag, execErr := tx.Exec(ctx, `
				UPDATE applications
				SET status = $2,
				    messages = messages || $3::jsonb,
				    version = version + 1,
				    updated_at = now()
				WHERE id = $1 AND version = $4
			`, params.ApplicationID, params.Status, message, params.ExpectedVersion)
			if execErr != nil {
				return fmt.Errorf("update application status: %w", execErr)
			}
			if tag.RowsAffected() == 0 {
				return r.classifyMissedUpdate(ctx, tx, params.ApplicationID)
			}

			if insertErr := insertNotificationTx(ctx, tx, params.Notification); insertErr != nil {
				return insertErr
			}

			if params.ProfileEntry != nil {
				if appendErr := appendProfileEntryTx(ctx, tx, params.ProfileEntry); appendErr != nil {
					return appendErr
				}
			}
			return nil
		},
	})
	if txErr != nil {
		return apperrors.MapDBError(txErr)
	}

	if r.logger != nil {
		r.logger.InfoContext(ctx, "application response recorded",
			"id", params.ApplicationID, "status", params.Status)
	}
	return nil
}

// classifyMissedUpdate distinguishes a vanished application from a lost
// version race after a zero-row update.
func (r *ApplicationRepo) classifyMissedUpdate(ctx context.Context, tx pgx.Tx, id string) error {
	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check application existence: %w", err)
	}
	if !exists {
		return apperrors.NotFoundf("application %s not found", id)
	}
	return apperrors.Conflict("application was modified concurrently; reload and retry")
}

func insertNotificationTx(ctx context.Context, tx pgx.Tx, req model.CreateNotificationRequest) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO notifications (
			recipient_id, type, job_id, job_title, application_id,
			applicant_id, applicant_name, company_name, employer_name,
			status, message, severity
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		req.RecipientID, req.Type, req.JobID, req.JobTitle, req.ApplicationID,
		req.ApplicantID, req.ApplicantName, req.CompanyName, req.EmployerName,
		req.Status, req.Message, req.Severity,
	); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// appendProfileEntryTx appends the accepted-application summary onto the
// applicant's profile. A missing user row is skipped without error.
func appendProfileEntryTx(ctx context.Context, tx pgx.Tx, entry *core.ProfileAppend) error {
	payload, err := marshalJSONB(entry.Entry)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE users
		SET applications = applications || $2::jsonb, updated_at = now()
		WHERE id = $1
	`, entry.UserID, payload); err != nil {
		return fmt.Errorf("append profile entry: %w", err)
	}
	return nil
}

func (r *ApplicationRepo) queryApplications(ctx context.Context, query string, args ...any) ([]*model.Application, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("query applications: %w", err))
	}
	defer rows.Close()

	var apps []*model.Application
	for rows.Next() {
		app, scanErr := scanApplication(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan application: %w", scanErr)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("iterate applications: %w", err))
	}
	return apps, nil
}
