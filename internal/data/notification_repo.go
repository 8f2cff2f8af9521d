package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

// NotificationRepo provides database operations for notifications.
type NotificationRepo struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewNotificationRepo creates a new NotificationRepo instance.
func NewNotificationRepo(db *sql.DB, logger *slog.Logger) *NotificationRepo {
	return &NotificationRepo{DB: db, logger: logger}
}

const notificationColumns = `
  id,
  recipient_id,
  type,
  job_id,
  job_title,
  application_id,
  applicant_id,
  applicant_name,
  company_name,
  employer_name,
  status,
  message,
  severity,
  read,
  created_at
`

func scanNotification(row rowScanner) (*model.Notification, error) {
	var n model.Notification
	if err := row.Scan(
		&n.ID,
		&n.RecipientID,
		&n.Type,
		&n.JobID,
		&n.JobTitle,
		&n.ApplicationID,
		&n.ApplicantID,
		&n.ApplicantName,
		&n.CompanyName,
		&n.EmployerName,
		&n.Status,
		&n.Message,
		&n.Severity,
		&n.Read,
		&n.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts one notification outside any workflow transaction.
func (r *NotificationRepo) Create(ctx context.Context, req model.CreateNotificationRequest) (*model.Notification, error) {
	if !req.Type.Valid() {
		return nil, apperrors.Validation("invalid notification type")
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO notifications (
			recipient_id, type, job_id, job_title, application_id,
			applicant_id, applicant_name, company_name, employer_name,
			status, message, severity
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+notificationColumns,
		req.RecipientID, req.Type, req.JobID, req.JobTitle, req.ApplicationID,
		req.ApplicantID, req.ApplicantName, req.CompanyName, req.EmployerName,
		req.Status, req.Message, req.Severity,
	)

	n, err := scanNotification(row)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("insert notification: %w", err))
	}
	return n, nil
}

// ListByRecipient returns one user's notifications, newest first.
func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, recipientID, clampLimit(limit), maxInt(offset, 0))
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("query notifications: %w", err))
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		n, scanErr := scanNotification(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan notification: %w", scanErr)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("iterate notifications: %w", err))
	}
	return notifications, nil
}

// MarkRead flips the read flag. Returns false when the notification does not
// exist or belongs to another recipient.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, recipientID string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE notifications SET read = true
		WHERE id = $1 AND recipient_id = $2 AND NOT read
	`, id, recipientID)
	if err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("mark notification read: %w", err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark read rows affected: %w", err)
	}
	return affected > 0, nil
}

// CountUnread returns the number of unread notifications for one recipient.
func (r *NotificationRepo) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM notifications WHERE recipient_id = $1 AND NOT read`,
		recipientID,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.MapDBError(fmt.Errorf("count unread notifications: %w", err))
	}
	return count, nil
}
