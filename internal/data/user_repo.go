package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

// UserRepo provides database operations for user profiles.
type UserRepo struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewUserRepo creates a new UserRepo instance.
func NewUserRepo(db *sql.DB, logger *slog.Logger) *UserRepo {
	return &UserRepo{DB: db, logger: logger}
}

const userColumns = `
  id,
  email,
  display_name,
  role,
  title,
  location,
  bio,
  skills,
  applications,
  created_at,
  updated_at
`

func scanUser(row rowScanner) (*model.User, error) {
	var (
		user                 model.User
		skills, applications []byte
	)
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.Role,
		&user.Title,
		&user.Location,
		&user.Bio,
		&skills,
		&applications,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(skills, &user.Skills); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(applications, &user.Applications); err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert creates or refreshes a profile keyed by the provider's opaque id.
// The denormalized applications list is never touched here; only the
// acceptance path appends to it.
func (r *UserRepo) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	if user == nil || user.ID == "" {
		return nil, apperrors.Validation("user id is required")
	}
	if user.Role != "" && !user.Role.Valid() {
		return nil, apperrors.Validation("invalid user role")
	}
	if user.Role == "" {
		user.Role = model.RoleJobSeeker
	}

	skills, err := marshalJSONB(user.Skills)
	if err != nil {
		return nil, err
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (id, email, display_name, role, title, location, bio, skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			email        = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			role         = EXCLUDED.role,
			title        = EXCLUDED.title,
			location     = EXCLUDED.location,
			bio          = EXCLUDED.bio,
			skills       = EXCLUDED.skills,
			updated_at   = now()
		RETURNING `+userColumns,
		user.ID, user.Email, user.DisplayName, user.Role,
		user.Title, user.Location, user.Bio, skills,
	)

	saved, err := scanUser(row)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("upsert user %s: %w", user.ID, err))
	}

	if r.logger != nil {
		r.logger.DebugContext(ctx, "user profile upserted", "id", saved.ID, "role", saved.Role)
	}
	return saved, nil
}

// GetByID retrieves a profile by the provider's opaque id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("get user %s: %w", id, err))
	}
	return user, nil
}

// ListByRole returns profiles carrying one role tag, newest first.
func (r *UserRepo) ListByRole(ctx context.Context, role model.UserRole, limit, offset int) ([]*model.User, error) {
	if !role.Valid() {
		return nil, apperrors.Validation("invalid user role")
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE role = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, role, clampLimit(limit), maxInt(offset, 0))
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("query users: %w", err))
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan user: %w", scanErr)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("iterate users: %w", err))
	}
	return users, nil
}
