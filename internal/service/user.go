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

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Repo   core.UserRepository // Required: user repository
	Logger *slog.Logger        // Optional: structured logger
}

// UserService manages profile records keyed by the identity provider's
// opaque id. The accepted-applications list on a profile is append-only and
// written exclusively by the workflow's acceptance path.
type UserService struct {
	repo   core.UserRepository
	logger *slog.Logger
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) (*UserService, error) {
	if opts.Repo == nil {
		return nil, errors.New("UserRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "user_service")
	}
	return &UserService{repo: opts.Repo, logger: logger}, nil
}

// MustNewUserService constructs a new UserService and panics on error.
func MustNewUserService(opts UserServiceOptions) *UserService {
	svc, err := NewUserService(opts)
	if err != nil {
		panic(fmt.Sprintf("failed to create UserService: %v", err))
	}
	return svc
}

// ProfileUpdate carries the editable fields of a profile.
type ProfileUpdate struct {
	DisplayName string   `json:"display_name"`
	Role        string   `json:"role"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
}

// SaveProfile creates or refreshes the caller's profile from the provider
// identity plus the editable fields.
func (s *UserService) SaveProfile(ctx context.Context, caller identity.Identity, update ProfileUpdate) (*model.User, error) {
	if caller.ID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}

	role := model.UserRole(update.Role)
	if update.Role == "" {
		role = caller.Role
	}
	name := update.DisplayName
	if name == "" {
		name = caller.Name
	}

	user, err := s.repo.Upsert(ctx, &model.User{
		ID:          caller.ID,
		Email:       caller.Email,
		DisplayName: name,
		Role:        role,
		Title:       update.Title,
		Location:    update.Location,
		Bio:         update.Bio,
		Skills:      update.Skills,
	})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "profile saved", "id", user.ID, "role", user.Role)
	}
	return user, nil
}

// Get retrieves one profile by id.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.Validation("user id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// ListCandidates returns job seeker profiles for employer browsing, newest
// first.
func (s *UserService) ListCandidates(ctx context.Context, caller identity.Identity, limit, offset int) ([]*model.User, error) {
	if !caller.IsEmployer() {
		return nil, apperrors.Unauthorized("only employers may browse candidates")
	}
	return s.repo.ListByRole(ctx, model.RoleJobSeeker, limit, offset)
}
