package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nexus-admin/nexus/internal/shared"
)

// RoleChecker reports whether a role exists. Wired only when strict
// reference validation is enabled.
type RoleChecker interface {
	RoleDefined(ctx context.Context, id string) (bool, error)
}

// Service is the user registry.
type Service struct {
	repo    Repository
	checker RoleChecker
	now     func() time.Time
}

// NewService builds a Service. checker may be nil for the default loose
// role reference semantics.
func NewService(repo Repository, checker RoleChecker) *Service {
	return &Service{repo: repo, checker: checker, now: time.Now}
}

// CreateInput carries the fields for a new user.
type CreateInput struct {
	Email     string
	Name      string
	RoleID    string
	Status    Status
	AvatarURL string
	Bio       string
}

// UpdateInput patches a user. Nil fields keep their prior value; identifier
// and creation time never change.
type UpdateInput struct {
	Email     *string
	Name      *string
	RoleID    *string
	Status    *Status
	AvatarURL *string
	Bio       *string
}

// List returns one page of users matching the query.
func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]User, int, error) {
	return s.repo.List(ctx, q.Normalize())
}

// ListAll returns every user, for dashboard-style consumers.
func (s *Service) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.ListAll(ctx)
}

// Get fetches one user by ID.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new user with a fresh identifier and creation time.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return User{}, fmt.Errorf("email is required: %w", shared.ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		return User{}, fmt.Errorf("unknown status %q: %w", status, shared.ErrValidation)
	}
	if err := s.checkRole(ctx, in.RoleID); err != nil {
		return User{}, err
	}
	u := User{
		ID:        shared.NewID("user"),
		Email:     email,
		Name:      strings.TrimSpace(in.Name),
		RoleID:    in.RoleID,
		Status:    status,
		AvatarURL: strings.TrimSpace(in.AvatarURL),
		Bio:       in.Bio,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Update merges the patch into the stored record.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return User{}, fmt.Errorf("email is required: %w", shared.ErrValidation)
		}
		u.Email = email
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.RoleID != nil {
		if err := s.checkRole(ctx, *in.RoleID); err != nil {
			return User{}, err
		}
		u.RoleID = *in.RoleID
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return User{}, fmt.Errorf("unknown status %q: %w", *in.Status, shared.ErrValidation)
		}
		u.Status = *in.Status
	}
	if in.AvatarURL != nil {
		u.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Delete removes a user unconditionally. Roles and blog posts referencing the
// user are left untouched.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) checkRole(ctx context.Context, roleID string) error {
	if s.checker == nil || roleID == "" {
		return nil
	}
	ok, err := s.checker.RoleDefined(ctx, roleID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("role %q is not defined: %w", roleID, shared.ErrValidation)
	}
	return nil
}
