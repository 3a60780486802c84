package roles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nexus-admin/nexus/internal/shared"
)

// PermissionChecker reports whether a permission key is defined. Wired only
// when strict reference validation is enabled; the default contract lets
// roles hold keys that are defined later or have gone stale.
type PermissionChecker interface {
	KeyDefined(ctx context.Context, key string) (bool, error)
}

// Service is the role registry.
type Service struct {
	repo    Repository
	checker PermissionChecker
}

// NewService builds a Service. checker may be nil for the default loose
// coupling between roles and the permission registry.
func NewService(repo Repository, checker PermissionChecker) *Service {
	return &Service{repo: repo, checker: checker}
}

// CreateInput carries the fields for a new role.
type CreateInput struct {
	Name        string
	Description string
	Permissions []string
	IsSystem    bool
}

// UpdateInput patches a role. A non-nil Permissions replaces the whole set;
// the set is never diffed or merged.
type UpdateInput struct {
	Name        *string
	Description *string
	Permissions *[]string
}

// List returns all roles.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.repo.List(ctx)
}

// Get fetches one role by ID.
func (s *Service) Get(ctx context.Context, id string) (Role, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new role.
func (s *Service) Create(ctx context.Context, in CreateInput) (Role, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Role{}, fmt.Errorf("role name is required: %w", shared.ErrValidation)
	}
	perms := normalizeKeys(in.Permissions)
	if err := s.checkKeys(ctx, perms); err != nil {
		return Role{}, err
	}
	r := Role{
		ID:          shared.NewID("role"),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Permissions: perms,
		IsSystem:    in.IsSystem,
	}
	if err := s.repo.Insert(ctx, r); err != nil {
		return Role{}, err
	}
	return r, nil
}

// Update patches an existing role.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Role, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return Role{}, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Role{}, fmt.Errorf("role name is required: %w", shared.ErrValidation)
		}
		r.Name = name
	}
	if in.Description != nil {
		r.Description = strings.TrimSpace(*in.Description)
	}
	if in.Permissions != nil {
		perms := normalizeKeys(*in.Permissions)
		if err := s.checkKeys(ctx, perms); err != nil {
			return Role{}, err
		}
		r.Permissions = perms
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return Role{}, err
	}
	return r, nil
}

// PermissionKeys returns the deduplicated permission set of a role. Used by
// the access-control facade to resolve effective permissions.
func (s *Service) PermissionKeys(ctx context.Context, roleID string) ([]string, error) {
	r, err := s.repo.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return r.Permissions, nil
}

// RoleDefined reports whether a role exists. Used by the strict-reference
// hook on user writes.
func (s *Service) RoleDefined(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) checkKeys(ctx context.Context, keys []string) error {
	if s.checker == nil {
		return nil
	}
	for _, key := range keys {
		ok, err := s.checker.KeyDefined(ctx, key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("permission key %q is not defined: %w", key, shared.ErrValidation)
		}
	}
	return nil
}

// normalizeKeys trims, drops empties and deduplicates while keeping order.
func normalizeKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
