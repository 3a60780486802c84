package permissions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nexus-admin/nexus/internal/shared"
)

// Service is the permission registry. It owns the set of permission
// definitions; cross-entity deletion rules live in the access-control facade.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields for a new permission definition. The key is
// chosen by the caller and becomes immutable once stored.
type CreateInput struct {
	Key         string
	Name        string
	Description string
	Group       string
	IsSystem    bool
}

// UpdateInput patches display metadata. Nil fields keep their prior value;
// the key and system flag cannot change after creation.
type UpdateInput struct {
	Name        *string
	Description *string
	Group       *string
}

// List returns all permission definitions in insertion order. Grouping for
// display is a presentation concern.
func (s *Service) List(ctx context.Context) ([]Permission, error) {
	return s.repo.List(ctx)
}

// Get fetches one permission by ID.
func (s *Service) Get(ctx context.Context, id string) (Permission, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a new permission definition.
func (s *Service) Create(ctx context.Context, in CreateInput) (Permission, error) {
	key := strings.TrimSpace(in.Key)
	if key == "" {
		return Permission{}, fmt.Errorf("permission key is required: %w", shared.ErrValidation)
	}
	p := Permission{
		ID:          shared.NewID("perm"),
		Key:         key,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Group:       strings.TrimSpace(in.Group),
		IsSystem:    in.IsSystem,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return Permission{}, err
	}
	return p, nil
}

// Update patches the mutable display fields of an existing permission.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Permission, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Permission{}, err
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Group != nil {
		p.Group = strings.TrimSpace(*in.Group)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Permission{}, err
	}
	return p, nil
}

// KeyDefined reports whether a permission with the given key exists. Used by
// the optional strict-reference hook on role writes.
func (s *Service) KeyDefined(ctx context.Context, key string) (bool, error) {
	_, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
