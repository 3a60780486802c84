// Package accesscontrol enforces the cross-entity deletion invariants of the
// role/permission model. Every role or permission deletion must go through
// this facade; the registries deliberately expose no delete operation.
package accesscontrol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nexus-admin/nexus/internal/shared"
)

// RoleRecord is the view of a role the facade needs for its checks.
type RoleRecord struct {
	ID       string
	Name     string
	IsSystem bool
}

// PermissionRecord is the view of a permission the facade needs.
type PermissionRecord struct {
	ID       string
	Key      string
	Name     string
	IsSystem bool
}

// TxRepository exposes the operations available inside a facade critical
// section. Implementations guarantee the enclosing WithTx call is atomic:
// either every mutation applies or none does.
type TxRepository interface {
	RoleByID(ctx context.Context, id string) (RoleRecord, error)
	CountUsersWithRole(ctx context.Context, roleID string) (int, error)
	DeleteRole(ctx context.Context, id string) error

	PermissionByID(ctx context.Context, id string) (PermissionRecord, error)
	DeletePermission(ctx context.Context, id string) error
	// StripPermissionKey removes the key from every role's permission set.
	StripPermissionKey(ctx context.Context, key string) error
}

// Repository runs a function inside one critical section spanning the role
// and permission collections.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// UserRoles resolves the role reference of a user.
type UserRoles interface {
	RoleID(ctx context.Context, userID string) (string, error)
}

// UserRolesFunc adapts a function to the UserRoles interface.
type UserRolesFunc func(ctx context.Context, userID string) (string, error)

// RoleID implements UserRoles.
func (f UserRolesFunc) RoleID(ctx context.Context, userID string) (string, error) {
	return f(ctx, userID)
}

// RoleMembership resolves the permission set of a role.
type RoleMembership interface {
	PermissionKeys(ctx context.Context, roleID string) ([]string, error)
}

// RoleMembershipFunc adapts a function to the RoleMembership interface.
type RoleMembershipFunc func(ctx context.Context, roleID string) ([]string, error)

// PermissionKeys implements RoleMembership.
func (f RoleMembershipFunc) PermissionKeys(ctx context.Context, roleID string) ([]string, error) {
	return f(ctx, roleID)
}

// Service is the access-control facade.
type Service struct {
	repo   Repository
	users  UserRoles
	roles  RoleMembership
	logger *slog.Logger
}

// NewService builds the facade. users and roles may be nil when effective
// permission resolution is not needed (e.g. the background worker).
func NewService(repo Repository, users UserRoles, roles RoleMembership, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, roles: roles, logger: logger}
}

// DeleteRole removes a role. It fails with ErrForbidden when the role is a
// system role or is still referenced by any user; both checks and the delete
// run in one critical section.
func (s *Service) DeleteRole(ctx context.Context, id string) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		role, err := tx.RoleByID(ctx, id)
		if err != nil {
			return err
		}
		if role.IsSystem {
			return fmt.Errorf("role %q is a system role: %w", role.Name, shared.ErrForbidden)
		}
		inUse, err := tx.CountUsersWithRole(ctx, id)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return fmt.Errorf("role %q is assigned to %d user(s): %w", role.Name, inUse, shared.ErrForbidden)
		}
		return tx.DeleteRole(ctx, id)
	})
}

// DeletePermission removes a permission definition and cascades: its key is
// stripped from every role's permission set inside the same critical
// section, so no half-applied state is observable.
func (s *Service) DeletePermission(ctx context.Context, id string) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		perm, err := tx.PermissionByID(ctx, id)
		if err != nil {
			return err
		}
		if perm.IsSystem {
			return fmt.Errorf("permission %q is a system permission: %w", perm.Key, shared.ErrForbidden)
		}
		if err := tx.DeletePermission(ctx, id); err != nil {
			return err
		}
		if err := tx.StripPermissionKey(ctx, perm.Key); err != nil {
			return err
		}
		if s.logger != nil {
			s.logger.Info("permission deleted with cascade", slog.String("key", perm.Key))
		}
		return nil
	})
}

// EffectivePermissions returns the deduplicated permission keys granted to a
// user through its role. A dangling role reference yields no permissions.
func (s *Service) EffectivePermissions(ctx context.Context, userID string) ([]string, error) {
	if s.users == nil || s.roles == nil {
		return nil, nil
	}
	roleID, err := s.users.RoleID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if roleID == "" {
		return nil, nil
	}
	keys, err := s.roles.PermissionKeys(ctx, roleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}
