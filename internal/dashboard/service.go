// Package dashboard aggregates headline counts across the registries.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/nexus-admin/nexus/internal/blog"
	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/users"
)

// UserSource lists every user.
type UserSource interface {
	ListAll(ctx context.Context) ([]users.User, error)
}

// RoleSource lists every role.
type RoleSource interface {
	List(ctx context.Context) ([]roles.Role, error)
}

// PermissionSource lists every permission definition.
type PermissionSource interface {
	List(ctx context.Context) ([]permissions.Permission, error)
}

// PostSource lists every blog post.
type PostSource interface {
	ListAll(ctx context.Context) ([]blog.Post, error)
}

// Stats is the dashboard payload.
type Stats struct {
	TotalUsers     int `json:"totalUsers"`
	ActiveUsers    int `json:"activeUsers"`
	InactiveUsers  int `json:"inactiveUsers"`
	PendingUsers   int `json:"pendingUsers"`
	BannedUsers    int `json:"bannedUsers"`
	TotalRoles     int `json:"totalRoles"`
	TotalPerms     int `json:"totalPermissions"`
	TotalPosts     int `json:"totalPosts"`
	PublishedPosts int `json:"publishedPosts"`
	DraftPosts     int `json:"draftPosts"`
	ArchivedPosts  int `json:"archivedPosts"`
}

// Service computes dashboard statistics. Concurrent requests for the same
// snapshot collapse into one fan-out over the registries.
type Service struct {
	users UserSource
	roles RoleSource
	perms PermissionSource
	posts PostSource
	group singleflight.Group
}

// NewService builds a Service instance.
func NewService(users UserSource, roles RoleSource, perms PermissionSource, posts PostSource) *Service {
	return &Service{users: users, roles: roles, perms: perms, posts: posts}
}

// Stats gathers counts from all four registries in parallel.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	v, err, _ := s.group.Do("stats", func() (any, error) {
		return s.collect(ctx)
	})
	if err != nil {
		return Stats{}, err
	}
	return v.(Stats), nil
}

func (s *Service) collect(ctx context.Context) (Stats, error) {
	var stats Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		all, err := s.users.ListAll(ctx)
		if err != nil {
			return err
		}
		stats.TotalUsers = len(all)
		for _, u := range all {
			switch u.Status {
			case users.StatusActive:
				stats.ActiveUsers++
			case users.StatusInactive:
				stats.InactiveUsers++
			case users.StatusPending:
				stats.PendingUsers++
			case users.StatusBanned:
				stats.BannedUsers++
			}
		}
		return nil
	})
	g.Go(func() error {
		all, err := s.roles.List(ctx)
		if err != nil {
			return err
		}
		stats.TotalRoles = len(all)
		return nil
	})
	g.Go(func() error {
		all, err := s.perms.List(ctx)
		if err != nil {
			return err
		}
		stats.TotalPerms = len(all)
		return nil
	})
	g.Go(func() error {
		all, err := s.posts.ListAll(ctx)
		if err != nil {
			return err
		}
		stats.TotalPosts = len(all)
		for _, p := range all {
			switch p.Status {
			case blog.StatusPublished:
				stats.PublishedPosts++
			case blog.StatusDraft:
				stats.DraftPosts++
			case blog.StatusArchived:
				stats.ArchivedPosts++
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
