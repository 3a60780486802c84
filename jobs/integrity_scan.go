package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/nexus-admin/nexus/internal/blog"
	jobmetrics "github.com/nexus-admin/nexus/internal/jobs"
	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/users"
)

// IntegritySources lists the collections the scan cross-checks. Roles may
// reference undefined permission keys and users may reference deleted roles;
// the data model tolerates both, so the scan only reports them.
type IntegritySources struct {
	Users interface {
		ListAll(ctx context.Context) ([]users.User, error)
	}
	Roles interface {
		List(ctx context.Context) ([]roles.Role, error)
	}
	Permissions interface {
		List(ctx context.Context) ([]permissions.Permission, error)
	}
	Posts interface {
		ListAll(ctx context.Context) ([]blog.Post, error)
	}
}

// IntegrityReport summarizes one scan run.
type IntegrityReport struct {
	UsersWithDanglingRole int `json:"usersWithDanglingRole"`
	PostsWithDanglingUser int `json:"postsWithDanglingUser"`
	RolesWithStaleKeys    int `json:"rolesWithStaleKeys"`
	StaleKeyReferences    int `json:"staleKeyReferences"`
}

// IntegrityScanner runs the reference integrity scan.
type IntegrityScanner struct {
	sources IntegritySources
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

// NewIntegrityScanner constructs a scanner.
func NewIntegrityScanner(sources IntegritySources, logger *slog.Logger, metrics *jobmetrics.Metrics) *IntegrityScanner {
	return &IntegrityScanner{sources: sources, logger: logger, metrics: metrics}
}

// Handle processes TaskTypeIntegrityScan tasks.
func (s *IntegrityScanner) Handle(ctx context.Context, t *asynq.Task) error {
	var payload IntegrityScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	tracker := s.metrics.Track("integrity_scan")
	report, err := s.Scan(ctx)
	if err != nil {
		return tracker.End(err)
	}
	if s.logger != nil {
		s.logger.Info("integrity scan finished",
			slog.Int("dangling_roles", report.UsersWithDanglingRole),
			slog.Int("dangling_authors", report.PostsWithDanglingUser),
			slog.Int("stale_keys", report.StaleKeyReferences))
	}
	if !payload.ReportOnly && report.total() > 0 {
		return tracker.End(fmt.Errorf("integrity scan found %d dangling references", report.total()))
	}
	return tracker.End(nil)
}

// Scan walks every collection and counts dangling references.
func (s *IntegrityScanner) Scan(ctx context.Context) (IntegrityReport, error) {
	var report IntegrityReport

	allRoles, err := s.sources.Roles.List(ctx)
	if err != nil {
		return report, err
	}
	roleIDs := make(map[string]struct{}, len(allRoles))
	for _, r := range allRoles {
		roleIDs[r.ID] = struct{}{}
	}

	allPerms, err := s.sources.Permissions.List(ctx)
	if err != nil {
		return report, err
	}
	keys := make(map[string]struct{}, len(allPerms))
	for _, p := range allPerms {
		keys[p.Key] = struct{}{}
	}

	allUsers, err := s.sources.Users.ListAll(ctx)
	if err != nil {
		return report, err
	}
	userIDs := make(map[string]struct{}, len(allUsers))
	for _, u := range allUsers {
		userIDs[u.ID] = struct{}{}
		if u.RoleID != "" {
			if _, ok := roleIDs[u.RoleID]; !ok {
				report.UsersWithDanglingRole++
			}
		}
	}

	for _, r := range allRoles {
		stale := 0
		for _, key := range r.Permissions {
			if _, ok := keys[key]; !ok {
				stale++
			}
		}
		if stale > 0 {
			report.RolesWithStaleKeys++
			report.StaleKeyReferences += stale
		}
	}

	allPosts, err := s.sources.Posts.ListAll(ctx)
	if err != nil {
		return report, err
	}
	for _, p := range allPosts {
		if p.AuthorID != "" {
			if _, ok := userIDs[p.AuthorID]; !ok {
				report.PostsWithDanglingUser++
			}
		}
	}

	s.metrics.AddDanglingReferences("user", "role", report.UsersWithDanglingRole)
	s.metrics.AddDanglingReferences("post", "author", report.PostsWithDanglingUser)
	s.metrics.AddDanglingReferences("role", "permission_key", report.StaleKeyReferences)
	return report, nil
}

func (r IntegrityReport) total() int {
	return r.UsersWithDanglingRole + r.PostsWithDanglingUser + r.StaleKeyReferences
}
