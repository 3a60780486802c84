package accesscontrol

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nexus-admin/nexus/internal/platform/httpx"
	"github.com/nexus-admin/nexus/internal/shared"
)

// PermissionSource resolves the permissions granted to a user.
type PermissionSource interface {
	EffectivePermissions(ctx context.Context, userID string) ([]string, error)
}

// Middleware wires permission guards for HTTP handlers. When Enforce is
// false every guard passes, preserving the historic open API; flipping it on
// requires a session whose user holds the demanded permissions.
type Middleware struct {
	Source  PermissionSource
	Logger  *slog.Logger
	Enforce bool
}

// RequireAny ensures the current user has at least one of the permissions.
func (m Middleware) RequireAny(perms ...string) func(http.Handler) http.Handler {
	return m.guard(perms, anyOf)
}

// RequireAll ensures the current user has all of the permissions.
func (m Middleware) RequireAll(perms ...string) func(http.Handler) http.Handler {
	return m.guard(perms, allOf)
}

func (m Middleware) guard(perms []string, match func(granted, wanted []string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.Enforce || len(perms) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			sess := shared.SessionFromContext(r.Context())
			if sess == nil || sess.UserID == "" {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "login required")
				return
			}
			granted, err := m.Source.EffectivePermissions(r.Context(), sess.UserID)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("resolve permissions", slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if !match(granted, perms) {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "missing permission")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func anyOf(granted, wanted []string) bool {
	set := toSet(granted)
	for _, p := range wanted {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}

func allOf(granted, wanted []string) bool {
	set := toSet(granted)
	for _, p := range wanted {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

func toSet(perms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}
