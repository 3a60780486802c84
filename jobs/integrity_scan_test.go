package jobs_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/nexus-admin/nexus/internal/blog"
	jobmetrics "github.com/nexus-admin/nexus/internal/jobs"
	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/store"
	"github.com/nexus-admin/nexus/internal/users"
	"github.com/nexus-admin/nexus/jobs"
)

func newScanner(st *store.Store) *jobs.IntegrityScanner {
	metrics := jobmetrics.NewMetrics(prometheus.NewRegistry())
	return jobs.NewIntegrityScanner(jobs.IntegritySources{
		Users:       st.Users(),
		Roles:       st.Roles(),
		Permissions: st.Permissions(),
		Posts:       st.Posts(),
	}, nil, metrics)
}

func TestScanCleanDataset(t *testing.T) {
	st := store.New()
	store.Seed(st)

	report, err := newScanner(st).Scan(context.Background())
	require.NoError(t, err)
	require.Zero(t, report.UsersWithDanglingRole)
	require.Zero(t, report.PostsWithDanglingUser)
	require.Zero(t, report.StaleKeyReferences)
}

func TestScanFindsDanglingReferences(t *testing.T) {
	st := store.New()
	store.Seed(st)
	ctx := context.Background()

	require.NoError(t, st.Users().Insert(ctx, users.User{ID: "u-x", Email: "x@y.z", RoleID: "role-gone"}))
	require.NoError(t, st.Roles().Insert(ctx, roles.Role{ID: "r-x", Name: "Stale", Permissions: []string{"gone:away", "also:gone"}}))
	require.NoError(t, st.Posts().Insert(ctx, blog.Post{ID: "b-x", Title: "Orphan", AuthorID: "user-gone"}))

	report, err := newScanner(st).Scan(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.UsersWithDanglingRole)
	require.Equal(t, 1, report.PostsWithDanglingUser)
	require.Equal(t, 1, report.RolesWithStaleKeys)
	require.Equal(t, 2, report.StaleKeyReferences)
}
