package dashboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexus-admin/nexus/internal/blog"
	"github.com/nexus-admin/nexus/internal/dashboard"
	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/store"
	"github.com/nexus-admin/nexus/internal/users"
)

func TestStatsAggregatesAllRegistries(t *testing.T) {
	st := store.New()
	store.Seed(st)
	ctx := context.Background()

	userService := users.NewService(st.Users(), nil)
	blogService := blog.NewService(st.Posts())
	svc := dashboard.NewService(
		userService,
		roles.NewService(st.Roles(), nil),
		permissions.NewService(st.Permissions()),
		blogService,
	)

	_, err := userService.Create(ctx, users.CreateInput{Email: "pending@nexus.com"})
	require.NoError(t, err)
	_, err = blogService.Create(ctx, blog.CreateInput{Title: "Archived piece", Status: blog.StatusArchived})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalUsers)
	require.Equal(t, 2, stats.ActiveUsers)
	require.Equal(t, 1, stats.PendingUsers)
	require.Equal(t, 2, stats.TotalRoles)
	require.Equal(t, 8, stats.TotalPerms)
	require.Equal(t, 3, stats.TotalPosts)
	require.Equal(t, 1, stats.PublishedPosts)
	require.Equal(t, 1, stats.DraftPosts)
	require.Equal(t, 1, stats.ArchivedPosts)
}
