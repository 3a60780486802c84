package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/store"
	"github.com/nexus-admin/nexus/internal/users"
)

func TestSeedLoadsBootstrapData(t *testing.T) {
	st := store.New()
	store.Seed(st)
	ctx := context.Background()

	perms, err := st.Permissions().List(ctx)
	require.NoError(t, err)
	require.Len(t, perms, 8)
	for _, p := range perms {
		require.True(t, p.IsSystem)
	}

	admin, err := st.Roles().Get(ctx, "role-admin")
	require.NoError(t, err)
	require.True(t, admin.IsSystem)
	require.Len(t, admin.Permissions, 8)

	u, err := st.Users().FindByEmail(ctx, "admin@nexus.com")
	require.NoError(t, err)
	require.Equal(t, "role-admin", u.RoleID)
	require.Equal(t, users.StatusActive, u.Status)
}

func TestPermissionInsertRejectsDuplicateKey(t *testing.T) {
	st := store.New()
	ctx := context.Background()
	repo := st.Permissions()

	require.NoError(t, repo.Insert(ctx, permissions.Permission{ID: "p1", Key: "report:read"}))
	err := repo.Insert(ctx, permissions.Permission{ID: "p2", Key: "report:read"})
	require.ErrorIs(t, err, shared.ErrDuplicateKey)
}

func TestUserListSearchAndPagination(t *testing.T) {
	st := store.New()
	ctx := context.Background()
	repo := st.Users()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seedUsers := []users.User{
		{ID: "u1", Email: "alice@example.com", Name: "Alice", CreatedAt: base},
		{ID: "u2", Email: "bob@example.com", Name: "Bob", CreatedAt: base.Add(time.Hour)},
		{ID: "u3", Email: "carol@example.com", Name: "Carol Albright", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, u := range seedUsers {
		require.NoError(t, repo.Insert(ctx, u))
	}

	// Case-insensitive substring over name and email.
	page, total, err := repo.List(ctx, shared.ListQuery{Page: 1, Limit: 10, Search: "AL"}.Normalize())
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, "u3", page[0].ID) // newest first
	require.Equal(t, "u1", page[1].ID)

	// Second page of size one holds the second newest match.
	page, total, err = repo.List(ctx, shared.ListQuery{Page: 2, Limit: 1}.Normalize())
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, page, 1)
	require.Equal(t, "u2", page[0].ID)

	// A page past the end is empty, not an error.
	page, total, err = repo.List(ctx, shared.ListQuery{Page: 9, Limit: 10}.Normalize())
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Empty(t, page)
}

func TestRecordLoginStampsOnlyLastLogin(t *testing.T) {
	st := store.New()
	ctx := context.Background()
	repo := st.Users()
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, users.User{ID: "u1", Email: "a@b.c", Status: users.StatusActive, CreatedAt: created}))
	at := created.Add(24 * time.Hour)
	require.NoError(t, repo.RecordLogin(ctx, "u1", at))

	u, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, u.LastLogin)
	require.True(t, u.LastLogin.Equal(at))
	require.True(t, u.CreatedAt.Equal(created))
}

func TestUserDeleteIsIdempotent(t *testing.T) {
	st := store.New()
	ctx := context.Background()
	repo := st.Users()

	require.NoError(t, repo.Insert(ctx, users.User{ID: "u1", Email: "a@b.c"}))
	require.NoError(t, repo.Delete(ctx, "u1"))
	require.NoError(t, repo.Delete(ctx, "u1"))

	_, err := repo.Get(ctx, "u1")
	require.ErrorIs(t, err, shared.ErrNotFound)
}
