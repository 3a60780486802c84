package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/store"
	"github.com/nexus-admin/nexus/internal/users"
)

func TestCreateUserDefaultsToPending(t *testing.T) {
	svc := users.NewService(store.New().Users(), nil)
	ctx := context.Background()

	u, err := svc.Create(ctx, users.CreateInput{Email: "new@nexus.com", Name: "New User"})
	require.NoError(t, err)
	require.Equal(t, users.StatusPending, u.Status)
	require.NotEmpty(t, u.ID)
	require.False(t, u.CreatedAt.IsZero())
	require.Nil(t, u.LastLogin)
}

func TestCreateUserRejectsUnknownStatus(t *testing.T) {
	svc := users.NewService(store.New().Users(), nil)
	_, err := svc.Create(context.Background(), users.CreateInput{Email: "a@b.c", Status: users.Status("SLEEPING")})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateUserMergesPatch(t *testing.T) {
	svc := users.NewService(store.New().Users(), nil)
	ctx := context.Background()

	u, err := svc.Create(ctx, users.CreateInput{Email: "a@b.c", Name: "Alice", Bio: "original"})
	require.NoError(t, err)

	status := users.StatusActive
	name := "Alice B."
	updated, err := svc.Update(ctx, u.ID, users.UpdateInput{Name: &name, Status: &status})
	require.NoError(t, err)
	require.Equal(t, "Alice B.", updated.Name)
	require.Equal(t, users.StatusActive, updated.Status)
	require.Equal(t, "original", updated.Bio)
	require.Equal(t, u.CreatedAt, updated.CreatedAt)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc := users.NewService(store.New().Users(), nil)
	name := "ghost"
	_, err := svc.Update(context.Background(), "missing", users.UpdateInput{Name: &name})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStrictReferencesRejectUndefinedRole(t *testing.T) {
	st := store.New()
	store.Seed(st)
	checker := roles.NewService(st.Roles(), nil)
	svc := users.NewService(st.Users(), checker)
	ctx := context.Background()

	_, err := svc.Create(ctx, users.CreateInput{Email: "a@b.c", RoleID: "role-missing"})
	require.ErrorIs(t, err, shared.ErrValidation)

	// An empty role reference is always allowed.
	_, err = svc.Create(ctx, users.CreateInput{Email: "b@b.c"})
	require.NoError(t, err)

	// As is a defined one.
	_, err = svc.Create(ctx, users.CreateInput{Email: "c@b.c", RoleID: "role-manager"})
	require.NoError(t, err)
}

func TestDeleteUserLeavesPostsUntouched(t *testing.T) {
	st := store.New()
	store.Seed(st)
	svc := users.NewService(st.Users(), nil)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "user-admin"))

	post, err := st.Posts().Get(ctx, "blog-1")
	require.NoError(t, err)
	require.Equal(t, "user-admin", post.AuthorID)
}
