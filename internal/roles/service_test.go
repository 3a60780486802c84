package roles_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/store"
)

func TestCreateRoleNormalizesPermissionKeys(t *testing.T) {
	st := store.New()
	svc := roles.NewService(st.Roles(), nil)
	ctx := context.Background()

	role, err := svc.Create(ctx, roles.CreateInput{
		Name:        "  Editor ",
		Permissions: []string{"blog:write", " blog:read ", "blog:write", ""},
	})
	require.NoError(t, err)
	require.Equal(t, "Editor", role.Name)
	require.Equal(t, []string{"blog:write", "blog:read"}, role.Permissions)
}

func TestCreateRoleRequiresName(t *testing.T) {
	svc := roles.NewService(store.New().Roles(), nil)
	_, err := svc.Create(context.Background(), roles.CreateInput{Name: "  "})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateRoleReplacesPermissionSetWholesale(t *testing.T) {
	st := store.New()
	svc := roles.NewService(st.Roles(), nil)
	ctx := context.Background()

	role, err := svc.Create(ctx, roles.CreateInput{Name: "Editor", Permissions: []string{"blog:read", "blog:write"}})
	require.NoError(t, err)

	perms := []string{"blog:read"}
	updated, err := svc.Update(ctx, role.ID, roles.UpdateInput{Permissions: &perms})
	require.NoError(t, err)
	require.Equal(t, []string{"blog:read"}, updated.Permissions)

	// Nil fields keep their prior values.
	desc := "edits blog content"
	updated, err = svc.Update(ctx, role.ID, roles.UpdateInput{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, "Editor", updated.Name)
	require.Equal(t, []string{"blog:read"}, updated.Permissions)
	require.Equal(t, desc, updated.Description)
}

func TestStrictReferencesRejectUndefinedKeys(t *testing.T) {
	st := store.New()
	store.Seed(st)
	checker := permissions.NewService(st.Permissions())
	svc := roles.NewService(st.Roles(), checker)
	ctx := context.Background()

	_, err := svc.Create(ctx, roles.CreateInput{Name: "Ghost", Permissions: []string{"ghost:haunt"}})
	require.ErrorIs(t, err, shared.ErrValidation)

	// Defined keys pass.
	_, err = svc.Create(ctx, roles.CreateInput{Name: "Reader", Permissions: []string{shared.PermBlogRead}})
	require.NoError(t, err)
}

func TestRoleDefined(t *testing.T) {
	st := store.New()
	store.Seed(st)
	svc := roles.NewService(st.Roles(), nil)
	ctx := context.Background()

	ok, err := svc.RoleDefined(ctx, "role-admin")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.RoleDefined(ctx, "role-missing")
	require.NoError(t, err)
	require.False(t, ok)
}
