package accesscontrol_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexus-admin/nexus/internal/accesscontrol"
	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/store"
	"github.com/nexus-admin/nexus/internal/users"
)

func newFacade(t *testing.T) (*accesscontrol.Service, *store.Store, *roles.Service, *users.Service) {
	t.Helper()
	st := store.New()
	store.Seed(st)
	roleService := roles.NewService(st.Roles(), nil)
	userService := users.NewService(st.Users(), nil)
	svc := accesscontrol.NewService(
		st.AccessControl(),
		accesscontrol.UserRolesFunc(func(ctx context.Context, userID string) (string, error) {
			u, err := userService.Get(ctx, userID)
			if err != nil {
				return "", err
			}
			return u.RoleID, nil
		}),
		accesscontrol.RoleMembershipFunc(roleService.PermissionKeys),
		nil,
	)
	return svc, st, roleService, userService
}

func TestDeleteRoleForbiddenForSystemRole(t *testing.T) {
	svc, st, _, _ := newFacade(t)
	ctx := context.Background()

	err := svc.DeleteRole(ctx, "role-admin")
	require.ErrorIs(t, err, shared.ErrForbidden)

	_, err = st.Roles().Get(ctx, "role-admin")
	require.NoError(t, err)
}

func TestDeleteRoleForbiddenWhileInUse(t *testing.T) {
	svc, st, _, userService := newFacade(t)
	ctx := context.Background()

	// role-manager is held by the demo user.
	err := svc.DeleteRole(ctx, "role-manager")
	require.ErrorIs(t, err, shared.ErrForbidden)

	// Reassigning the user frees the role for deletion.
	roleID := "role-admin"
	_, err = userService.Update(ctx, "user-demo", users.UpdateInput{RoleID: &roleID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRole(ctx, "role-manager"))
	_, err = st.Roles().Get(ctx, "role-manager")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteRoleNotFound(t *testing.T) {
	svc, _, _, _ := newFacade(t)
	err := svc.DeleteRole(context.Background(), "role-missing")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeletePermissionForbiddenForSystemPermission(t *testing.T) {
	svc, st, _, _ := newFacade(t)
	ctx := context.Background()

	err := svc.DeletePermission(ctx, "perm-1")
	require.ErrorIs(t, err, shared.ErrForbidden)

	_, err = st.Permissions().Get(ctx, "perm-1")
	require.NoError(t, err)
}

func TestDeletePermissionCascadesIntoRoles(t *testing.T) {
	svc, st, roleService, _ := newFacade(t)
	ctx := context.Background()

	permService := permissions.NewService(st.Permissions())
	p, err := permService.Create(ctx, permissions.CreateInput{
		Key:   "report:export",
		Name:  "Export Reports",
		Group: "Reporting",
	})
	require.NoError(t, err)

	perms := []string{shared.PermBlogRead, p.Key}
	role, err := roleService.Create(ctx, roles.CreateInput{Name: "Reporter", Permissions: perms})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePermission(ctx, p.ID))

	// The definition is gone and the key is stripped, but the role survives.
	_, err = st.Permissions().Get(ctx, p.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	got, err := roleService.Get(ctx, role.ID)
	require.NoError(t, err)
	require.Equal(t, []string{shared.PermBlogRead}, got.Permissions)
}

func TestEffectivePermissions(t *testing.T) {
	svc, _, _, userService := newFacade(t)
	ctx := context.Background()

	keys, err := svc.EffectivePermissions(ctx, "user-demo")
	require.NoError(t, err)
	require.Contains(t, keys, shared.PermBlogWrite)
	require.NotContains(t, keys, shared.PermSystemSettings)

	// A dangling role reference grants nothing but is not an error.
	roleID := "role-gone"
	_, err = userService.Update(ctx, "user-demo", users.UpdateInput{RoleID: &roleID})
	require.NoError(t, err)

	keys, err = svc.EffectivePermissions(ctx, "user-demo")
	require.NoError(t, err)
	require.Empty(t, keys)
}
