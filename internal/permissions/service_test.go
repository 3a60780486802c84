package permissions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/store"
)

func TestCreatePermission(t *testing.T) {
	svc := permissions.NewService(store.New().Permissions())
	ctx := context.Background()

	p, err := svc.Create(ctx, permissions.CreateInput{
		Key:         " report:export ",
		Name:        "Export Reports",
		Description: "Can export reports as CSV",
		Group:       "Reporting",
	})
	require.NoError(t, err)
	require.Equal(t, "report:export", p.Key)
	require.NotEmpty(t, p.ID)
	require.False(t, p.IsSystem)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestCreatePermissionDuplicateKey(t *testing.T) {
	svc := permissions.NewService(store.New().Permissions())
	ctx := context.Background()

	_, err := svc.Create(ctx, permissions.CreateInput{Key: "report:export", Name: "Export"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, permissions.CreateInput{Key: "report:export", Name: "Export Again"})
	require.ErrorIs(t, err, shared.ErrDuplicateKey)
}

func TestCreatePermissionRequiresKey(t *testing.T) {
	svc := permissions.NewService(store.New().Permissions())
	_, err := svc.Create(context.Background(), permissions.CreateInput{Key: "  ", Name: "No Key"})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdatePermissionKeepsKeyImmutable(t *testing.T) {
	svc := permissions.NewService(store.New().Permissions())
	ctx := context.Background()

	p, err := svc.Create(ctx, permissions.CreateInput{Key: "report:export", Name: "Export"})
	require.NoError(t, err)

	name := "Export Reports"
	group := "Reporting"
	updated, err := svc.Update(ctx, p.ID, permissions.UpdateInput{Name: &name, Group: &group})
	require.NoError(t, err)
	require.Equal(t, "report:export", updated.Key)
	require.Equal(t, name, updated.Name)
	require.Equal(t, group, updated.Group)
}

func TestKeyDefined(t *testing.T) {
	st := store.New()
	store.Seed(st)
	svc := permissions.NewService(st.Permissions())
	ctx := context.Background()

	ok, err := svc.KeyDefined(ctx, shared.PermBlogRead)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.KeyDefined(ctx, "ghost:haunt")
	require.NoError(t, err)
	require.False(t, ok)
}
