package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/users"
)

type fakeDirectory struct {
	byEmail map[string]users.User
	logins  map[string]time.Time
}

func newFakeDirectory(seed ...users.User) *fakeDirectory {
	d := &fakeDirectory{byEmail: make(map[string]users.User), logins: make(map[string]time.Time)}
	for _, u := range seed {
		d.byEmail[u.Email] = u
	}
	return d
}

func (d *fakeDirectory) FindByEmail(ctx context.Context, email string) (users.User, error) {
	if u, ok := d.byEmail[email]; ok {
		return u, nil
	}
	return users.User{}, fmt.Errorf("user %s: %w", email, shared.ErrNotFound)
}

func (d *fakeDirectory) RecordLogin(ctx context.Context, id string, at time.Time) error {
	d.logins[id] = at
	return nil
}

func TestLoginActiveUserStampsLastLogin(t *testing.T) {
	dir := newFakeDirectory(users.User{ID: "u1", Email: "a@b.c", Status: users.StatusActive})
	svc := NewService(dir)
	before := time.Now().UTC()

	u, err := svc.Login(context.Background(), "a@b.c")
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
	require.NotNil(t, u.LastLogin)
	require.False(t, u.LastLogin.Before(before))
	require.True(t, dir.logins["u1"].Equal(*u.LastLogin))
}

func TestLoginRejectsNonActiveStatuses(t *testing.T) {
	for _, status := range []users.Status{users.StatusInactive, users.StatusPending, users.StatusBanned} {
		dir := newFakeDirectory(users.User{ID: "u1", Email: "a@b.c", Status: status})
		svc := NewService(dir)

		_, err := svc.Login(context.Background(), "a@b.c")
		require.ErrorIs(t, err, shared.ErrForbidden, "status %s", status)
		require.Empty(t, dir.logins)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(newFakeDirectory())
	_, err := svc.Login(context.Background(), "nobody@b.c")
	require.ErrorIs(t, err, shared.ErrNotFound)
}
