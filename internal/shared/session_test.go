package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "nexus_session", "test-secret", time.Hour, false)
}

func requestWithCookie(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestIssueAndResolve(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()
	rec := httptest.NewRecorder()

	sess, err := sm.Issue(ctx, rec, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	resolved, err := sm.Resolve(ctx, requestWithCookie(rec))
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Equal(t, "user-1", resolved.UserID)
	require.Equal(t, sess.ID, resolved.ID)
}

func TestResolveWithoutCookie(t *testing.T) {
	sm := newTestManager(t)
	resolved, err := sm.Resolve(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Nil(t, resolved)
}

func TestResolveRejectsTamperedCookie(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()
	rec := httptest.NewRecorder()

	sess, err := sm.Issue(ctx, rec, "user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sm.CookieName(), Value: sess.ID + ".forged"})

	resolved, err := sm.Resolve(ctx, req)
	require.NoError(t, err)
	require.Nil(t, resolved)
}

func TestRevoke(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()
	rec := httptest.NewRecorder()

	sess, err := sm.Issue(ctx, rec, "user-1")
	require.NoError(t, err)

	req := requestWithCookie(rec)
	require.NoError(t, sm.Revoke(ctx, httptest.NewRecorder(), sess))

	resolved, err := sm.Resolve(ctx, req)
	require.NoError(t, err)
	require.Nil(t, resolved)
}
