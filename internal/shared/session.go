package shared

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionManager issues cookie sessions backed by Redis. The login flow is a
// demonstration-grade email lookup, so the session only carries identity for
// the authorization middleware, never proof of credentials. Cookie values are
// HMAC signed so a forged session ID is rejected before the Redis lookup.
type SessionManager struct {
	client     *redis.Client
	cookieName string
	secret     []byte
	ttl        time.Duration
	secure     bool
}

// Session is the identity attached to a request.
type Session struct {
	ID     string
	UserID string
}

type sessionPayload struct {
	UserID   string    `json:"user_id"`
	IssuedAt time.Time `json:"issued_at"`
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(client *redis.Client, cookieName, secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{client: client, cookieName: cookieName, secret: []byte(secret), ttl: ttl, secure: secure}
}

// Issue creates a session for the user and sets the cookie.
func (sm *SessionManager) Issue(ctx context.Context, w http.ResponseWriter, userID string) (*Session, error) {
	sess := &Session{ID: newSessionID(), UserID: userID}
	data, err := json.Marshal(sessionPayload{UserID: userID, IssuedAt: time.Now().UTC()})
	if err != nil {
		return nil, err
	}
	if err := sm.client.Set(ctx, sm.redisKey(sess.ID), data, sm.ttl).Err(); err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    sm.signedValue(sess.ID),
		Path:     "/",
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(sm.ttl),
	})
	return sess, nil
}

// Resolve loads the session referenced by the request cookie. A request
// without a cookie, with a bad signature, or with an expired session resolves
// to nil without error.
func (sm *SessionManager) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(sm.cookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}
	id, ok := sm.verifyValue(cookie.Value)
	if !ok {
		return nil, nil
	}
	data, err := sm.client.Get(ctx, sm.redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var payload sessionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &Session{ID: id, UserID: payload.UserID}, nil
}

// Revoke deletes the session and clears the cookie.
func (sm *SessionManager) Revoke(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return nil
	}
	if err := sm.client.Del(ctx, sm.redisKey(sess.ID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// TTL exposes the configured session lifetime.
func (sm *SessionManager) TTL() time.Duration {
	return sm.ttl
}

// CookieName returns the cookie identifier used for sessions.
func (sm *SessionManager) CookieName() string {
	return sm.cookieName
}

// SignedValue exposes the cookie encoding of a session ID, for tests and
// tooling that need to fabricate a valid cookie.
func (sm *SessionManager) SignedValue(id string) string {
	return sm.signedValue(id)
}

func (sm *SessionManager) redisKey(id string) string {
	return "session:" + id
}

func (sm *SessionManager) signedValue(id string) string {
	mac := hmac.New(sha256.New, sm.secret)
	mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (sm *SessionManager) verifyValue(value string) (string, bool) {
	id, sig, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	want, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", false
	}
	mac := hmac.New(sha256.New, sm.secret)
	mac.Write([]byte(id))
	if !hmac.Equal(want, mac.Sum(nil)) {
		return "", false
	}
	return id, true
}

func newSessionID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return base64.RawURLEncoding.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
