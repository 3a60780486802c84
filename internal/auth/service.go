// Package auth implements the login flow. There is no credential check: a
// login is an email lookup plus a status gate, matching the console's
// demonstration-grade contract.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/users"
)

// Directory is the slice of the user registry the login flow needs.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (users.User, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

// Service handles logins.
type Service struct {
	directory Directory
	now       func() time.Time
}

// NewService builds a Service instance.
func NewService(directory Directory) *Service {
	return &Service{directory: directory, now: time.Now}
}

// Login resolves the email to a user and stamps the last-login time. An
// unknown email yields ErrNotFound; any status other than ACTIVE yields
// ErrForbidden. The returned user carries the fresh login stamp.
func (s *Service) Login(ctx context.Context, email string) (users.User, error) {
	u, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		return users.User{}, err
	}
	if u.Status != users.StatusActive {
		return users.User{}, fmt.Errorf("account %s is %s: %w", u.Email, u.Status, shared.ErrForbidden)
	}
	at := s.now().UTC()
	if err := s.directory.RecordLogin(ctx, u.ID, at); err != nil {
		return users.User{}, err
	}
	u.LastLogin = &at
	return u, nil
}
