package users

import (
	"context"
	"time"

	"github.com/nexus-admin/nexus/internal/shared"
)

// Repository defines data access for users.
type Repository interface {
	// List applies the search filter, sorts most recent first by creation
	// time and returns the requested page plus the filtered total.
	List(ctx context.Context, q shared.ListQuery) ([]User, int, error)
	// ListAll returns every user without pagination.
	ListAll(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id string) (User, error)
	// FindByEmail returns the first user with the email in insertion order.
	// Email uniqueness is not enforced by the data model.
	FindByEmail(ctx context.Context, email string) (User, error)
	Insert(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
	// RecordLogin stamps the last-login time without touching other fields.
	RecordLogin(ctx context.Context, id string, at time.Time) error
}
