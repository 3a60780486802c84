package blog

import (
	"context"

	"github.com/nexus-admin/nexus/internal/shared"
)

// Repository defines data access for blog posts.
type Repository interface {
	// List applies the search filter over title and content, sorts most
	// recently updated first and returns the requested page plus the
	// filtered total.
	List(ctx context.Context, q shared.ListQuery) ([]Post, int, error)
	ListAll(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, id string) (Post, error)
	Insert(ctx context.Context, p Post) error
	Update(ctx context.Context, p Post) error
	Delete(ctx context.Context, id string) error
}
