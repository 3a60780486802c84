package roles

import "context"

// Repository defines data access for roles. Deletion is excluded: the
// access-control facade owns it because of the in-use and system checks.
type Repository interface {
	List(ctx context.Context) ([]Role, error)
	Get(ctx context.Context, id string) (Role, error)
	Insert(ctx context.Context, r Role) error
	// Update replaces the stored record wholesale, including the permission
	// set. Returns shared.ErrNotFound when the ID is absent.
	Update(ctx context.Context, r Role) error
}
