package permissions

import "context"

// Repository defines data access for permission definitions. Deletion is
// excluded on purpose: it carries a cross-entity cascade and only the
// access-control facade may perform it.
type Repository interface {
	// List returns all permissions in insertion order.
	List(ctx context.Context) ([]Permission, error)
	// Get returns the permission with the given ID, or shared.ErrNotFound.
	Get(ctx context.Context, id string) (Permission, error)
	// GetByKey returns the permission holding the key, or shared.ErrNotFound.
	GetByKey(ctx context.Context, key string) (Permission, error)
	// Insert stores a new permission. Returns shared.ErrDuplicateKey when the
	// key collides with an existing definition.
	Insert(ctx context.Context, p Permission) error
	// Update replaces the stored record, or returns shared.ErrNotFound.
	Update(ctx context.Context, p Permission) error
}
