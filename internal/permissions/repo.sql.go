package permissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexus-admin/nexus/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for permissions.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const permissionColumns = `id, perm_key, name, description, group_name, is_system`

// List returns all permissions in insertion order.
func (r *PGRepository) List(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+permissionColumns+` FROM permissions ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Key, &p.Name, &p.Description, &p.Group, &p.IsSystem); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// Get returns a permission by ID.
func (r *PGRepository) Get(ctx context.Context, id string) (Permission, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE id = $1`, id))
}

// GetByKey returns the permission holding the key.
func (r *PGRepository) GetByKey(ctx context.Context, key string) (Permission, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE perm_key = $1`, key))
}

// Insert stores a new permission, mapping unique violations to ErrDuplicateKey.
func (r *PGRepository) Insert(ctx context.Context, p Permission) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO permissions (id, perm_key, name, description, group_name, is_system) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Key, p.Name, p.Description, p.Group, p.IsSystem)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("permission key %q already exists: %w", p.Key, shared.ErrDuplicateKey)
		}
		return err
	}
	return nil
}

// Update replaces the mutable fields of an existing permission.
func (r *PGRepository) Update(ctx context.Context, p Permission) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE permissions SET name = $2, description = $3, group_name = $4 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Group)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("permission %s: %w", p.ID, shared.ErrNotFound)
	}
	return nil
}

func (r *PGRepository) scanOne(row pgx.Row) (Permission, error) {
	var p Permission
	err := row.Scan(&p.ID, &p.Key, &p.Name, &p.Description, &p.Group, &p.IsSystem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, shared.ErrNotFound
		}
		return Permission{}, err
	}
	return p, nil
}
