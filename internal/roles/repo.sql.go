package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexus-admin/nexus/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for roles.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns all roles in insertion order.
func (r *PGRepository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, permissions, is_system FROM roles ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.Permissions, &role.IsSystem); err != nil {
			return nil, err
		}
		if role.Permissions == nil {
			role.Permissions = []string{}
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

// Get returns a role by ID.
func (r *PGRepository) Get(ctx context.Context, id string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, `SELECT id, name, description, permissions, is_system FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Name, &role.Description, &role.Permissions, &role.IsSystem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, fmt.Errorf("role %s: %w", id, shared.ErrNotFound)
		}
		return Role{}, err
	}
	if role.Permissions == nil {
		role.Permissions = []string{}
	}
	return role, nil
}

// Insert stores a new role.
func (r *PGRepository) Insert(ctx context.Context, role Role) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO roles (id, name, description, permissions, is_system) VALUES ($1, $2, $3, $4, $5)`,
		role.ID, role.Name, role.Description, role.Permissions, role.IsSystem)
	return err
}

// Update replaces the stored record wholesale.
func (r *PGRepository) Update(ctx context.Context, role Role) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE roles SET name = $2, description = $3, permissions = $4 WHERE id = $1`,
		role.ID, role.Name, role.Description, role.Permissions)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("role %s: %w", role.ID, shared.ErrNotFound)
	}
	return nil
}
