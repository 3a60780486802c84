package accesscontrol

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexus-admin/nexus/internal/platform/db"
	"github.com/nexus-admin/nexus/internal/shared"
)

// PGRepository backs the facade with PostgreSQL. Each WithTx call is one
// serializable transaction, so the permission-delete cascade commits
// atomically with the definition removal.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// WithTx implements Repository.
func (r *PGRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &pgTx{tx: tx})
	})
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) RoleByID(ctx context.Context, id string) (RoleRecord, error) {
	var rec RoleRecord
	err := t.tx.QueryRow(ctx, `SELECT id, name, is_system FROM roles WHERE id = $1`, id).
		Scan(&rec.ID, &rec.Name, &rec.IsSystem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RoleRecord{}, fmt.Errorf("role %s: %w", id, shared.ErrNotFound)
		}
		return RoleRecord{}, err
	}
	return rec, nil
}

func (t *pgTx) CountUsersWithRole(ctx context.Context, roleID string) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx, `SELECT count(*) FROM users WHERE role_id = $1`, roleID).Scan(&n)
	return n, err
}

func (t *pgTx) DeleteRole(ctx context.Context, id string) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	return err
}

func (t *pgTx) PermissionByID(ctx context.Context, id string) (PermissionRecord, error) {
	var rec PermissionRecord
	err := t.tx.QueryRow(ctx, `SELECT id, perm_key, name, is_system FROM permissions WHERE id = $1`, id).
		Scan(&rec.ID, &rec.Key, &rec.Name, &rec.IsSystem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PermissionRecord{}, fmt.Errorf("permission %s: %w", id, shared.ErrNotFound)
		}
		return PermissionRecord{}, err
	}
	return rec, nil
}

func (t *pgTx) DeletePermission(ctx context.Context, id string) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	return err
}

func (t *pgTx) StripPermissionKey(ctx context.Context, key string) error {
	_, err := t.tx.Exec(ctx, `UPDATE roles SET permissions = array_remove(permissions, $1) WHERE $1 = ANY(permissions)`, key)
	return err
}
