package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexus-admin/nexus/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for users.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const userColumns = `id, email, name, role_id, status, avatar_url, bio, created_at, last_login`

// List returns one page of users matching the search, newest first.
func (r *PGRepository) List(ctx context.Context, q shared.ListQuery) ([]User, int, error) {
	pattern := "%" + q.Search + "%"
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE name ILIKE $1 OR email ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE name ILIKE $1 OR email ILIKE $1
		 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		pattern, q.Limit, (q.Page-1)*q.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := scanUsers(rows)
	return out, total, err
}

// ListAll returns every user in insertion order.
func (r *PGRepository) ListAll(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// Get returns a user by ID.
func (r *PGRepository) Get(ctx context.Context, id string) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// FindByEmail returns the first user with the email in insertion order.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 ORDER BY created_at, id LIMIT 1`, email))
}

// Insert stores a new user.
func (r *PGRepository) Insert(ctx context.Context, u User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, role_id, status, avatar_url, bio, created_at, last_login)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.Name, u.RoleID, string(u.Status), u.AvatarURL, u.Bio, u.CreatedAt, u.LastLogin)
	return err
}

// Update replaces the stored record.
func (r *PGRepository) Update(ctx context.Context, u User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $2, name = $3, role_id = $4, status = $5, avatar_url = $6, bio = $7 WHERE id = $1`,
		u.ID, u.Email, u.Name, u.RoleID, string(u.Status), u.AvatarURL, u.Bio)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", u.ID, shared.ErrNotFound)
	}
	return nil
}

// Delete removes a user. Deleting an absent user is not an error.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// RecordLogin stamps the last-login time.
func (r *PGRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, shared.ErrNotFound)
	}
	return nil
}

func scanUsers(rows pgx.Rows) ([]User, error) {
	var out []User
	for rows.Next() {
		var u User
		var status string
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.RoleID, &status, &u.AvatarURL, &u.Bio, &u.CreatedAt, &u.LastLogin); err != nil {
			return nil, err
		}
		u.Status = Status(status)
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	var status string
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.RoleID, &status, &u.AvatarURL, &u.Bio, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	u.Status = Status(status)
	return u, nil
}
