package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexus-admin/nexus/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for blog posts.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const postColumns = `id, title, excerpt, content, author_id, status, tags, created_at, updated_at`

// List returns one page of posts matching the search, most recently updated
// first.
func (r *PGRepository) List(ctx context.Context, q shared.ListQuery) ([]Post, int, error) {
	pattern := "%" + q.Search + "%"
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM blog_posts WHERE title ILIKE $1 OR content ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+postColumns+` FROM blog_posts
		 WHERE title ILIKE $1 OR content ILIKE $1
		 ORDER BY updated_at DESC, id LIMIT $2 OFFSET $3`,
		pattern, q.Limit, (q.Page-1)*q.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := scanPosts(rows)
	return out, total, err
}

// ListAll returns every post in insertion order.
func (r *PGRepository) ListAll(ctx context.Context) ([]Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM blog_posts ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// Get returns a post by ID.
func (r *PGRepository) Get(ctx context.Context, id string) (Post, error) {
	var p Post
	var status string
	err := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id).
		Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.AuthorID, &status, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Post{}, fmt.Errorf("post %s: %w", id, shared.ErrNotFound)
		}
		return Post{}, err
	}
	p.Status = Status(status)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

// Insert stores a new post.
func (r *PGRepository) Insert(ctx context.Context, p Post) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO blog_posts (id, title, excerpt, content, author_id, status, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Title, p.Excerpt, p.Content, p.AuthorID, string(p.Status), p.Tags, p.CreatedAt, p.UpdatedAt)
	return err
}

// Update replaces the stored record.
func (r *PGRepository) Update(ctx context.Context, p Post) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE blog_posts SET title = $2, excerpt = $3, content = $4, author_id = $5, status = $6, tags = $7, updated_at = $8 WHERE id = $1`,
		p.ID, p.Title, p.Excerpt, p.Content, p.AuthorID, string(p.Status), p.Tags, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", p.ID, shared.ErrNotFound)
	}
	return nil
}

// Delete removes a post. Deleting an absent post is not an error.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	return err
}

func scanPosts(rows pgx.Rows) ([]Post, error) {
	var out []Post
	for rows.Next() {
		var p Post
		var status string
		if err := rows.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.AuthorID, &status, &p.Tags, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Status = Status(status)
		if p.Tags == nil {
			p.Tags = []string{}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
