package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nexus-admin/nexus/internal/shared"
)

// Service is the blog registry.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateInput carries the fields for a new post.
type CreateInput struct {
	Title    string
	Excerpt  string
	Content  string
	AuthorID string
	Status   Status
	Tags     []string
}

// UpdateInput patches a post. Nil fields keep their prior value; a non-nil
// Tags replaces the whole list. UpdatedAt is refreshed on every update.
type UpdateInput struct {
	Title    *string
	Excerpt  *string
	Content  *string
	AuthorID *string
	Status   *Status
	Tags     *[]string
}

// List returns one page of posts matching the query.
func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]Post, int, error) {
	return s.repo.List(ctx, q.Normalize())
}

// ListAll returns every post, for dashboard-style consumers.
func (s *Service) ListAll(ctx context.Context) ([]Post, error) {
	return s.repo.ListAll(ctx)
}

// Get fetches one post by ID.
func (s *Service) Get(ctx context.Context, id string) (Post, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new post with both timestamps set to now.
func (s *Service) Create(ctx context.Context, in CreateInput) (Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Post{}, fmt.Errorf("post title is required: %w", shared.ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = StatusDraft
	}
	if !status.Valid() {
		return Post{}, fmt.Errorf("unknown status %q: %w", status, shared.ErrValidation)
	}
	now := s.now().UTC()
	p := Post{
		ID:        shared.NewID("blog"),
		Title:     title,
		Excerpt:   in.Excerpt,
		Content:   in.Content,
		AuthorID:  in.AuthorID,
		Status:    status,
		Tags:      normalizeTags(in.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// Update merges the patch into the stored record and refreshes UpdatedAt.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Post, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Post{}, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Post{}, fmt.Errorf("post title is required: %w", shared.ErrValidation)
		}
		p.Title = title
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.AuthorID != nil {
		p.AuthorID = *in.AuthorID
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return Post{}, fmt.Errorf("unknown status %q: %w", *in.Status, shared.ErrValidation)
		}
		p.Status = *in.Status
	}
	if in.Tags != nil {
		p.Tags = normalizeTags(*in.Tags)
	}
	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// Delete removes a post unconditionally.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// normalizeTags trims, drops empties and deduplicates while keeping order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
