package blog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexus-admin/nexus/internal/blog"
	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/store"
)

func TestCreatePostDefaultsToDraft(t *testing.T) {
	svc := blog.NewService(store.New().Posts())
	ctx := context.Background()

	p, err := svc.Create(ctx, blog.CreateInput{Title: "Hello", AuthorID: "user-1"})
	require.NoError(t, err)
	require.Equal(t, blog.StatusDraft, p.Status)
	require.True(t, p.CreatedAt.Equal(p.UpdatedAt))
	require.Empty(t, p.Tags)
}

func TestCreatePostNormalizesTags(t *testing.T) {
	svc := blog.NewService(store.New().Posts())
	ctx := context.Background()

	p, err := svc.Create(ctx, blog.CreateInput{Title: "Hello", Tags: []string{" go ", "go", "", "web"}})
	require.NoError(t, err)
	require.Equal(t, []string{"go", "web"}, p.Tags)
}

func TestCreatePostRequiresTitle(t *testing.T) {
	svc := blog.NewService(store.New().Posts())
	_, err := svc.Create(context.Background(), blog.CreateInput{Title: "  "})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdatePostRefreshesUpdatedAt(t *testing.T) {
	svc := blog.NewService(store.New().Posts())
	ctx := context.Background()

	p, err := svc.Create(ctx, blog.CreateInput{Title: "Hello"})
	require.NoError(t, err)

	status := blog.StatusPublished
	updated, err := svc.Update(ctx, p.ID, blog.UpdateInput{Status: &status})
	require.NoError(t, err)
	require.Equal(t, blog.StatusPublished, updated.Status)
	require.Equal(t, "Hello", updated.Title)
	require.False(t, updated.UpdatedAt.Before(p.UpdatedAt))
	require.True(t, updated.CreatedAt.Equal(p.CreatedAt))
}

func TestListSortsByUpdatedAtDesc(t *testing.T) {
	st := store.New()
	svc := blog.NewService(st.Posts())
	ctx := context.Background()

	first, err := svc.Create(ctx, blog.CreateInput{Title: "first", Content: "alpha"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, blog.CreateInput{Title: "second", Content: "beta"})
	require.NoError(t, err)

	// Touching the older post moves it to the top.
	excerpt := "touched"
	_, err = svc.Update(ctx, first.ID, blog.UpdateInput{Excerpt: &excerpt})
	require.NoError(t, err)

	page, total, err := svc.List(ctx, shared.ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, first.ID, page[0].ID)
	require.Equal(t, second.ID, page[1].ID)
}

func TestListSearchesTitleAndContent(t *testing.T) {
	svc := blog.NewService(store.New().Posts())
	ctx := context.Background()

	_, err := svc.Create(ctx, blog.CreateInput{Title: "Release Notes", Content: "minor fixes"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, blog.CreateInput{Title: "Roadmap", Content: "the next RELEASE"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, blog.CreateInput{Title: "Unrelated", Content: "nothing here"})
	require.NoError(t, err)

	_, total, err := svc.List(ctx, shared.ListQuery{Page: 1, Limit: 10, Search: "release"})
	require.NoError(t, err)
	require.Equal(t, 2, total)
}
