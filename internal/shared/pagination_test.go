package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeClampsPageAndLimit(t *testing.T) {
	q := ListQuery{}.Normalize()
	require.Equal(t, 1, q.Page)
	require.Equal(t, 10, q.Limit)

	q = ListQuery{Page: -5, Limit: 10_000}.Normalize()
	require.Equal(t, 1, q.Page)
	require.Equal(t, 100, q.Limit)
}

func TestBounds(t *testing.T) {
	q := ListQuery{Page: 2, Limit: 1}.Normalize()
	start, end := q.Bounds(3)
	require.Equal(t, 1, start)
	require.Equal(t, 2, end)

	// A page past the end collapses to an empty window.
	q = ListQuery{Page: 9, Limit: 10}.Normalize()
	start, end = q.Bounds(3)
	require.Equal(t, 3, start)
	require.Equal(t, 3, end)
}
