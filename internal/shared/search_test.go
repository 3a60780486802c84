package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsFold(t *testing.T) {
	require.True(t, ContainsFold("Alice Albright", "al"))
	require.True(t, ContainsFold("admin@nexus.com", "NEXUS"))
	require.True(t, ContainsFold("Übermensch", "über"))
	require.False(t, ContainsFold("Bob", "alice"))

	// Empty pattern matches everything, including the empty string.
	require.True(t, ContainsFold("anything", ""))
	require.True(t, ContainsFold("", ""))
}
