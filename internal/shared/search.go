package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// ContainsFold reports whether s contains substr under Unicode case folding.
// An empty pattern matches everything.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	m := search.New(language.Und, search.IgnoreCase)
	start, _ := m.IndexString(s, substr)
	return start >= 0
}
