package discovery

import (
	"path/filepath"
	"strings"
)

// Filter selects submission paths or check names by pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the entries whose base name matches pattern.
// Supports patterns like "*_list.go" or "*remove*"; a pattern without wildcards is a
// substring match.
func (f *Filter) FilterByName(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}

	hasWildcard := strings.ContainsAny(pattern, "*?")
	var filtered []string
	for _, name := range names {
		base := filepath.Base(name)

		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			filtered = append(filtered, name)
			continue
		}

		if !hasWildcard {
			if strings.Contains(base, pattern) {
				filtered = append(filtered, name)
			}
			continue
		}

		// "*remove*" style patterns fall back to matching every literal part
		if strings.Contains(pattern, "*") && containsParts(base, strings.Split(pattern, "*")) {
			filtered = append(filtered, name)
		}
	}

	return filtered
}

func containsParts(s string, parts []string) bool {
	nonEmpty := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		nonEmpty = true
		if !strings.Contains(s, part) {
			return false
		}
	}
	return nonEmpty
}
