// Package strings holds the text normalization shared by catalog facets and
// filters.
package strings

import (
	"slices"
	"strings"
)

// Distinct trims each value, drops blanks and keeps the first occurrence of
// each remaining value. The result is never nil.
//
// Example:
//
//	Distinct([]string{"  AWS ", "Udemy", "AWS", "", "  "})
//	// Returns: []string{"AWS", "Udemy"}
func Distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// SortedDistinct is Distinct sorted ascending by byte order.
func SortedDistinct(values []string) []string {
	result := Distinct(values)
	slices.Sort(result)
	return result
}

// ContainsFold reports whether substr appears in s ignoring case. An empty
// substr matches everything.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
