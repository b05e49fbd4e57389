// Package strings holds small string-slice helpers.
package strings

import (
	"strings"
)

// SplitList splits a comma-separated value into trimmed, non-empty,
// de-duplicated parts in first-seen order.
func SplitList(value string) []string {
	return DedupeAndTrim(strings.Split(value, ","))
}

// DedupeAndTrim trims each element and drops empty and repeated ones.
// A nil or empty input is returned as is.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

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
