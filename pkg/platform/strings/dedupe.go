// Package strings provides string list utilities.
package strings

import (
	"strings"
)

// MergeLower concatenates lists into one, trimming and lowercasing each
// element and dropping empties and duplicates. First occurrence wins.
//
// Example:
//
//	MergeLower([]string{"  OkHttp ", "dalvik"}, []string{"okhttp", ""})
//	// Returns: []string{"okhttp", "dalvik"}
func MergeLower(lists ...[]string) []string {
	var result []string
	seen := make(map[string]struct{})

	for _, list := range lists {
		for _, v := range list {
			normalized := strings.ToLower(strings.TrimSpace(v))
			if normalized == "" {
				continue
			}
			if _, ok := seen[normalized]; ok {
				continue
			}
			seen[normalized] = struct{}{}
			result = append(result, normalized)
		}
	}

	return result
}
