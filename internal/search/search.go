// Package search implements the client-side style filtering the management
// screens use: the whole table is fetched, then narrowed in memory.
package search

import "strings"

// Match reports whether query occurs case-insensitively in any field.
// An empty query matches everything.
func Match(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter keeps the items for which keep returns true. Never returns nil.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
