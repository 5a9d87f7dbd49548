// Package maputil provides small helpers for working with Go maps that have
// no inherent iteration order.
package maputil

import "sort"

// SortedKeys returns the keys of m in ascending order. Returns an empty,
// non-nil slice for a nil or empty map.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
