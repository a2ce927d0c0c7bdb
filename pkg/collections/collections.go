// Package collections holds small generic slice helpers.
package collections

// Apply returns applicator(item) for each item, in order.
func Apply[T, V any](items []T, applicator func(T) V) []V {
	result := make([]V, len(items))
	for i, item := range items {
		result[i] = applicator(item)
	}
	return result
}

// Filter returns the items for which keep is true, in order.
// The result is nil when nothing is kept.
func Filter[T any](items []T, keep func(T) bool) []T {
	var result []T
	for _, item := range items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}
