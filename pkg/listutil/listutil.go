package listutil

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// Unique returns the distinct items in order of first occurrence.
func Unique[T comparable](items []T) []T {
	seen := sets.New[T]()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if seen.Has(item) {
			continue
		}
		seen.Insert(item)
		out = append(out, item)
	}
	return out
}

// MoveUp swaps the first occurrence of target at index 1 or later with its
// predecessor. It does nothing when target is only at index 0 or absent.
func MoveUp[T comparable](items []T, target T) {
	for i := 1; i < len(items); i++ {
		if items[i] == target {
			items[i-1], items[i] = items[i], items[i-1]
			return
		}
	}
}

// MoveDown scans from the second to last index towards the front and swaps
// the first match it finds with its successor.
func MoveDown[T comparable](items []T, target T) {
	for i := len(items) - 2; i >= 0; i-- {
		if items[i] == target {
			items[i], items[i+1] = items[i+1], items[i]
			return
		}
	}
}
