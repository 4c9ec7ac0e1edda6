package sequence

import "github.com/samber/lo"

// Pair links an element to the element before it. The first element's
// predecessor is the last element of the slice.
type Pair[T any] struct {
	PrevIndex int
	Prev      T
	Index     int
	Element   T
}

// EnumeratedPairs returns one Pair per element, in input order.
func EnumeratedPairs[T any](items []T) []Pair[T] {
	return lo.Map(items, func(item T, index int) Pair[T] {
		prev := index - 1
		if prev < 0 {
			prev = len(items) - 1
		}
		return Pair[T]{
			PrevIndex: prev,
			Prev:      items[prev],
			Index:     index,
			Element:   item,
		}
	})
}

// RemoveAdjacentDuplicates returns a new slice where runs of equal
// consecutive elements are collapsed to one. Non-adjacent repeats are kept.
func RemoveAdjacentDuplicates[T comparable](items []T) []T {
	return lo.Reduce(items, func(kept []T, item T, _ int) []T {
		if len(kept) > 0 && kept[len(kept)-1] == item {
			return kept
		}
		return append(kept, item)
	}, make([]T, 0, len(items)))
}
