package mapz

import "iter"

// MultiMap maps each key to one or more values. Keys are reported in the
// order in which they were first added, so iteration is deterministic.
type MultiMap[T comparable, Q any] struct {
	items map[T][]Q
	order []T
}

// NewMultiMap initializes a new MultiMap.
func NewMultiMap[T comparable, Q any]() *MultiMap[T, Q] {
	return &MultiMap[T, Q]{items: map[T][]Q{}}
}

// Add appends the value to those stored at key. Values are not compared, so
// adding the same value twice stores it twice.
func (mm *MultiMap[T, Q]) Add(key T, values ...Q) {
	if _, ok := mm.items[key]; !ok {
		mm.order = append(mm.order, key)
	}
	mm.items[key] = append(mm.items[key], values...)
}

// Len returns the number of keys in the map.
func (mm *MultiMap[T, Q]) Len() int { return len(mm.items) }

// All yields every key with its values in insertion order.
func (mm *MultiMap[T, Q]) All() iter.Seq2[T, []Q] {
	return func(yield func(T, []Q) bool) {
		for _, key := range mm.order {
			if !yield(key, mm.items[key]) {
				return
			}
		}
	}
}
