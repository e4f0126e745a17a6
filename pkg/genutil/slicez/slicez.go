package slicez

// Map returns a new slice holding fn applied to each element of xs.
func Map[T any, R any](xs []T, fn func(T) R) []R {
	ys := make([]R, len(xs))
	for i, x := range xs {
		ys[i] = fn(x)
	}
	return ys
}

// Unique returns xs without duplicates, keeping the first occurrence of each
// element in its original position.
func Unique[T comparable, Slice ~[]T](xs Slice) Slice {
	ys := make(Slice, 0, len(xs))
	seen := make(map[T]struct{}, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}

		seen[x] = struct{}{}
		ys = append(ys, x)
	}
	return ys
}

// Duplicates returns the elements that occur more than once in xs, each
// reported once, in order of their second occurrence.
func Duplicates[T comparable, Slice ~[]T](xs Slice) Slice {
	var dups Slice
	counts := make(map[T]int, len(xs))
	for _, x := range xs {
		counts[x]++
		if counts[x] == 2 {
			dups = append(dups, x)
		}
	}
	return dups
}
