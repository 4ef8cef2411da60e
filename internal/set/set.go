// Package set provides a generic set container.
package set

// Set is an unordered collection of unique values.
type Set[T comparable] map[T]struct{}

// From returns a set containing the values of vals, duplicates are
// collapsed.
func From[T comparable](vals []T) Set[T] {
	set := make(Set[T], len(vals))

	for _, v := range vals {
		set[v] = struct{}{}
	}

	return set
}

// Slice returns the values of the set, the order is undefined.
func (s Set[T]) Slice() []T {
	result := make([]T, 0, len(s))

	for v := range s {
		result = append(result, v)
	}

	return result
}

// Add adds val to the set.
func (s Set[T]) Add(val T) {
	s[val] = struct{}{}
}

// Contains returns true if val is in the set.
func (s Set[T]) Contains(val T) bool {
	_, exist := s[val]

	return exist
}
