package common

// IsEmpty reports whether the slice has no elements.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle reports whether the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// First returns the first element and true, or the zero value and false when
// the slice is empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if IsEmpty(s) {
		var zero E

		return zero, false
	}

	return s[0], true
}
