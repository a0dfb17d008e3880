package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Ptr returns a pointer to a copy of v; nil for the zero value when omitZero is set.
func Ptr[T comparable](v T, omitZero bool) *T {
	var zero T
	if omitZero && v == zero {
		return nil
	}
	return &v
}
