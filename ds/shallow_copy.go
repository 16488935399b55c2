package ds

// ShallowCopy returns a new slice with the elements of ts, so the copy can be
// mutated without touching ts.
func ShallowCopy[T any](ts []T) []T {
	tsCopy := make([]T, len(ts))
	copy(tsCopy, ts)
	return tsCopy
}
