package ds

import (
	"golang.org/x/exp/constraints"
)

// MakeRange returns start, start+step, ... up to but excluding end. The loop
// stops before stepping past end, so narrow types never wrap around.
func MakeRange[T constraints.Integer](start, end, step T) []T {
	sequence := make([]T, 0)
	if step <= 0 || end <= start {
		return sequence
	}
	for i := start; ; i += step {
		sequence = append(sequence, i)
		if end-i <= step {
			break
		}
	}
	return sequence
}
