package generator

import (
	"errors"
)

// Derived draws over the Generator capability. Each helper consumes draws
// through the interface only and never touches a generator's internal
// state.

// ErrEmptySequence is the error returned by Choice for an empty sequence.
var ErrEmptySequence = errors.New("cannot choose from an empty sequence")

// Uniform returns a value in [low, high), consuming one draw.
func Uniform(g Generator, low, high float64) float64 {
	return low + (high-low)*g.Float64()
}

// IntN returns an integer in [low, high], consuming one draw. The scaled
// draw is strictly below high−low+1 because Float64 is strictly below 1,
// so high is reached but never exceeded.
//
// IntN panics if high < low.
func IntN(g Generator, low, high int64) int64 {
	if high < low {
		panic("generator: invalid IntN bounds")
	}
	return low + int64(float64(high-low+1)*g.Float64())
}

// Choice returns an index in [0, n) for selecting one element from a
// sequence of length n, consuming one draw.
func Choice(g Generator, n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptySequence
	}
	return int(IntN(g, 0, int64(n)-1)), nil
}

// Shuffle permutes a sequence of length n in place through swap, walking
// the sequence from its last element as in a Fisher-Yates shuffle. It
// consumes n−1 draws.
func Shuffle(g Generator, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(IntN(g, 0, int64(i)))
		swap(i, j)
	}
}
