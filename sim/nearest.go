// sim/nearest.go
package sim

import (
	"math"
	"sort"
)

// NearestIndex returns the index in sorted of the value closest to x.
// sorted must be non-empty and in ascending order. When x is equidistant
// from two neighbors the lower one wins.
//
// Panics on an empty slice: there is no nearest value to report.
func NearestIndex(sorted []float64, x float64) int {
	n := len(sorted)
	if n == 0 {
		panic("sim: nearest lookup on empty candidate list")
	}
	// first candidate >= x
	hi := sort.SearchFloat64s(sorted, x)
	switch {
	case hi == 0:
		return 0
	case hi == n:
		return n - 1
	}
	lo := hi - 1
	if math.Abs(x-sorted[lo]) <= math.Abs(sorted[hi]-x) {
		return lo
	}
	return hi
}

// Nearest returns the value in sorted closest to x. See NearestIndex.
func Nearest(sorted []float64, x float64) float64 {
	return sorted[NearestIndex(sorted, x)]
}
