// Package metric provides checked, single-pair distance calculations.
// Unlike the distance package, every function validates vector lengths
// before computing.
package metric

import (
	"github.com/neargo/neargo/distance"
)

// Minkowski calculates the Minkowski distance with power p between two
// float64 slices.
func Minkowski(v1, v2 []float64, p float64) (float64, error) {
	return distance.Minkowski(v1, v2, p)
}

// Manhattan calculates the Manhattan (Minkowski p=1) distance between two
// float64 slices.
func Manhattan(v1, v2 []float64) (float64, error) {
	// Check if the vector sizes match
	if len(v1) != len(v2) {
		return 0, &distance.ErrDimensionMismatch{Expected: len(v1), Actual: len(v2)}
	}

	return distance.Manhattan(v1, v2), nil
}

// Euclidean calculates the Euclidean (Minkowski p=2) distance between two
// float64 slices.
func Euclidean(v1, v2 []float64) (float64, error) {
	// Check if the vector sizes match
	if len(v1) != len(v2) {
		return 0, &distance.ErrDimensionMismatch{Expected: len(v1), Actual: len(v2)}
	}

	return distance.Euclidean(v1, v2), nil
}

// SquaredEuclidean calculates the squared Euclidean distance between two
// float64 slices.
func SquaredEuclidean(v1, v2 []float64) (float64, error) {
	// Check if the vector sizes match
	if len(v1) != len(v2) {
		return 0, &distance.ErrDimensionMismatch{Expected: len(v1), Actual: len(v2)}
	}

	return distance.SquaredEuclidean(v1, v2), nil
}
