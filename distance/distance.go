// Package distance provides public API for vector distance calculations.
// Scalar functions assume equal-length inputs; use Minkowski for a checked
// variant or validate once per matrix at a higher level.
package distance

import (
	"fmt"
	"math"

	"github.com/neargo/neargo/internal/vmath"
)

// Manhattan calculates the Minkowski p=1 distance between two vectors.
// The power/root step is the identity for p=1 and is skipped entirely.
// Assumes vectors are the same length (caller's responsibility).
func Manhattan(a, b []float64) float64 {
	return vmath.SumAbsDiff(a, b)
}

// Euclidean calculates the Minkowski p=2 distance between two vectors.
// Squaring discards sign, so no absolute value is taken before summing.
// Assumes vectors are the same length (caller's responsibility).
func Euclidean(a, b []float64) float64 {
	return math.Sqrt(vmath.SumSquaredDiff(a, b))
}

// SquaredEuclidean calculates the squared Euclidean distance between two
// vectors. It preserves the ordering of Euclidean while skipping the root,
// which is all a nearest-neighbour ranking needs.
// Assumes vectors are the same length (caller's responsibility).
func SquaredEuclidean(a, b []float64) float64 {
	return vmath.SumSquaredDiff(a, b)
}

// Minkowski calculates the generic Minkowski distance (sum of |a_i-b_i|^p,
// raised to 1/p) between two vectors. Unlike the Func variants it validates
// its inputs: it returns ErrDimensionMismatch when the lengths differ and
// ErrInvalidPower when p <= 0.
//
// A vector compared with itself yields exactly 0 for any valid p.
func Minkowski(a, b []float64, p float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	f, err := MinkowskiProvider(p)
	if err != nil {
		return 0, err
	}

	return f(a, b), nil
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricManhattan
	MetricSquaredEuclidean
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricManhattan:
		return "Manhattan"
	case MetricSquaredEuclidean:
		return "SquaredEuclidean"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation between two vectors.
type Func func(a, b []float64) float64

// BatchFunc is a function type for bulk distance calculation: one query row
// against a flattened row-major array of target rows, one distance per row
// written to out. out must have length len(targets)/dim.
type BatchFunc func(query, targets []float64, dim int, out []float64)

// Provider returns the scalar distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricSquaredEuclidean:
		return SquaredEuclidean, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

// BatchProvider returns the batch distance function for the given metric.
func BatchProvider(m Metric) (BatchFunc, error) {
	switch m {
	case MetricEuclidean:
		return vmath.EuclideanBatch, nil
	case MetricManhattan:
		return vmath.ManhattanBatch, nil
	case MetricSquaredEuclidean:
		return vmath.SquaredEuclideanBatch, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

// MinkowskiProvider returns the scalar distance function for power p.
// p=1 and p=2 return the specialized Manhattan and Euclidean implementations;
// other powers return a generic pow/root closure. p <= 0 (or NaN) is rejected
// with ErrInvalidPower.
func MinkowskiProvider(p float64) (Func, error) {
	switch {
	case math.IsNaN(p) || p <= 0:
		return nil, &ErrInvalidPower{P: p}
	case p == 1:
		return Manhattan, nil
	case p == 2:
		return Euclidean, nil
	default:
		inv := 1 / p
		return func(a, b []float64) float64 {
			return math.Pow(vmath.PowSumDiff(a, b, p), inv)
		}, nil
	}
}

// MinkowskiBatchProvider returns the batch distance function for power p,
// with the same specialization rules as MinkowskiProvider.
func MinkowskiBatchProvider(p float64) (BatchFunc, error) {
	switch {
	case math.IsNaN(p) || p <= 0:
		return nil, &ErrInvalidPower{P: p}
	case p == 1:
		return vmath.ManhattanBatch, nil
	case p == 2:
		return vmath.EuclideanBatch, nil
	default:
		return func(query, targets []float64, dim int, out []float64) {
			vmath.MinkowskiBatch(query, targets, dim, p, out)
		}, nil
	}
}
