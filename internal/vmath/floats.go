// Package vmath provides pure-Go float64 vector kernels.
// This is an internal package - external users should use the distance package.
package vmath

import "math"

// SumAbsDiff returns the sum of |a[i] - b[i]| over all indices.
//
// SAFETY: This function assumes len(a) == len(b).
// It does NOT perform bounds checks for performance reasons.
// Callers MUST ensure lengths match.
func SumAbsDiff(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}

	return sum
}

// SumSquaredDiff returns the sum of (a[i] - b[i])^2 over all indices.
// Squaring already discards sign, so no absolute value is taken.
//
// SAFETY: assumes len(a) == len(b); callers MUST ensure lengths match.
func SumSquaredDiff(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return sum
}

// PowSumDiff returns the sum of |a[i] - b[i]|^p over all indices.
// The root step is left to the caller.
//
// SAFETY: assumes len(a) == len(b); callers MUST ensure lengths match.
func PowSumDiff(a, b []float64, p float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), p)
	}

	return sum
}

// Batch kernels sweep one query row against a flattened row-major array of
// target rows, writing one distance per target row into out. This is the
// fused form of the broadcast-subtract-reduce pattern: O(rows*dim) elementwise
// work in a single pass with no per-pair allocation.

// ManhattanBatch computes Manhattan distances from query to every row of
// targets. targets is a flattened array of N rows, each of dimension dim.
// out must have length N (len(targets) / dim).
func ManhattanBatch(query, targets []float64, dim int, out []float64) {
	n, ok := batchBounds(query, targets, dim, out)
	if !ok {
		return
	}

	q := query[:dim]
	for i := 0; i < n; i++ {
		offset := i * dim
		out[i] = SumAbsDiff(q, targets[offset:offset+dim])
	}
}

// EuclideanBatch computes Euclidean distances from query to every row of targets.
func EuclideanBatch(query, targets []float64, dim int, out []float64) {
	n, ok := batchBounds(query, targets, dim, out)
	if !ok {
		return
	}

	q := query[:dim]
	for i := 0; i < n; i++ {
		offset := i * dim
		out[i] = math.Sqrt(SumSquaredDiff(q, targets[offset:offset+dim]))
	}
}

// SquaredEuclideanBatch computes squared Euclidean distances from query to
// every row of targets.
func SquaredEuclideanBatch(query, targets []float64, dim int, out []float64) {
	n, ok := batchBounds(query, targets, dim, out)
	if !ok {
		return
	}

	q := query[:dim]
	for i := 0; i < n; i++ {
		offset := i * dim
		out[i] = SumSquaredDiff(q, targets[offset:offset+dim])
	}
}

// MinkowskiBatch computes Minkowski distances with power p from query to
// every row of targets. p must be positive; validation is the caller's
// responsibility.
func MinkowskiBatch(query, targets []float64, dim int, p float64, out []float64) {
	n, ok := batchBounds(query, targets, dim, out)
	if !ok {
		return
	}

	q := query[:dim]
	inv := 1 / p
	for i := 0; i < n; i++ {
		offset := i * dim
		out[i] = math.Pow(PowSumDiff(q, targets[offset:offset+dim], p), inv)
	}
}

// batchBounds clamps the sweep to what query, targets and out can serve.
// dim <= 0 means every distance is 0; out is left zeroed.
func batchBounds(query, targets []float64, dim int, out []float64) (int, bool) {
	if dim <= 0 || len(out) == 0 {
		return 0, false
	}
	if len(query) < dim {
		return 0, false
	}

	n := len(targets) / dim
	if len(out) < n {
		n = len(out)
	}

	return n, true
}
