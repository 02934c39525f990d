// Package distance provides Minkowski-family distance calculations over
// float64 vectors.
//
// # Supported Metrics
//
//   - MetricManhattan: sum of absolute differences (Minkowski p=1)
//   - MetricEuclidean: straight-line distance (Minkowski p=2)
//   - MetricSquaredEuclidean: Euclidean without the final square root
//     (faster, preserves ordering)
//
// The general Minkowski distance for an arbitrary power p is available via
// Minkowski and MinkowskiProvider. Providers return specialized
// implementations for p=1 and p=2 that skip the redundant pow/abs steps.
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	f, _ := distance.MinkowskiProvider(3)
//	d = f(a, b)
package distance
