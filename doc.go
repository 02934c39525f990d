// Package neargo provides a pairwise distance engine and supporting types
// for k-nearest-neighbour classification over dense in-memory matrices.
//
// # Quick Start
//
//	x, _ := neargo.FromRows([][]float64{
//	    {5, 7, 3, 9},
//	    {1, 6, 2, 4},
//	    {8, 8, 3, 1},
//	})
//
//	eng := neargo.New()
//	d, _ := eng.Pairwise(ctx, x, nil, distance.MetricEuclidean) // 3x3 self-distances
//
// # Strategies
//
// The engine offers two dense strategies producing identical results:
//
//   - StrategyFused (default): one fused sweep per output row over the
//     flattened backing array. O(n*m*d) elementwise work with no per-pair
//     call overhead.
//   - StrategyNaive: nested row loops invoking the scalar distance function
//     per pair. The correctness reference.
//
// Self-distance matrices are symmetric with a zero diagonal; Condensed
// computes only the n*(n-1)/2 upper-triangle pairs and can be expanded back
// to the dense form with Squareform.
//
// # Parallelism
//
// WithNumWorkers shards output rows across goroutines; each worker owns a
// disjoint slice of the output buffer, so results are identical for any
// worker count. The default is single-threaded.
//
// # Classification
//
// The knn subpackage consumes a DistanceMatrix (test rows x train rows) and
// training labels, and predicts the majority label among the k nearest
// neighbours per row. See the knn package documentation for the exclusion
// and tie-break rules.
//
// # Interop
//
// Matrices convert to and from gonum's *mat.Dense (FromDense, ToDense), so
// upstream loaders and scalers built on gonum plug in directly.
package neargo
