// Package knn implements a k-nearest-neighbour classifier over precomputed
// distance matrices.
//
// The classifier is lazy: it holds only the training labels. Each prediction
// consumes one row of a DistanceMatrix (the test observation's distances to
// every training row), selects the k smallest with a bounded heap, and
// returns the majority label.
//
// # Exclusion
//
// When test and train sets overlap, the test observation's own training row
// must not vote. Exclusion here is always by index identity, never by sorted
// position: discarding "the closest neighbour" instead would silently drop a
// legitimate duplicate at distance 0. Use ExcludeIndex for single rows,
// ExcludeSelf over a square self-distance matrix, or ExcludeBitmap for
// arbitrary index sets.
//
// # k semantics
//
// k < 1 is ErrInvalidK. When fewer than k candidates remain after exclusion,
// the call fails with ErrInsufficientNeighbors; constructing the classifier
// with ClampK shrinks k to the available count instead (a row with zero
// candidates still fails).
//
// # Tie-breaks
//
// Equally frequent labels are ranked by smaller cumulative distance over
// their voting neighbours, then by the closest neighbour. Equal distances
// rank the lower training index first. Predictions are therefore
// deterministic for identical inputs.
package knn
