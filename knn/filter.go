package knn

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// predictOptions collects per-call exclusion rules. Exclusion is always by
// identity (training-row index), never by sorted position: a distinct
// neighbour that happens to sit at distance 0 still counts.
type predictOptions struct {
	excludeIndex int
	excludeSelf  bool
	exclude      *roaring.Bitmap
}

func newPredictOptions(opts []PredictOption) predictOptions {
	po := predictOptions{
		excludeIndex: -1,
	}
	for _, fn := range opts {
		fn(&po)
	}
	return po
}

// PredictOption configures a single Predict or PredictAll call.
type PredictOption func(*predictOptions)

// ExcludeIndex removes one training row from consideration, typically the
// test observation's own position when test and train sets overlap.
// A negative index excludes nothing.
func ExcludeIndex(i int) PredictOption {
	return func(po *predictOptions) {
		po.excludeIndex = i
	}
}

// ExcludeSelf excludes column i when classifying row i. Use it with
// PredictAll over a square self-distance matrix, where column i of row i is
// the observation's zero distance to itself. It has no effect on Predict.
func ExcludeSelf() PredictOption {
	return func(po *predictOptions) {
		po.excludeSelf = true
	}
}

// ExcludeBitmap removes every training row in bm from consideration.
// The bitmap is read, never modified.
func ExcludeBitmap(bm *roaring.Bitmap) PredictOption {
	return func(po *predictOptions) {
		po.exclude = bm
	}
}

// excluded reports whether training row col may not vote for test row i.
// i is -1 for single-row Predict calls, disabling ExcludeSelf.
func (po *predictOptions) excluded(i int, col uint32) bool {
	if po.excludeIndex >= 0 && col == uint32(po.excludeIndex) {
		return true
	}
	if po.excludeSelf && i >= 0 && col == uint32(i) {
		return true
	}
	if po.exclude != nil && po.exclude.Contains(col) {
		return true
	}
	return false
}
