package neargo

import (
	"context"
	"iter"
	"time"

	"github.com/neargo/neargo/distance"
)

// Condensed is the triangular form of a self-distance matrix: only the
// n*(n-1)/2 distances for index pairs (i, j) with i < j are stored, in
// canonical order (i ascending, then j ascending). The diagonal is implicitly
// zero and (j, i) mirrors (i, j).
type Condensed struct {
	n    int
	data []float64
}

// Pair identifies one unordered row pair, with I < J.
type Pair struct {
	I, J int
}

// Condensed computes the triangular self-distance form of x under the given
// metric. It performs one bulk sweep per row i over the rows after it, so
// each of the n*(n-1)/2 pairs is computed exactly once.
func (e *Engine) Condensed(ctx context.Context, x *Matrix, m distance.Metric) (*Condensed, error) {
	bf, err := distance.BatchProvider(m)
	if err != nil {
		return nil, err
	}

	return e.computeCondensed(ctx, x, bf)
}

// CondensedMinkowski is Condensed under the generic Minkowski metric with
// power p, with the same specialization rules as PairwiseMinkowski.
func (e *Engine) CondensedMinkowski(ctx context.Context, x *Matrix, p float64) (*Condensed, error) {
	bf, err := distance.MinkowskiBatchProvider(p)
	if err != nil {
		return nil, err
	}

	return e.computeCondensed(ctx, x, bf)
}

func (e *Engine) computeCondensed(ctx context.Context, x *Matrix, bf distance.BatchFunc) (*Condensed, error) {
	start := time.Now()

	n := x.rows
	c := &Condensed{
		n:    n,
		data: make([]float64, n*(n-1)/2),
	}

	var err error
	if n >= 2 && x.dim > 0 {
		// Row i is compared against the contiguous block of rows i+1..n-1,
		// which lands exactly on the condensed segment for pairs (i, *).
		err = e.shardRows(ctx, n-1, func(i int) {
			off := condensedOffset(n, i, i+1)
			bf(x.Row(i), x.data[(i+1)*x.dim:], x.dim, c.data[off:off+n-i-1])
		})
		if err != nil {
			c = nil
		}
	}

	elapsed := time.Since(start)
	e.opts.metrics.RecordCondensed(n*(n-1)/2, elapsed, err)
	e.opts.logger.LogCondensed(ctx, n, n*(n-1)/2, elapsed, err)

	return c, err
}

// condensedOffset maps a pair (i, j) with i < j to its index in the
// canonical condensed order.
func condensedOffset(n, i, j int) int {
	return i*(2*n-i-1)/2 + (j - i - 1)
}

// Rows returns the number of observations n the condensed form was computed
// from.
func (c *Condensed) Rows() int { return c.n }

// Len returns the number of stored pairs, n*(n-1)/2.
func (c *Condensed) Len() int { return len(c.data) }

// At returns the distance between rows i and j. The diagonal is 0 and (j, i)
// mirrors (i, j).
func (c *Condensed) At(i, j int) float64 {
	if i < 0 || i >= c.n || j < 0 || j >= c.n {
		panic("neargo: condensed index out of range")
	}
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	return c.data[condensedOffset(c.n, i, j)]
}

// Pairs iterates the stored pairs in canonical order.
func (c *Condensed) Pairs() iter.Seq2[Pair, float64] {
	return func(yield func(Pair, float64) bool) {
		idx := 0
		for i := 0; i < c.n; i++ {
			for j := i + 1; j < c.n; j++ {
				if !yield(Pair{I: i, J: j}, c.data[idx]) {
					return
				}
				idx++
			}
		}
	}
}

// Squareform expands the condensed form into the full symmetric distance
// matrix with a zero diagonal. This is the explicit densification step for
// callers that need the square shape.
func (c *Condensed) Squareform() *DistanceMatrix {
	out := newDistanceMatrix(c.n, c.n)
	for p, d := range c.Pairs() {
		out.data[p.I*c.n+p.J] = d
		out.data[p.J*c.n+p.I] = d
	}
	return out
}
