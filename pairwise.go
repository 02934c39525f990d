package neargo

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/neargo/neargo/distance"
)

// Engine computes pairwise distance matrices over dense row matrices.
// An Engine holds only configuration and is safe for concurrent use.
type Engine struct {
	opts options
}

// New creates an Engine. With no options it runs the fused strategy on a
// single goroutine and emits no logs or metrics.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Engine{opts: o}
}

// Pairwise computes the (x.Rows() x y.Rows()) distance matrix between two
// matrices under the given metric. Passing y == nil compares x against
// itself, producing the full symmetric self-distance matrix with a zero
// diagonal.
//
// An empty x or y yields an empty matrix without error. A feature-dimension
// mismatch between x and y returns ErrDimensionMismatch before any
// computation. Non-finite input values propagate into the output.
func (e *Engine) Pairwise(ctx context.Context, x, y *Matrix, m distance.Metric) (*DistanceMatrix, error) {
	f, err := distance.Provider(m)
	if err != nil {
		return nil, err
	}
	bf, err := distance.BatchProvider(m)
	if err != nil {
		return nil, err
	}

	return e.compute(ctx, x, y, f, bf)
}

// PairwiseMinkowski is Pairwise under the generic Minkowski metric with
// power p. p=1 and p=2 use the specialized Manhattan and Euclidean
// implementations; p <= 0 returns ErrInvalidPower.
func (e *Engine) PairwiseMinkowski(ctx context.Context, x, y *Matrix, p float64) (*DistanceMatrix, error) {
	f, err := distance.MinkowskiProvider(p)
	if err != nil {
		return nil, err
	}
	bf, err := distance.MinkowskiBatchProvider(p)
	if err != nil {
		return nil, err
	}

	return e.compute(ctx, x, y, f, bf)
}

func (e *Engine) compute(ctx context.Context, x, y *Matrix, f distance.Func, bf distance.BatchFunc) (*DistanceMatrix, error) {
	start := time.Now()

	if y == nil {
		y = x
	}

	out, err := e.fill(ctx, x, y, f, bf)

	elapsed := time.Since(start)
	e.opts.metrics.RecordPairwise(x.rows*y.rows, elapsed, err)
	e.opts.logger.LogPairwise(ctx, x.rows, y.rows, x.dim, elapsed, err)

	return out, err
}

func (e *Engine) fill(ctx context.Context, x, y *Matrix, f distance.Func, bf distance.BatchFunc) (*DistanceMatrix, error) {
	if x.rows > 0 && y.rows > 0 && x.dim != y.dim {
		return nil, &distance.ErrDimensionMismatch{Expected: x.dim, Actual: y.dim}
	}

	out := newDistanceMatrix(x.rows, y.rows)
	if x.rows == 0 || y.rows == 0 || x.dim == 0 {
		// Zero rows means an empty matrix; zero features means every
		// distance is 0. Either way the zero-filled buffer is the answer.
		return out, nil
	}

	var fillRow func(i int)
	switch e.opts.strategy {
	case StrategyNaive:
		fillRow = func(i int) {
			xi := x.Row(i)
			row := out.Row(i)
			for j := 0; j < y.rows; j++ {
				row[j] = f(xi, y.Row(j))
			}
		}
	default:
		fillRow = func(i int) {
			bf(x.Row(i), y.data, y.dim, out.Row(i))
		}
	}

	if err := e.shardRows(ctx, x.rows, fillRow); err != nil {
		return nil, err
	}

	return out, nil
}

// shardRows runs fillRow(i) for every i in [0, n), sharded across the
// configured number of workers. Each worker owns a disjoint index range, so
// no two goroutines ever touch the same output row. Cancellation is checked
// between rows.
func (e *Engine) shardRows(ctx context.Context, n int, fillRow func(i int)) error {
	workers := e.opts.numWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fillRow(i)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			continue
		}

		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				fillRow(i)
			}
			return nil
		})
	}

	return g.Wait()
}
