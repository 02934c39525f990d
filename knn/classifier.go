package knn

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/neargo/neargo"
	"github.com/neargo/neargo/distance"
)

type config struct {
	clampK     bool
	numWorkers int
	logger     *neargo.Logger
	metrics    neargo.MetricsCollector
}

func defaultConfig() config {
	return config{
		numWorkers: 1,
		logger:     neargo.NoopLogger(),
		metrics:    neargo.NoopMetricsCollector{},
	}
}

// Option configures a Classifier.
type Option func(*config)

// ClampK shrinks k to the number of available neighbours instead of failing
// with ErrInsufficientNeighbors when k exceeds it. A row with no available
// neighbours at all still fails.
func ClampK() Option {
	return func(c *config) {
		c.clampK = true
	}
}

// WithNumWorkers shards PredictAll rows across n goroutines. Each worker
// owns a disjoint row range of the output, so results do not depend on the
// worker count. n <= 0 means one worker per available CPU; the default is 1.
func WithNumWorkers(n int) Option {
	return func(c *config) {
		c.numWorkers = n
	}
}

// WithLogger sets the logger used for per-operation debug logging.
func WithLogger(l *neargo.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = neargo.NoopLogger()
		}
		c.logger = l
	}
}

// WithMetricsCollector sets the collector notified after each prediction pass.
func WithMetricsCollector(mc neargo.MetricsCollector) Option {
	return func(c *config) {
		if mc == nil {
			mc = neargo.NoopMetricsCollector{}
		}
		c.metrics = mc
	}
}

// Classifier predicts class labels from rows of a precomputed distance
// matrix: for each test observation it selects the k training rows with the
// smallest distances and returns the majority label among them.
//
// Ties in the majority vote are broken deterministically: the label with the
// smaller cumulative distance over its voting neighbours wins, and if that
// still ties, the label of the closest neighbour wins.
type Classifier[L comparable] struct {
	labels []L
	cfg    config
}

// New creates a Classifier over the given training labels. labels[j] must
// correspond to column j of every distance row handed to Predict. The slice
// is copied; the caller's copy stays untouched.
func New[L comparable](labels []L, opts ...Option) *Classifier[L] {
	cfg := defaultConfig()
	for _, fn := range opts {
		fn(&cfg)
	}

	return &Classifier[L]{
		labels: append([]L(nil), labels...),
		cfg:    cfg,
	}
}

// Labels returns the number of training labels.
func (c *Classifier[L]) Labels() int {
	return len(c.labels)
}

// Predict classifies a single test observation from its row of distances to
// every training row. dists must have one entry per training label.
//
// k < 1 returns ErrInvalidK. If fewer than k neighbours remain after
// exclusion the call returns ErrInsufficientNeighbors, unless the classifier
// was built with ClampK.
func (c *Classifier[L]) Predict(dists []float64, k int, opts ...PredictOption) (L, error) {
	start := time.Now()

	po := newPredictOptions(opts)
	label, err := c.predictRow(dists, k, -1, &po)

	elapsed := time.Since(start)
	c.cfg.metrics.RecordPredict(k, 1, elapsed, err)
	c.cfg.logger.LogPredict(context.Background(), k, 1, elapsed, err)

	return label, err
}

// PredictAll classifies every row of a distance matrix (test rows x train
// rows) and returns one label per row, in row order. Combine with
// ExcludeSelf when d is a self-distance matrix of the training set.
func (c *Classifier[L]) PredictAll(ctx context.Context, d *neargo.DistanceMatrix, k int, opts ...PredictOption) ([]L, error) {
	start := time.Now()

	po := newPredictOptions(opts)
	out, err := c.predictAll(ctx, d, k, &po)

	elapsed := time.Since(start)
	c.cfg.metrics.RecordPredict(k, d.Rows(), elapsed, err)
	c.cfg.logger.LogPredict(ctx, k, d.Rows(), elapsed, err)

	return out, err
}

func (c *Classifier[L]) predictAll(ctx context.Context, d *neargo.DistanceMatrix, k int, po *predictOptions) ([]L, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if d.Rows() > 0 && d.Cols() != len(c.labels) {
		return nil, &distance.ErrDimensionMismatch{Expected: len(c.labels), Actual: d.Cols()}
	}

	n := d.Rows()
	out := make([]L, n)

	workers := c.cfg.numWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			label, err := c.predictRow(d.Row(i), k, i, po)
			if err != nil {
				return nil, err
			}
			out[i] = label
		}
		return out, nil
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
				label, err := c.predictRow(d.Row(i), k, i, po)
				if err != nil {
					return err
				}
				out[i] = label
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// predictRow selects the k nearest non-excluded neighbours of one test row
// and votes. row is the test row's own index for ExcludeSelf, or -1.
func (c *Classifier[L]) predictRow(dists []float64, k int, row int, po *predictOptions) (L, error) {
	var zero L

	if k < 1 {
		return zero, ErrInvalidK
	}
	if len(dists) != len(c.labels) {
		return zero, &distance.ErrDimensionMismatch{Expected: len(c.labels), Actual: len(dists)}
	}

	q := newNeighborQueue(k)
	available := 0
	for j, dist := range dists {
		col := uint32(j)
		if po.excluded(row, col) {
			continue
		}
		available++
		q.pushBounded(neighbor{index: col, distance: dist}, k)
	}

	if available < k {
		if !c.cfg.clampK || available == 0 {
			return zero, &ErrInsufficientNeighbors{K: k, Available: available}
		}
		k = available
	}

	return c.vote(q.sorted()[:k]), nil
}

// tally accumulates the votes for one label.
type tally struct {
	count      int
	cumulative float64
	firstRank  int
}

// betterTally reports whether a beats b: more votes, then smaller cumulative
// distance, then earliest first appearance in sorted order.
func betterTally(a, b *tally) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	if a.cumulative != b.cumulative {
		return a.cumulative < b.cumulative
	}
	return a.firstRank < b.firstRank
}

// vote returns the majority label among the given neighbours, which must be
// in ascending distance order.
func (c *Classifier[L]) vote(nearest []neighbor) L {
	tallies := make(map[L]*tally, len(nearest))
	for rank, nb := range nearest {
		label := c.labels[nb.index]
		t, ok := tallies[label]
		if !ok {
			t = &tally{firstRank: rank}
			tallies[label] = t
		}
		t.count++
		t.cumulative += nb.distance
	}

	var (
		best  L
		bestT *tally
	)
	for rank := range nearest {
		// Iterate by rank rather than over the map so the scan order is
		// deterministic.
		label := c.labels[nearest[rank].index]
		t := tallies[label]
		if t.firstRank != rank {
			continue
		}
		if bestT == nil || betterTally(t, bestT) {
			best, bestT = label, t
		}
	}

	return best
}
