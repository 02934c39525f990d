package neargo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
//
// This is the instrumentation hook for callers that previously relied on
// ad-hoc timing around distance computations: the engine reports elapsed
// wall time per operation and never prints anything itself.
type MetricsCollector interface {
	// RecordPairwise is called after each dense pairwise computation.
	// pairs is rows*cols of the output, duration is the total time taken,
	// err is nil if successful.
	RecordPairwise(pairs int, duration time.Duration, err error)

	// RecordCondensed is called after each triangular self-distance
	// computation. pairs is n*(n-1)/2.
	RecordCondensed(pairs int, duration time.Duration, err error)

	// RecordPredict is called after each classification pass.
	// k is the number of neighbours requested, rows is the number of
	// observations classified.
	RecordPredict(k, rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPairwise(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordCondensed(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordPredict(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// All fields are safe for concurrent use.
type BasicMetricsCollector struct {
	PairwiseCount       atomic.Int64
	PairwiseErrors      atomic.Int64
	PairwisePairs       atomic.Int64
	PairwiseTotalNanos  atomic.Int64
	CondensedCount      atomic.Int64
	CondensedErrors     atomic.Int64
	CondensedPairs      atomic.Int64
	CondensedTotalNanos atomic.Int64
	PredictCount        atomic.Int64
	PredictErrors       atomic.Int64
	PredictRows         atomic.Int64
	PredictTotalNanos   atomic.Int64
}

func (c *BasicMetricsCollector) RecordPairwise(pairs int, duration time.Duration, err error) {
	c.PairwiseCount.Add(1)
	c.PairwisePairs.Add(int64(pairs))
	c.PairwiseTotalNanos.Add(int64(duration))
	if err != nil {
		c.PairwiseErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordCondensed(pairs int, duration time.Duration, err error) {
	c.CondensedCount.Add(1)
	c.CondensedPairs.Add(int64(pairs))
	c.CondensedTotalNanos.Add(int64(duration))
	if err != nil {
		c.CondensedErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordPredict(k, rows int, duration time.Duration, err error) {
	c.PredictCount.Add(1)
	c.PredictRows.Add(int64(rows))
	c.PredictTotalNanos.Add(int64(duration))
	if err != nil {
		c.PredictErrors.Add(1)
	}
}

// AveragePairwiseDuration returns the mean duration of pairwise computations,
// or 0 if none were recorded.
func (c *BasicMetricsCollector) AveragePairwiseDuration() time.Duration {
	n := c.PairwiseCount.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(c.PairwiseTotalNanos.Load() / n)
}
