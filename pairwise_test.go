package neargo_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neargo/neargo"
	"github.com/neargo/neargo/distance"
)

func scenarioMatrix(t *testing.T) *neargo.Matrix {
	t.Helper()

	x, err := neargo.FromRows([][]float64{
		{5, 7, 3, 9},
		{1, 6, 2, 4},
		{8, 8, 3, 1},
	})
	require.NoError(t, err)

	return x
}

func randomMatrix(rng *rand.Rand, rows, dim int) *neargo.Matrix {
	m := neargo.NewMatrix(rows, dim)
	for i := 0; i < rows; i++ {
		for j := 0; j < dim; j++ {
			m.Set(i, j, rng.NormFloat64()*10)
		}
	}
	return m
}

func TestPairwiseSelfEuclidean(t *testing.T) {
	x := scenarioMatrix(t)

	eng := neargo.New()
	d, err := eng.Pairwise(context.Background(), x, nil, distance.MetricEuclidean)
	require.NoError(t, err)

	require.Equal(t, 3, d.Rows())
	require.Equal(t, 3, d.Cols())

	// Zero diagonal.
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, d.At(i, i))
	}

	// Known off-diagonal values, mirrored.
	assert.InDelta(t, 6.557439, d.At(0, 1), 1e-6)
	assert.InDelta(t, 8.602325, d.At(0, 2), 1e-6)
	assert.InDelta(t, 7.937254, d.At(1, 2), 1e-6)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, d.At(i, j), d.At(j, i))
		}
	}
}

func TestPairwiseTwoSets(t *testing.T) {
	x, err := neargo.FromRows([][]float64{{5, 7, 3, 9}})
	require.NoError(t, err)
	y, err := neargo.FromRows([][]float64{{1, 6, 2, 4}, {5, 7, 3, 9}})
	require.NoError(t, err)

	eng := neargo.New()

	d, err := eng.Pairwise(context.Background(), x, y, distance.MetricManhattan)
	require.NoError(t, err)
	require.Equal(t, 1, d.Rows())
	require.Equal(t, 2, d.Cols())
	assert.InDelta(t, 11, d.At(0, 0), 1e-12)
	assert.InDelta(t, 0, d.At(0, 1), 1e-12)
}

func TestPairwiseStrategyEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	x := randomMatrix(rng, 17, 6)
	y := randomMatrix(rng, 23, 6)

	naive := neargo.New(neargo.WithStrategy(neargo.StrategyNaive))
	fused := neargo.New(neargo.WithStrategy(neargo.StrategyFused))

	for _, m := range []distance.Metric{
		distance.MetricEuclidean,
		distance.MetricManhattan,
		distance.MetricSquaredEuclidean,
	} {
		t.Run(m.String(), func(t *testing.T) {
			want, err := naive.Pairwise(context.Background(), x, y, m)
			require.NoError(t, err)
			got, err := fused.Pairwise(context.Background(), x, y, m)
			require.NoError(t, err)

			for i := 0; i < want.Rows(); i++ {
				for j := 0; j < want.Cols(); j++ {
					assert.InDelta(t, want.At(i, j), got.At(i, j), 1e-9)
				}
			}
		})
	}

	t.Run("MinkowskiP3", func(t *testing.T) {
		want, err := naive.PairwiseMinkowski(context.Background(), x, y, 3)
		require.NoError(t, err)
		got, err := fused.PairwiseMinkowski(context.Background(), x, y, 3)
		require.NoError(t, err)

		for i := 0; i < want.Rows(); i++ {
			for j := 0; j < want.Cols(); j++ {
				assert.InDelta(t, want.At(i, j), got.At(i, j), 1e-9)
			}
		}
	})
}

func TestPairwiseMinkowskiSpecialization(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	x := randomMatrix(rng, 9, 4)
	y := randomMatrix(rng, 5, 4)

	eng := neargo.New()

	manhattan, err := eng.Pairwise(context.Background(), x, y, distance.MetricManhattan)
	require.NoError(t, err)
	p1, err := eng.PairwiseMinkowski(context.Background(), x, y, 1)
	require.NoError(t, err)

	euclidean, err := eng.Pairwise(context.Background(), x, y, distance.MetricEuclidean)
	require.NoError(t, err)
	p2, err := eng.PairwiseMinkowski(context.Background(), x, y, 2)
	require.NoError(t, err)

	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < y.Rows(); j++ {
			assert.InDelta(t, manhattan.At(i, j), p1.At(i, j), 1e-9)
			assert.InDelta(t, euclidean.At(i, j), p2.At(i, j), 1e-9)
		}
	}
}

func TestPairwiseWorkerCountInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	x := randomMatrix(rng, 31, 8)

	want, err := neargo.New().Pairwise(context.Background(), x, nil, distance.MetricEuclidean)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 0} {
		eng := neargo.New(neargo.WithNumWorkers(workers))
		got, err := eng.Pairwise(context.Background(), x, nil, distance.MetricEuclidean)
		require.NoError(t, err)

		for i := 0; i < want.Rows(); i++ {
			for j := 0; j < want.Cols(); j++ {
				assert.Equal(t, want.At(i, j), got.At(i, j), "workers=%d", workers)
			}
		}
	}
}

func TestPairwiseEdgeCases(t *testing.T) {
	eng := neargo.New()

	t.Run("EmptyX", func(t *testing.T) {
		empty := neargo.NewMatrix(0, 4)
		y := scenarioMatrix(t)

		d, err := eng.Pairwise(context.Background(), empty, y, distance.MetricEuclidean)
		require.NoError(t, err)
		assert.Equal(t, 0, d.Rows())
		assert.Equal(t, 3, d.Cols())
	})

	t.Run("EmptyY", func(t *testing.T) {
		x := scenarioMatrix(t)
		empty := neargo.NewMatrix(0, 4)

		d, err := eng.Pairwise(context.Background(), x, empty, distance.MetricEuclidean)
		require.NoError(t, err)
		assert.Equal(t, 3, d.Rows())
		assert.Equal(t, 0, d.Cols())
	})

	t.Run("ZeroFeatures", func(t *testing.T) {
		x := neargo.NewMatrix(3, 0)

		d, err := eng.Pairwise(context.Background(), x, nil, distance.MetricManhattan)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				assert.Equal(t, 0.0, d.At(i, j))
			}
		}
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		x := neargo.NewMatrix(2, 3)
		y := neargo.NewMatrix(2, 4)

		_, err := eng.Pairwise(context.Background(), x, y, distance.MetricEuclidean)
		var dm *distance.ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 3, dm.Expected)
		assert.Equal(t, 4, dm.Actual)
	})

	t.Run("InvalidPower", func(t *testing.T) {
		x := neargo.NewMatrix(2, 3)

		_, err := eng.PairwiseMinkowski(context.Background(), x, nil, 0)
		var ip *distance.ErrInvalidPower
		assert.ErrorAs(t, err, &ip)
	})

	t.Run("NonFinitePassThrough", func(t *testing.T) {
		x, err := neargo.FromRows([][]float64{{math.NaN(), 1}, {0, 0}})
		require.NoError(t, err)

		d, err := eng.Pairwise(context.Background(), x, nil, distance.MetricEuclidean)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(d.At(0, 1)))
		assert.False(t, math.IsNaN(d.At(1, 1)))
	})

	t.Run("CancelledContext", func(t *testing.T) {
		x := scenarioMatrix(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := eng.Pairwise(ctx, x, nil, distance.MetricEuclidean)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPairwiseMetricsAndLogging(t *testing.T) {
	collector := &neargo.BasicMetricsCollector{}
	eng := neargo.New(neargo.WithMetricsCollector(collector))

	x := scenarioMatrix(t)
	_, err := eng.Pairwise(context.Background(), x, nil, distance.MetricEuclidean)
	require.NoError(t, err)

	assert.Equal(t, int64(1), collector.PairwiseCount.Load())
	assert.Equal(t, int64(9), collector.PairwisePairs.Load())
	assert.Equal(t, int64(0), collector.PairwiseErrors.Load())

	y := neargo.NewMatrix(2, 5)
	_, err = eng.Pairwise(context.Background(), x, y, distance.MetricEuclidean)
	require.Error(t, err)
	assert.Equal(t, int64(1), collector.PairwiseErrors.Load())
}

func BenchmarkPairwise(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	x := neargo.NewMatrix(200, 16)
	for i := 0; i < x.Rows(); i++ {
		row := x.Row(i)
		for j := range row {
			row[j] = rng.Float64()
		}
	}

	b.Run("Naive", func(b *testing.B) {
		eng := neargo.New(neargo.WithStrategy(neargo.StrategyNaive))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = eng.Pairwise(context.Background(), x, nil, distance.MetricEuclidean)
		}
	})

	b.Run("Fused", func(b *testing.B) {
		eng := neargo.New()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = eng.Pairwise(context.Background(), x, nil, distance.MetricEuclidean)
		}
	})

	b.Run("FusedParallel", func(b *testing.B) {
		eng := neargo.New(neargo.WithNumWorkers(0))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = eng.Pairwise(context.Background(), x, nil, distance.MetricEuclidean)
		}
	})
}
