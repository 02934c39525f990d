package neargo_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neargo/neargo"
	"github.com/neargo/neargo/distance"
)

func TestCondensedScenario(t *testing.T) {
	x := scenarioMatrix(t)

	eng := neargo.New()
	c, err := eng.Condensed(context.Background(), x, distance.MetricEuclidean)
	require.NoError(t, err)

	require.Equal(t, 3, c.Rows())
	require.Equal(t, 3, c.Len())

	assert.InDelta(t, 6.557439, c.At(0, 1), 1e-6)
	assert.InDelta(t, 8.602325, c.At(0, 2), 1e-6)
	assert.InDelta(t, 7.937254, c.At(1, 2), 1e-6)

	// Mirroring and zero diagonal.
	assert.Equal(t, c.At(0, 1), c.At(1, 0))
	assert.Equal(t, 0.0, c.At(2, 2))
}

func TestCondensedMatchesPairwise(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	x := randomMatrix(rng, 19, 5)

	eng := neargo.New()

	for _, m := range []distance.Metric{
		distance.MetricEuclidean,
		distance.MetricManhattan,
		distance.MetricSquaredEuclidean,
	} {
		t.Run(m.String(), func(t *testing.T) {
			full, err := eng.Pairwise(context.Background(), x, nil, m)
			require.NoError(t, err)
			c, err := eng.Condensed(context.Background(), x, m)
			require.NoError(t, err)

			dense := c.Squareform()
			require.Equal(t, full.Rows(), dense.Rows())
			require.Equal(t, full.Cols(), dense.Cols())
			for i := 0; i < full.Rows(); i++ {
				for j := 0; j < full.Cols(); j++ {
					assert.InDelta(t, full.At(i, j), dense.At(i, j), 1e-9)
				}
			}
		})
	}

	t.Run("MinkowskiP4", func(t *testing.T) {
		full, err := eng.PairwiseMinkowski(context.Background(), x, nil, 4)
		require.NoError(t, err)
		c, err := eng.CondensedMinkowski(context.Background(), x, 4)
		require.NoError(t, err)

		for i := 0; i < full.Rows(); i++ {
			for j := 0; j < full.Cols(); j++ {
				assert.InDelta(t, full.At(i, j), c.At(i, j), 1e-9)
			}
		}
	})
}

func TestCondensedPairsCanonicalOrder(t *testing.T) {
	x := scenarioMatrix(t)

	eng := neargo.New()
	c, err := eng.Condensed(context.Background(), x, distance.MetricManhattan)
	require.NoError(t, err)

	var pairs []neargo.Pair
	var values []float64
	for p, d := range c.Pairs() {
		pairs = append(pairs, p)
		values = append(values, d)
	}

	assert.Equal(t, []neargo.Pair{{I: 0, J: 1}, {I: 0, J: 2}, {I: 1, J: 2}}, pairs)
	assert.InDelta(t, 11, values[0], 1e-12)
	assert.InDelta(t, 12, values[1], 1e-12)
	assert.InDelta(t, 13, values[2], 1e-12)
}

func TestCondensedWorkerCountInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	x := randomMatrix(rng, 25, 7)

	want, err := neargo.New().Condensed(context.Background(), x, distance.MetricEuclidean)
	require.NoError(t, err)

	eng := neargo.New(neargo.WithNumWorkers(4))
	got, err := eng.Condensed(context.Background(), x, distance.MetricEuclidean)
	require.NoError(t, err)

	for i := 0; i < x.Rows(); i++ {
		for j := 0; j < x.Rows(); j++ {
			assert.Equal(t, want.At(i, j), got.At(i, j))
		}
	}
}

func TestCondensedSmall(t *testing.T) {
	eng := neargo.New()

	t.Run("Empty", func(t *testing.T) {
		c, err := eng.Condensed(context.Background(), neargo.NewMatrix(0, 3), distance.MetricEuclidean)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())

		dense := c.Squareform()
		assert.Equal(t, 0, dense.Rows())
	})

	t.Run("SingleRow", func(t *testing.T) {
		c, err := eng.Condensed(context.Background(), neargo.NewMatrix(1, 3), distance.MetricEuclidean)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Rows())
		assert.Equal(t, 0, c.Len())
		assert.Equal(t, 0.0, c.At(0, 0))
	})

	t.Run("InvalidPower", func(t *testing.T) {
		_, err := eng.CondensedMinkowski(context.Background(), neargo.NewMatrix(3, 2), -1)
		var ip *distance.ErrInvalidPower
		assert.ErrorAs(t, err, &ip)
	})
}
