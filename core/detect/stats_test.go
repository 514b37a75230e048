package detect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelation(t *testing.T) {
	tests := []struct {
		name     string
		x, y     []float64
		expected float64
		delta    float64
	}{
		{
			name:     "perfect positive",
			x:        []float64{1, 2, 3, 4},
			y:        []float64{2, 4, 6, 8},
			expected: 1.0,
			delta:    1e-9,
		},
		{
			name:     "perfect negative",
			x:        []float64{1, 2, 3, 4},
			y:        []float64{8, 6, 4, 2},
			expected: -1.0,
			delta:    1e-9,
		},
		{
			name:     "zero variance in x",
			x:        []float64{3, 3, 3, 3},
			y:        []float64{1, 2, 3, 4},
			expected: 0.0,
			delta:    0,
		},
		{
			name:     "zero variance in y",
			x:        []float64{1, 2, 3, 4},
			y:        []float64{5, 5, 5, 5},
			expected: 0.0,
			delta:    0,
		},
		{
			name:     "length mismatch",
			x:        []float64{1, 2},
			y:        []float64{1, 2, 3},
			expected: 0.0,
			delta:    0,
		},
		{
			name:     "single point",
			x:        []float64{1},
			y:        []float64{1},
			expected: 0.0,
			delta:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := correlation(tt.x, tt.y)
			assert.False(t, math.IsNaN(r))
			assert.InDelta(t, tt.expected, r, tt.delta)
		})
	}
}

// TestScalarCorrelationMatchesBackend locks the pure fallback to the
// vectorized backend within floating-point tolerance.
func TestScalarCorrelationMatchesBackend(t *testing.T) {
	cases := [][2][]float64{
		{{1, 2, 3, 4, 5}, {2, 1, 4, 3, 6}},
		{{0, 1, 0, 1, 0, 1}, {1, 0, 1, 0, 1, 0}},
		{{1.5, 2.5, 0.5, 3.5}, {2.0, 2.2, 1.8, 3.0}},
		{{7, 7, 7}, {1, 2, 3}}, // degenerate: both must return 0
	}

	for _, c := range cases {
		assert.InDelta(t, correlation(c[0], c[1]), scalarCorrelation(c[0], c[1]), 1e-9)
	}
}

func TestLeastSquaresSlope(t *testing.T) {
	assert.InDelta(t, 1.0, leastSquaresSlope([]float64{0, 1, 2, 3}), 1e-9)
	assert.InDelta(t, -0.5, leastSquaresSlope([]float64{3, 2.5, 2, 1.5}), 1e-9)
	assert.Equal(t, 0.0, leastSquaresSlope([]float64{5}))
	assert.InDelta(t, 0.0, leastSquaresSlope([]float64{2, 2, 2, 2}), 1e-9)
}

func TestPopulationZScores(t *testing.T) {
	zs := populationZScores([]float64{1, 1, 1, 1})
	assert.Equal(t, []float64{0, 0, 0, 0}, zs)

	zs = populationZScores([]float64{0, 0, 0, 3})
	// mean=0.75, population stdev=1.299; last z ~ 1.732
	assert.InDelta(t, 1.732, zs[len(zs)-1], 0.001)

	assert.Nil(t, populationZScores(nil))
}

func TestMovingAverage(t *testing.T) {
	ma := movingAverage([]float64{1, 2, 3, 4, 5}, 3)
	assert.Equal(t, []float64{2, 3, 4}, ma)

	assert.Nil(t, movingAverage([]float64{1, 2}, 3))
	assert.Nil(t, movingAverage([]float64{1, 2, 3}, 0))
}

func TestChiSquareBinary(t *testing.T) {
	t.Run("perfect dependence", func(t *testing.T) {
		x := []int{1, 1, 1, 1, 0, 0, 0, 0}
		y := []int{1, 1, 1, 1, 0, 0, 0, 0}
		// For a perfectly dependent 2x2 table, chi2 equals n.
		assert.InDelta(t, 8.0, chiSquareBinary(x, y), 1e-9)
	})

	t.Run("independence", func(t *testing.T) {
		x := []int{1, 1, 0, 0}
		y := []int{1, 0, 1, 0}
		assert.InDelta(t, 0.0, chiSquareBinary(x, y), 1e-9)
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		assert.Equal(t, 0.0, chiSquareBinary(nil, nil))
		assert.Equal(t, 0.0, chiSquareBinary([]int{1}, []int{1, 0}))
	})
}
