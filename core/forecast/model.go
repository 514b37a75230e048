package forecast

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Model projects a historical series forward a fixed number of steps.
// Models are tried in priority order; a model signals "cannot handle this
// series" by returning an error, and the next model in the chain is tried.
type Model interface {
	Name() string
	Forecast(values []float64, steps int) ([]float64, error)
}

// Minimum history for the ARIMA model to produce a meaningful fit.
const arimaMinPoints = 10

// arimaModel is an ARIMA(1,1,1) fit: difference once, estimate the AR and
// MA coefficients from lag-1 autocorrelations, forecast the differences
// recursively, then integrate back to levels. It refuses short or
// degenerate series so the chain can fall through.
type arimaModel struct{}

var _ Model = arimaModel{} // Compile-time check

func (arimaModel) Name() string { return "arima" }

func (arimaModel) Forecast(values []float64, steps int) ([]float64, error) {
	if len(values) < arimaMinPoints {
		return nil, errors.New("arima: series too short")
	}

	diffs := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs[i-1] = values[i] - values[i-1]
	}

	phi := lagOneAutocorr(diffs)
	if math.IsNaN(phi) {
		return nil, errors.New("arima: degenerate differenced series")
	}
	phi = clampCoeff(phi)

	residuals := make([]float64, len(diffs))
	residuals[0] = diffs[0]
	for i := 1; i < len(diffs); i++ {
		residuals[i] = diffs[i] - phi*diffs[i-1]
	}
	theta := lagOneAutocorr(residuals)
	if math.IsNaN(theta) {
		theta = 0
	}
	theta = clampCoeff(theta)

	out := make([]float64, 0, steps)
	level := values[len(values)-1]
	lastDiff := diffs[len(diffs)-1]
	lastResidual := residuals[len(residuals)-1]

	// The MA term only contributes to the first step; after that the
	// forecast difference decays through the AR coefficient alone.
	diff := phi*lastDiff + theta*lastResidual
	for range steps {
		level += diff
		out = append(out, level)
		diff *= phi
	}
	return out, nil
}

// expSmoothingModel is single exponential smoothing: the level is seeded
// with the first observation, updated once per historical point, and
// replicated flat across the horizon. It never fails, so it terminates the
// chain.
type expSmoothingModel struct {
	alpha float64
}

var _ Model = expSmoothingModel{} // Compile-time check

func (expSmoothingModel) Name() string { return "exponential_smoothing" }

func (m expSmoothingModel) Forecast(values []float64, steps int) ([]float64, error) {
	var level float64
	if len(values) > 0 {
		level = values[0]
		for _, v := range values[1:] {
			level = m.alpha*v + (1-m.alpha)*level
		}
	}

	out := make([]float64, steps)
	for i := range out {
		out[i] = level
	}
	return out, nil
}

// lagOneAutocorr is the Pearson correlation of a series against itself
// shifted by one. NaN when either slice has zero variance.
func lagOneAutocorr(values []float64) float64 {
	if len(values) < 3 {
		return math.NaN()
	}
	return stat.Correlation(values[:len(values)-1], values[1:], nil)
}

// clampCoeff keeps an estimated coefficient inside the stationary region.
func clampCoeff(c float64) float64 {
	return math.Max(-0.99, math.Min(0.99, c))
}

// movingAverage returns the trailing window-k average of the series; the
// result has len(values)-k+1 points. Empty when the series is shorter than
// the window.
func movingAverage(values []float64, window int) []float64 {
	if len(values) < window {
		return nil
	}
	out := make([]float64, 0, len(values)-window+1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}
