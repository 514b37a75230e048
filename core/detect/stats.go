package detect

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// correlation computes Pearson's r for two aligned series using the gonum
// backend, guarded so that degenerate inputs (length mismatch, too few
// points, zero variance) yield exactly 0 rather than NaN.
func correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	if stat.StdDev(x, nil) == 0 || stat.StdDev(y, nil) == 0 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// scalarCorrelation is the pure fallback for backends without vectorized
// correlation. It must match correlation within floating-point tolerance.
func scalarCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	n := float64(len(x))
	var meanX, meanY float64
	for i := range x {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= n
	meanY /= n

	var num, denX, denY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		num += dx * dy
		denX += dx * dx
		denY += dy * dy
	}

	den := math.Sqrt(denX) * math.Sqrt(denY)
	if den == 0 {
		return 0
	}
	return num / den
}

// leastSquaresSlope fits values against their integer index and returns the
// per-step slope. Fewer than two points or zero index variance yield 0.
func leastSquaresSlope(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, values, nil, false)
	if math.IsNaN(slope) {
		return 0
	}
	return slope
}

// populationZScores returns the z-score of every value relative to the
// population mean and standard deviation of the whole series. A series with
// zero spread yields all-zero scores.
func populationZScores(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	mean := stat.Mean(values, nil)
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	stdev := math.Sqrt(variance / float64(len(values)))

	out := make([]float64, len(values))
	if stdev == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - mean) / stdev
	}
	return out
}

// movingAverage computes the trailing window mean of the series. The result
// has len(values)-window+1 entries; shorter inputs yield nil.
func movingAverage(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
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

// chiSquareBinary computes the 2x2 chi-square statistic for two aligned
// binary indicator series, without Yates' correction. Cells with zero
// expectation contribute nothing.
func chiSquareBinary(x, y []int) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	var a, b, c, d float64
	for i := range x {
		switch {
		case x[i] != 0 && y[i] != 0:
			a++
		case x[i] != 0:
			b++
		case y[i] != 0:
			c++
		default:
			d++
		}
	}

	total := a + b + c + d
	if total == 0 {
		return 0
	}

	obs := [4]float64{a, b, c, d}
	exp := [4]float64{
		(a + b) * (a + c) / total,
		(a + b) * (b + d) / total,
		(c + d) * (a + c) / total,
		(c + d) * (b + d) / total,
	}

	var chi2 float64
	for i := range obs {
		if exp[i] > 0 {
			diff := obs[i] - exp[i]
			chi2 += diff * diff / exp[i]
		}
	}
	return chi2
}
