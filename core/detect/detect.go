// Package detect runs a battery of statistical detectors over daily event
// series and persists each positive finding as a pattern.
package detect

import (
	"context"
	"fmt"
	"math"

	"github.com/huangsam/pulse/core/agg"
	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
)

// Moving-average window for the shift detector.
const maWindow = 3

// Detector holds the tunable thresholds for the battery. The zero value is
// not usable; construct with NewDetector.
type Detector struct {
	store contract.EventStore

	MinSamples           int
	CorrelationThreshold float64
	AnomalyZThreshold    float64
	ChiSquareThreshold   float64
	MADeltaThreshold     float64
	SlopeThreshold       float64
}

// NewDetector returns a detector with default thresholds against the store.
func NewDetector(store contract.EventStore) *Detector {
	return &Detector{
		store:                store,
		MinSamples:           contract.DefaultMinSamples,
		CorrelationThreshold: contract.DefaultCorrelationThreshold,
		AnomalyZThreshold:    contract.DefaultAnomalyZThreshold,
		ChiSquareThreshold:   contract.DefaultChiSquareThreshold,
		MADeltaThreshold:     0.5,
		SlopeThreshold:       0.01,
	}
}

// DetectPatterns fetches the user's events, runs every detector, persists
// each positive finding, and returns the findings. Fewer days than
// MinSamples is not an error; it returns an empty list. A persistence
// failure for one pattern is logged and does not abort the others.
func (d *Detector) DetectPatterns(ctx context.Context, userID int64, sampleLimit int) ([]schema.Pattern, error) {
	if sampleLimit <= 0 {
		sampleLimit = contract.DefaultSampleLimit
	}

	events, err := d.store.GetEvents(ctx, userID, contract.EventFilter{Limit: sampleLimit})
	if err != nil {
		return nil, fmt.Errorf("fetch events for user %d: %w", userID, err)
	}

	series := agg.BuildDailySeries(events)
	if series.Len() < d.MinSamples {
		return []schema.Pattern{}, nil
	}

	patterns := d.runBattery(userID, series)
	for i := range patterns {
		d.persist(ctx, &patterns[i])
	}
	return patterns, nil
}

// runBattery evaluates every detector over the series. Detectors are
// independent; the order here only affects result ordering.
func (d *Detector) runBattery(userID int64, series *schema.DailySeries) []schema.Pattern {
	workouts := series.Values(func(dc *schema.DayCount) float64 { return float64(dc.Workouts) })
	tasksDone := series.Values(func(dc *schema.DayCount) float64 { return float64(dc.TasksCompleted) })

	var patterns []schema.Pattern
	add := func(p *schema.Pattern) {
		if p != nil {
			p.UserID = userID
			p.Confidence = schema.Clamp01(p.Confidence)
			p.IsActive = true
			patterns = append(patterns, *p)
		}
	}

	add(d.detectCorrelation(workouts, tasksDone))
	add(d.detectAssociation(series))
	add(d.detectTrend(workouts))
	add(d.detectMovingAverageShift(workouts))
	add(d.detectAnomaly("workouts", workouts))
	add(d.detectAnomaly("tasks completed", tasksDone))
	return patterns
}

// detectCorrelation emits a correlation pattern when the workout series and
// the completed-task series move together. Zero variance in either series
// defines r as 0, which never trips the threshold.
func (d *Detector) detectCorrelation(x, y []float64) *schema.Pattern {
	r := correlation(x, y)
	if math.Abs(r) < d.CorrelationThreshold {
		return nil
	}

	direction := "more"
	if r < 0 {
		direction = "fewer"
	}
	return &schema.Pattern{
		Type:        schema.CorrelationPattern,
		Description: fmt.Sprintf("Workout frequency correlates with %s tasks completed (r=%.2f)", direction, r),
		Confidence:  math.Abs(r),
		SampleSize:  len(x),
		Data: map[string]any{
			"coefficient": r,
			"series":      map[string]any{"workouts": x, "tasks": y},
		},
	}
}

// detectAssociation runs a 2x2 chi-square over two binary indicators:
// "had a workout that day" vs "reported feeling energized that day".
// The 3.84 threshold is a heuristic, not a rigorous test; no correction is
// applied for small expected cell counts.
func (d *Detector) detectAssociation(series *schema.DailySeries) *schema.Pattern {
	workoutDays := series.Indicator(func(dc *schema.DayCount) bool { return dc.Workouts > 0 })
	energizedDays := series.Indicator(func(dc *schema.DayCount) bool { return dc.HasFeeling("energized") })

	positives := 0
	for _, v := range workoutDays {
		positives += v
	}

	chi2 := chiSquareBinary(workoutDays, energizedDays)
	if chi2 < d.ChiSquareThreshold || positives < 2 {
		return nil
	}

	return &schema.Pattern{
		Type:        schema.AssociationPattern,
		Description: fmt.Sprintf("Association detected between workout days and feeling 'energized' (chi2=%.2f)", chi2),
		Confidence:  chi2 / (d.ChiSquareThreshold * 4),
		SampleSize:  len(workoutDays),
		Data:        map[string]any{"chi2": chi2},
	}
}

// detectTrend emits a trend pattern when the least-squares slope of the
// workout series against its day index is meaningfully nonzero.
func (d *Detector) detectTrend(values []float64) *schema.Pattern {
	slope := leastSquaresSlope(values)
	if math.Abs(slope) <= d.SlopeThreshold {
		return nil
	}

	direction := "increasing"
	if slope < 0 {
		direction = "decreasing"
	}
	return &schema.Pattern{
		Type:        schema.TrendPattern,
		Description: fmt.Sprintf("Workout frequency is %s (slope=%.3f per day)", direction, slope),
		Confidence:  math.Abs(slope) * 10,
		SampleSize:  len(values),
		Data:        map[string]any{"slope": slope},
	}
}

// detectMovingAverageShift compares the last two points of a window-3 moving
// average. It needs at least two full windows of data.
func (d *Detector) detectMovingAverageShift(values []float64) *schema.Pattern {
	if len(values) < maWindow*2 {
		return nil
	}
	ma := movingAverage(values, maWindow)
	if len(ma) < 2 {
		return nil
	}

	delta := ma[len(ma)-1] - ma[len(ma)-2]
	if math.Abs(delta) < d.MADeltaThreshold {
		return nil
	}

	return &schema.Pattern{
		Type:        schema.TrendMAPattern,
		Description: fmt.Sprintf("Workout moving average changed by %.2f (window=%d)", delta, maWindow),
		Confidence:  math.Abs(delta) / 3,
		SampleSize:  len(values),
		Data:        map[string]any{"moving_average_delta": delta, "window": maWindow},
	}
}

// detectAnomaly flags the most recent value when it deviates from the
// series' population mean by more than the z threshold.
func (d *Detector) detectAnomaly(label string, values []float64) *schema.Pattern {
	zs := populationZScores(values)
	if len(zs) == 0 {
		return nil
	}

	lastZ := zs[len(zs)-1]
	if math.Abs(lastZ) < d.AnomalyZThreshold {
		return nil
	}

	return &schema.Pattern{
		Type:        schema.AnomalyPattern,
		Description: fmt.Sprintf("Anomaly in %s: last day z=%.2f", label, lastZ),
		Confidence:  math.Abs(lastZ) / 3,
		SampleSize:  len(values),
		Data:        map[string]any{"z_score": lastZ, "series": label},
	}
}

// persist stores one finding, logging and continuing on failure so one bad
// write never hides the remaining findings.
func (d *Detector) persist(ctx context.Context, p *schema.Pattern) {
	id, err := d.store.CreatePattern(ctx, p)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Failed to persist %s pattern for user %d", p.Type, p.UserID), err)
		return
	}
	p.ID = id
}
