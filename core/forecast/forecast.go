// Package forecast projects a daily energy scalar forward and scores
// burnout risk from recent trend and activity streaks.
package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/huangsam/pulse/core/agg"
	"github.com/huangsam/pulse/core/detect"
	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
)

// Baseline window for the diagnostic moving average.
const baselineWindow = 3

// Energy-average threshold for a day to count toward an activity streak.
const activeDayThreshold = 0.5

// Burnout formula weights.
const (
	streakWeight    = 8.0
	declineWeight   = 12.0
	sleepDebtWeight = 15.0
)

// Forecaster produces short-horizon capacity projections. Construct with
// NewForecaster; the zero value has no models.
type Forecaster struct {
	store    contract.EventStore
	detector *detect.Detector
	models   []Model

	LookbackDays int
	SampleLimit  int

	// SleepDebt is carried through to the burnout formula. Nothing
	// tracks sleep yet, so it stays 0 until an upstream source exists.
	SleepDebt float64
}

// NewForecaster returns a forecaster with the default model chain
// (ARIMA first, exponential smoothing as the guaranteed fallback) and a
// nested detector against the same store.
func NewForecaster(store contract.EventStore) *Forecaster {
	return &Forecaster{
		store:    store,
		detector: detect.NewDetector(store),
		models: []Model{
			arimaModel{},
			expSmoothingModel{alpha: contract.DefaultSmoothingAlpha},
		},
		LookbackDays: contract.DefaultLookbackDays,
		SampleLimit:  contract.DefaultSampleLimit,
	}
}

// SetSmoothingAlpha rebuilds the fallback model with the given smoothing
// factor. Values outside (0,1] are ignored.
func (f *Forecaster) SetSmoothingAlpha(alpha float64) {
	if alpha <= 0 || alpha > 1 {
		return
	}
	f.models = []Model{
		arimaModel{},
		expSmoothingModel{alpha: alpha},
	}
}

// GenerateForecast projects the user's energy series horizonDays forward.
// A negative horizon is a caller bug and returns an error; everything else
// degrades: no events yields a well-formed empty result, and a failing
// model falls through the chain. horizonDays 0 means the default horizon.
func (f *Forecaster) GenerateForecast(ctx context.Context, userID int64, horizonDays int) (*schema.ForecastResult, error) {
	if horizonDays < 0 {
		return nil, fmt.Errorf("horizon days must be non-negative, got %d", horizonDays)
	}
	if horizonDays == 0 {
		horizonDays = contract.DefaultHorizonDays
	}

	events, err := f.store.GetEvents(ctx, userID, contract.EventFilter{
		Limit:     f.SampleLimit,
		SinceDays: f.LookbackDays,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch events for user %d: %w", userID, err)
	}
	if len(events) == 0 {
		return schema.EmptyForecast(), nil
	}

	dates, values := agg.BuildEnergySeries(events)
	if len(values) == 0 {
		return schema.EmptyForecast(), nil
	}

	projection, method := f.project(values, horizonDays)
	score := burnoutScore(values, f.SleepDebt)

	days := make([]schema.ForecastDay, 0, horizonDays)
	lastDay, _ := time.Parse(time.DateOnly, dates[len(dates)-1])
	for i, v := range projection {
		days = append(days, schema.ForecastDay{
			Date:        lastDay.AddDate(0, 0, i+1).Format(time.DateOnly),
			Capacity:    schema.ClampCapacity(v*5 + 5),
			Energy:      math.Round(v*100) / 100,
			BurnoutRisk: score,
		})
	}

	return &schema.ForecastResult{
		Days:             days,
		Baseline:         movingAverage(values, baselineWindow),
		Method:           method,
		Confidence:       math.Min(1, float64(len(values))/float64(f.LookbackDays)),
		BasedOnEvents:    len(events),
		BurnoutScore:     score,
		DetectedPatterns: f.nestedPatterns(ctx, userID),
	}, nil
}

// project runs the model chain in order and returns the first projection
// that succeeds along with the winning model's name. The chain ends with a
// model that cannot fail, so this never returns empty.
func (f *Forecaster) project(values []float64, steps int) ([]float64, string) {
	for _, m := range f.models {
		projection, err := m.Forecast(values, steps)
		if err == nil {
			return projection, m.Name()
		}
	}
	return make([]float64, steps), "none"
}

// nestedPatterns runs pattern detection for forecast narration. Detection
// failure degrades to an empty list; it never blocks the forecast.
func (f *Forecaster) nestedPatterns(ctx context.Context, userID int64) []schema.Pattern {
	patterns, err := f.detector.DetectPatterns(ctx, userID, f.SampleLimit)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Pattern detection during forecast for user %d", userID), err)
		return []schema.Pattern{}
	}
	return patterns
}

// burnoutScore combines the trailing activity streak, the recent energy
// decline, and accumulated sleep debt into a 0-100 score.
func burnoutScore(values []float64, sleepDebt float64) float64 {
	streak := 0
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] <= activeDayThreshold {
			break
		}
		streak++
	}

	recent := values
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}
	var sum float64
	for _, v := range recent {
		sum += v
	}
	baselineAvg := sum / float64(len(recent))
	decline := math.Max(0, baselineAvg-values[len(values)-1])

	raw := streakWeight*float64(streak) + declineWeight*decline + sleepDebtWeight*sleepDebt
	return schema.ClampScore(raw)
}
