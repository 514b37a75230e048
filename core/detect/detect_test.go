package detect

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// correlatedWeek builds eight days where workouts and completed tasks move
// together, enough to trip the correlation detector.
func correlatedWeek() []schema.Event {
	var events []schema.Event
	for i := range 8 {
		day := fmt.Sprintf("2025-06-%02dT08:00:00Z", 10+i)
		if i%2 == 0 {
			events = append(events, schema.Event{
				UserID: 1, Category: schema.PhysicalCategory,
				EventType: schema.WorkoutEvent, Timestamp: day,
			})
			events = append(events, schema.Event{
				UserID: 1, Category: schema.MentalCategory,
				EventType: schema.TaskEvent, Timestamp: day,
				Data: map[string]any{"completed": true},
			})
		} else {
			events = append(events, schema.Event{
				UserID: 1, Category: schema.MentalCategory,
				EventType: schema.TaskEvent, Timestamp: day,
				Data: map[string]any{"completed": false},
			})
		}
	}
	return events
}

func TestDetectPatternsInsufficientData(t *testing.T) {
	store := &contract.MockEventStore{}
	store.On("GetEvents", mock.Anything, int64(1), mock.Anything).Return([]schema.Event{
		{UserID: 1, EventType: schema.WorkoutEvent, Timestamp: "2025-06-16T08:00:00Z", Category: schema.PhysicalCategory},
	}, nil)

	d := NewDetector(store)
	patterns, err := d.DetectPatterns(context.Background(), 1, 0)

	assert.NoError(t, err)
	assert.Empty(t, patterns)
	store.AssertNotCalled(t, "CreatePattern", mock.Anything, mock.Anything)
}

func TestDetectPatternsStoreFetchError(t *testing.T) {
	store := &contract.MockEventStore{}
	store.On("GetEvents", mock.Anything, int64(1), mock.Anything).Return(nil, errors.New("connection refused"))

	d := NewDetector(store)
	_, err := d.DetectPatterns(context.Background(), 1, 0)
	assert.Error(t, err)
}

func TestDetectPatternsFindsCorrelation(t *testing.T) {
	store := &contract.MockEventStore{}
	store.On("GetEvents", mock.Anything, int64(1), mock.Anything).Return(correlatedWeek(), nil)
	store.On("CreatePattern", mock.Anything, mock.AnythingOfType("*schema.Pattern")).Return(int64(11), nil)

	d := NewDetector(store)
	patterns, err := d.DetectPatterns(context.Background(), 1, 100)

	assert.NoError(t, err)
	assert.NotEmpty(t, patterns)

	var found bool
	for _, p := range patterns {
		assert.GreaterOrEqual(t, p.Confidence, 0.0)
		assert.LessOrEqual(t, p.Confidence, 1.0)
		assert.Equal(t, int64(1), p.UserID)
		if p.Type == schema.CorrelationPattern {
			found = true
			assert.Contains(t, p.Description, "more")
			assert.Equal(t, int64(11), p.ID)
		}
	}
	assert.True(t, found, "expected a correlation pattern")
}

// TestDetectPatternsPersistFailureContinues verifies that one failed store
// write does not abort detection of the remaining patterns.
func TestDetectPatternsPersistFailureContinues(t *testing.T) {
	store := &contract.MockEventStore{}
	store.On("GetEvents", mock.Anything, int64(1), mock.Anything).Return(correlatedWeek(), nil)
	store.On("CreatePattern", mock.Anything, mock.Anything).Return(int64(0), errors.New("disk full"))

	d := NewDetector(store)
	patterns, err := d.DetectPatterns(context.Background(), 1, 100)

	assert.NoError(t, err)
	assert.NotEmpty(t, patterns)
	for _, p := range patterns {
		assert.Zero(t, p.ID) // nothing got an ID, but everything was returned
	}
}

func TestDetectAssociation(t *testing.T) {
	d := NewDetector(nil)

	// 10 days: workouts and "energized" line up exactly.
	series := &schema.DailySeries{Days: map[string]*schema.DayCount{}}
	for i := range 10 {
		date := fmt.Sprintf("2025-06-%02d", 10+i)
		series.Dates = append(series.Dates, date)
		dc := &schema.DayCount{Feelings: map[string]int{}}
		if i%2 == 0 {
			dc.Workouts = 1
			dc.Feelings["energized"] = 1
		}
		series.Days[date] = dc
	}

	p := d.detectAssociation(series)
	assert.NotNil(t, p)
	assert.Equal(t, schema.AssociationPattern, p.Type)
	assert.Greater(t, p.Data["chi2"].(float64), contract.DefaultChiSquareThreshold)
}

func TestDetectAssociationNeedsTwoPositiveDays(t *testing.T) {
	d := NewDetector(nil)

	series := &schema.DailySeries{Days: map[string]*schema.DayCount{}}
	for i := range 10 {
		date := fmt.Sprintf("2025-06-%02d", 10+i)
		series.Dates = append(series.Dates, date)
		dc := &schema.DayCount{Feelings: map[string]int{}}
		if i == 0 {
			dc.Workouts = 1
			dc.Feelings["energized"] = 1
		}
		series.Days[date] = dc
	}

	assert.Nil(t, d.detectAssociation(series))
}

func TestDetectTrendDirections(t *testing.T) {
	d := NewDetector(nil)

	up := d.detectTrend([]float64{0, 1, 1, 2, 2, 3})
	assert.NotNil(t, up)
	assert.Contains(t, up.Description, "increasing")

	down := d.detectTrend([]float64{3, 2, 2, 1, 1, 0})
	assert.NotNil(t, down)
	assert.Contains(t, down.Description, "decreasing")

	assert.Nil(t, d.detectTrend([]float64{1, 1, 1, 1, 1, 1}))
}

func TestDetectMovingAverageShift(t *testing.T) {
	d := NewDetector(nil)

	// Flat start then a jump: last two window-3 averages differ by >= 0.5.
	p := d.detectMovingAverageShift([]float64{0, 0, 0, 0, 2, 3})
	assert.NotNil(t, p)
	assert.Equal(t, schema.TrendMAPattern, p.Type)

	assert.Nil(t, d.detectMovingAverageShift([]float64{1, 1, 1, 1, 1}), "too few points")
	assert.Nil(t, d.detectMovingAverageShift([]float64{1, 1, 1, 1, 1, 1}), "no shift")
}

func TestDetectAnomaly(t *testing.T) {
	d := NewDetector(nil)

	p := d.detectAnomaly("workouts", []float64{1, 1, 1, 1, 1, 5})
	assert.NotNil(t, p)
	assert.Equal(t, schema.AnomalyPattern, p.Type)
	assert.Contains(t, p.Description, "workouts")

	assert.Nil(t, d.detectAnomaly("workouts", []float64{1, 1, 1, 1}))
	assert.Nil(t, d.detectAnomaly("workouts", nil))
}
