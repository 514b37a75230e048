package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEventDay covers valid, truncated and malformed timestamps.
func TestEventDay(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		wantDay   string
		wantOK    bool
	}{
		{
			name:      "full RFC3339",
			timestamp: "2025-06-16T08:30:00Z",
			wantDay:   "2025-06-16",
			wantOK:    true,
		},
		{
			name:      "date only",
			timestamp: "2025-06-16",
			wantDay:   "2025-06-16",
			wantOK:    true,
		},
		{
			name:      "too short",
			timestamp: "2025-06",
			wantOK:    false,
		},
		{
			name:      "garbage prefix",
			timestamp: "not-a-date-at-all",
			wantOK:    false,
		},
		{
			name:      "empty",
			timestamp: "",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{Timestamp: tt.timestamp}
			day, ok := e.Day()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantDay, day)
			}
		})
	}
}

func TestUrgencyRank(t *testing.T) {
	assert.Less(t, CriticalUrgency.Rank(), HighUrgency.Rank())
	assert.Less(t, HighUrgency.Rank(), MediumUrgency.Rank())
	assert.Less(t, MediumUrgency.Rank(), LowUrgency.Rank())
	assert.Greater(t, Urgency("bogus").Rank(), LowUrgency.Rank())
}

func TestClampHelpers(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 1.0, Clamp01(3.2))
	assert.Equal(t, 0.7, Clamp01(0.7))

	assert.Equal(t, 0.0, ClampScore(-10))
	assert.Equal(t, 100.0, ClampScore(480))
	assert.Equal(t, 55.5, ClampScore(55.5))

	assert.Equal(t, 10.0, ClampCapacity(12))
	assert.Equal(t, 0.0, ClampCapacity(-1))
}

func TestDailySeriesAccessors(t *testing.T) {
	s := &DailySeries{
		Dates: []string{"2025-01-01", "2025-01-02"},
		Days: map[string]*DayCount{
			"2025-01-01": {Workouts: 1, Feelings: map[string]int{"energized": 1}},
			"2025-01-02": {TasksCompleted: 3},
		},
	}

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{1, 0}, s.Values(func(d *DayCount) float64 { return float64(d.Workouts) }))
	assert.Equal(t, []int{1, 0}, s.Indicator(func(d *DayCount) bool { return d.HasFeeling("energized") }))
	assert.Equal(t, []int{0, 1}, s.Indicator(func(d *DayCount) bool { return d.TasksCompleted > 0 }))
}
