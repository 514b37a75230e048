package intervene

import (
	"fmt"
	"testing"

	"github.com/huangsam/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workoutRun builds one workout per day for n consecutive days in July 2025.
func workoutRun(n int) []schema.Event {
	var events []schema.Event
	for i := range n {
		events = append(events, schema.Event{
			UserID:    1,
			Category:  schema.PhysicalCategory,
			EventType: schema.WorkoutEvent,
			Timestamp: fmt.Sprintf("2025-07-%02dT07:00:00Z", 1+i),
		})
	}
	return events
}

func TestOvertrainingRequiresSevenDays(t *testing.T) {
	assert.Empty(t, checkOvertraining(&Input{Events: workoutRun(6)}))

	out := checkOvertraining(&Input{Events: workoutRun(8)})
	require.Len(t, out, 1)
	assert.Equal(t, schema.WarningIntervention, out[0].iv.Type)
	assert.Equal(t, schema.HighUrgency, out[0].iv.Urgency)
	assert.Equal(t, 8, out[0].data["consecutive_days"])
}

func TestOvertrainingGapBreaksStreak(t *testing.T) {
	events := workoutRun(4)
	// Resume after a two-day hole; only the recent run counts.
	for i := range 5 {
		events = append(events, schema.Event{
			EventType: schema.WorkoutEvent,
			Timestamp: fmt.Sprintf("2025-07-%02dT07:00:00Z", 7+i),
		})
	}
	assert.Empty(t, checkOvertraining(&Input{Events: events}))
}

func TestBurnoutRiskBands(t *testing.T) {
	assert.Empty(t, checkBurnoutRisk(&Input{}), "no forecast, no rule")
	assert.Empty(t, checkBurnoutRisk(&Input{Forecast: &schema.ForecastResult{BurnoutScore: 60}}))

	high := checkBurnoutRisk(&Input{Forecast: &schema.ForecastResult{BurnoutScore: 72}})
	require.Len(t, high, 1)
	assert.Equal(t, schema.HighUrgency, high[0].iv.Urgency)

	critical := checkBurnoutRisk(&Input{Forecast: &schema.ForecastResult{BurnoutScore: 85}})
	require.Len(t, critical, 1)
	assert.Equal(t, schema.CriticalUrgency, critical[0].iv.Urgency)
}

func TestOptimalTiming(t *testing.T) {
	// Two flat days then an energized one.
	events := []schema.Event{
		{EventType: schema.MoodEvent, Feeling: "tired", Timestamp: "2025-07-01T09:00:00Z"},
		{EventType: schema.MoodEvent, Feeling: "tired", Timestamp: "2025-07-02T09:00:00Z"},
		{EventType: schema.MoodEvent, Feeling: "energized", Timestamp: "2025-07-03T09:00:00Z"},
	}
	out := checkOptimalTiming(&Input{Events: events})
	require.Len(t, out, 1)
	assert.Equal(t, schema.MediumUrgency, out[0].iv.Urgency)

	// Two felt events is below the minimum.
	assert.Empty(t, checkOptimalTiming(&Input{Events: events[1:]}))
}

func TestMeditationGap(t *testing.T) {
	events := []schema.Event{
		{EventType: schema.MeditationEvent, Timestamp: "2025-07-01T08:00:00Z"},
		{EventType: schema.WorkoutEvent, Timestamp: "2025-07-05T08:00:00Z"},
	}
	out := checkMeditationGap(&Input{Events: events})
	require.Len(t, out, 1)
	assert.Equal(t, 4, out[0].data["days_since"])

	// Without any meditation history the rule stays quiet.
	assert.Empty(t, checkMeditationGap(&Input{Events: events[1:]}))

	// A recent meditation stays quiet too.
	recent := []schema.Event{
		{EventType: schema.MeditationEvent, Timestamp: "2025-07-04T08:00:00Z"},
		{EventType: schema.WorkoutEvent, Timestamp: "2025-07-05T08:00:00Z"},
	}
	assert.Empty(t, checkMeditationGap(&Input{Events: recent}))
}

func TestPatternInsightsCappedAtTwo(t *testing.T) {
	patterns := []schema.Pattern{
		{Type: schema.CorrelationPattern, Confidence: 0.9, Description: "a"},
		{Type: schema.TrendPattern, Confidence: 0.5, Description: "b"}, // below threshold
		{Type: schema.AnomalyPattern, Confidence: 0.85, Description: "c"},
		{Type: schema.AssociationPattern, Confidence: 0.95, Description: "d"},
	}
	out := checkPatternInsights(&Input{Patterns: patterns})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].data["description"])
	assert.Equal(t, "c", out[1].data["description"])
}

func TestStreakCelebrationLongestWins(t *testing.T) {
	events := workoutRun(9)
	for i := range 7 {
		events = append(events, schema.Event{
			EventType: schema.MeditationEvent,
			Timestamp: fmt.Sprintf("2025-07-%02dT21:00:00Z", 3+i),
		})
	}

	out := checkStreakCelebration(&Input{Events: events})
	require.Len(t, out, 1)
	assert.Equal(t, schema.WorkoutEvent, out[0].data["event_type"])
	assert.Equal(t, 9, out[0].data["streak_days"])

	assert.Empty(t, checkStreakCelebration(&Input{Events: workoutRun(6)}))
}

func TestTrailingStreak(t *testing.T) {
	assert.Equal(t, 0, trailingStreak(nil))
	assert.Equal(t, 1, trailingStreak([]string{"2025-07-01"}))
	assert.Equal(t, 3, trailingStreak([]string{"2025-06-20", "2025-07-01", "2025-07-02", "2025-07-03"}))
}

func TestFallbackMessagesAreDeterministic(t *testing.T) {
	msg := fallbackMessage(schema.OvertrainingMessage, map[string]any{"consecutive_days": 8})
	assert.Contains(t, msg, "8 days in a row")

	msg = fallbackMessage(schema.BurnoutRiskMessage, map[string]any{"burnout_score": 85.0})
	assert.Contains(t, msg, "85")
}
