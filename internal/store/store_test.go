package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) contract.EventStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "pulse_test.db")
	s, err := NewEventStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEventRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateEvent(ctx, &schema.Event{
		UserID:    1,
		Category:  schema.PhysicalCategory,
		EventType: schema.WorkoutEvent,
		Timestamp: "2025-07-01T07:00:00Z",
		Feeling:   "energized",
		Data:      map[string]any{"duration_min": 45.0},
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	events, err := s.GetEvents(ctx, 1, contract.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, id, e.ID)
	assert.Equal(t, schema.PhysicalCategory, e.Category)
	assert.Equal(t, schema.WorkoutEvent, e.EventType)
	assert.Equal(t, "energized", e.Feeling)
	assert.Equal(t, 45.0, e.Data["duration_min"])
}

func TestGetEventsFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fixtures := []schema.Event{
		{UserID: 1, Category: schema.PhysicalCategory, EventType: schema.WorkoutEvent, Timestamp: "2025-07-01T07:00:00Z"},
		{UserID: 1, Category: schema.MentalCategory, EventType: schema.TaskEvent, Timestamp: "2025-07-02T09:00:00Z"},
		{UserID: 2, Category: schema.PhysicalCategory, EventType: schema.WorkoutEvent, Timestamp: "2025-07-01T08:00:00Z"},
	}
	for i := range fixtures {
		_, err := s.CreateEvent(ctx, &fixtures[i])
		require.NoError(t, err)
	}

	byUser, err := s.GetEvents(ctx, 1, contract.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byCategory, err := s.GetEvents(ctx, 1, contract.EventFilter{Category: schema.MentalCategory})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, schema.TaskEvent, byCategory[0].EventType)

	byType, err := s.GetEvents(ctx, 1, contract.EventFilter{EventType: schema.WorkoutEvent})
	require.NoError(t, err)
	assert.Len(t, byType, 1)

	limited, err := s.GetEvents(ctx, 1, contract.EventFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGetEventsSinceDaysWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	recent := schema.Event{
		UserID: 1, Category: schema.PhysicalCategory, EventType: schema.WorkoutEvent,
		Timestamp: now.AddDate(0, 0, -2).Format(time.RFC3339),
	}
	stale := schema.Event{
		UserID: 1, Category: schema.PhysicalCategory, EventType: schema.WorkoutEvent,
		Timestamp: now.AddDate(0, 0, -20).Format(time.RFC3339),
	}
	for _, e := range []schema.Event{recent, stale} {
		_, err := s.CreateEvent(ctx, &e)
		require.NoError(t, err)
	}

	windowed, err := s.GetEvents(ctx, 1, contract.EventFilter{SinceDays: 7})
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, recent.Timestamp, windowed[0].Timestamp)

	all, err := s.GetEvents(ctx, 1, contract.EventFilter{SinceDays: 30})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreatePatternAndIntervention(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pid, err := s.CreatePattern(ctx, &schema.Pattern{
		UserID:      1,
		Type:        schema.CorrelationPattern,
		Description: "workouts correlate with tasks",
		Confidence:  0.8,
		SampleSize:  12,
		Data:        map[string]any{"coefficient": 0.8},
		IsActive:    true,
	})
	require.NoError(t, err)
	assert.Positive(t, pid)

	rating := 4
	iid, err := s.CreateIntervention(ctx, &schema.Intervention{
		UserID:     1,
		Type:       schema.WarningIntervention,
		Urgency:    schema.HighUrgency,
		Title:      "Overtraining warning",
		Message:    "Take a rest day",
		Data:       map[string]any{"consecutive_days": 8},
		UserRating: &rating,
	})
	require.NoError(t, err)
	assert.Positive(t, iid)

	patterns, err := s.GetRecentPatterns(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	p := patterns[0]
	assert.Equal(t, pid, p.ID)
	assert.Equal(t, schema.CorrelationPattern, p.Type)
	assert.Equal(t, 0.8, p.Confidence)
	assert.Equal(t, 12, p.SampleSize)
	assert.True(t, p.IsActive)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, 0.8, p.Data["coefficient"])

	ivs, err := s.GetRecentInterventions(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, ivs, 1)
	iv := ivs[0]
	assert.Equal(t, iid, iv.ID)
	assert.Equal(t, schema.WarningIntervention, iv.Type)
	assert.Equal(t, schema.HighUrgency, iv.Urgency)
	assert.Equal(t, "Take a rest day", iv.Message)
	require.NotNil(t, iv.UserRating)
	assert.Equal(t, 4, *iv.UserRating)
	assert.Nil(t, iv.WasHelpful)

	other, err := s.GetRecentPatterns(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRecordWorkflowRunAndStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.RecordWorkflowRun(ctx, &schema.WorkflowRun{
		UserID:          1,
		RunType:         "daily",
		Status:          "success",
		PatternsCount:   2,
		ForecastDone:    true,
		InterventionCnt: 1,
		ExecutionTimeMS: 42,
	})
	require.NoError(t, err)

	status, err := s.GetStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.Equal(t, 1, status.TableSizes[workflowRunsTable])
	assert.Equal(t, 0, status.TableSizes[eventsTable])
}

func TestNoneBackendIsNoop(t *testing.T) {
	s, err := NewEventStore(schema.NoneBackend, "")
	require.NoError(t, err)
	ctx := context.Background()

	id, err := s.CreateEvent(ctx, &schema.Event{UserID: 1})
	assert.NoError(t, err)
	assert.Zero(t, id)

	events, err := s.GetEvents(ctx, 1, contract.EventFilter{})
	assert.NoError(t, err)
	assert.Empty(t, events)

	patterns, err := s.GetRecentPatterns(ctx, 1, 10)
	assert.NoError(t, err)
	assert.Empty(t, patterns)

	status, err := s.GetStatus(ctx)
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, s.Close())
}

func TestNewEventStoreRejectsUnknownBackend(t *testing.T) {
	_, err := NewEventStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
