// Package schema has configs, models and shared constants for all parts of pulse.
package schema

import "time"

// Event is a single timestamped user activity record. Events are immutable
// facts created by upstream ingestion; the pipeline only reads them.
type Event struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Category  Category       `json:"category"`   // physical, mental, spiritual
	EventType string         `json:"event_type"` // e.g. "workout", "task", "meditation"
	Timestamp string         `json:"timestamp"`  // RFC3339 text as ingested; may be malformed
	Feeling   string         `json:"feeling,omitempty"`
	Data      map[string]any `json:"data,omitempty"` // open payload specific to the event type
}

// Day returns the calendar-date portion of the event timestamp (YYYY-MM-DD)
// and whether it looks like a valid date. Events with unusable timestamps
// are skipped by aggregation, not treated as errors.
func (e *Event) Day() (string, bool) {
	if len(e.Timestamp) < 10 {
		return "", false
	}
	day := e.Timestamp[:10]
	if _, err := time.Parse(time.DateOnly, day); err != nil {
		return "", false
	}
	return day, true
}

// DayCount holds the aggregate counters for a single calendar day.
// All counters default to zero so downstream numeric code never has to
// guard against missing keys.
type DayCount struct {
	Workouts         int            `json:"workouts"`
	Meditations      int            `json:"meditations"`
	TasksCompleted   int            `json:"tasks_completed"`
	TasksUncompleted int            `json:"tasks_uncompleted"`
	Feelings         map[string]int `json:"feelings,omitempty"`
}

// HasFeeling reports whether the given feeling label was recorded that day.
func (d *DayCount) HasFeeling(label string) bool {
	return d.Feelings[label] > 0
}

// DailySeries is a date-ordered aggregation of event counters. It is built
// fresh on every pipeline run and never persisted.
type DailySeries struct {
	Dates []string             // ascending calendar dates (YYYY-MM-DD)
	Days  map[string]*DayCount // one entry per date in Dates
}

// Len returns the number of days present in the series.
func (s *DailySeries) Len() int {
	return len(s.Dates)
}

// Values extracts an aligned float series by applying f to each day in order.
func (s *DailySeries) Values(f func(*DayCount) float64) []float64 {
	out := make([]float64, 0, len(s.Dates))
	for _, d := range s.Dates {
		out = append(out, f(s.Days[d]))
	}
	return out
}

// Indicator extracts an aligned 0/1 series by applying pred to each day in order.
func (s *DailySeries) Indicator(pred func(*DayCount) bool) []int {
	out := make([]int, 0, len(s.Dates))
	for _, d := range s.Dates {
		if pred(s.Days[d]) {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	}
	return out
}
