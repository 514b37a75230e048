// Package agg aggregates raw events into daily series for the detectors
// and the forecaster.
package agg

import (
	"sort"

	"github.com/huangsam/pulse/schema"
)

// BuildDailySeries converts a raw event list into per-day aggregate counters.
// Input order is irrelevant; the result is keyed and sorted by the calendar
// date portion of each timestamp. Events with unusable timestamps are
// skipped, not treated as errors. Pure function of its input.
func BuildDailySeries(events []schema.Event) *schema.DailySeries {
	days := make(map[string]*schema.DayCount)

	for i := range events {
		e := &events[i]
		day, ok := e.Day()
		if !ok {
			continue
		}

		dc := days[day]
		if dc == nil {
			dc = &schema.DayCount{Feelings: make(map[string]int)}
			days[day] = dc
		}

		switch {
		case e.EventType == schema.WorkoutEvent,
			e.Category == schema.PhysicalCategory && e.EventType != "":
			dc.Workouts++
		case e.EventType == schema.MeditationEvent:
			dc.Meditations++
		case e.EventType == schema.TaskEvent:
			if truthy(e.Data["completed"]) {
				dc.TasksCompleted++
			} else {
				dc.TasksUncompleted++
			}
		}

		if e.Feeling != "" {
			dc.Feelings[e.Feeling]++
		}
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	return &schema.DailySeries{Dates: dates, Days: days}
}

// BuildEnergySeries aggregates events into a per-day energy scalar:
// +1.0 if the day has a workout, +0.8 if it has a meditation, +1.0 if any
// event carries a positive feeling, -1.0 if any carries a negative feeling,
// averaged over the day's event count. Returns aligned date and value slices
// in ascending date order.
func BuildEnergySeries(events []schema.Event) ([]string, []float64) {
	type dayState struct {
		count                                   int
		workout, meditation, positive, negative bool
	}
	states := make(map[string]*dayState)

	for i := range events {
		e := &events[i]
		day, ok := e.Day()
		if !ok {
			continue
		}

		ds := states[day]
		if ds == nil {
			ds = &dayState{}
			states[day] = ds
		}
		ds.count++

		switch e.EventType {
		case schema.WorkoutEvent:
			ds.workout = true
		case schema.MeditationEvent:
			ds.meditation = true
		}
		if _, ok := schema.PositiveFeelings[e.Feeling]; ok {
			ds.positive = true
		}
		if _, ok := schema.NegativeFeelings[e.Feeling]; ok {
			ds.negative = true
		}
	}

	dates := make([]string, 0, len(states))
	for d := range states {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	values := make([]float64, 0, len(dates))
	for _, d := range dates {
		ds := states[d]
		var total float64
		if ds.workout {
			total += 1.0
		}
		if ds.meditation {
			total += 0.8
		}
		if ds.positive {
			total += 1.0
		}
		if ds.negative {
			total -= 1.0
		}
		values = append(values, total/float64(ds.count))
	}
	return dates, values
}

// truthy interprets the open-payload "completed" field, which may arrive as
// a bool, a number, or a string depending on the ingestion path.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t == "true" || t == "1" || t == "yes"
	default:
		return false
	}
}
