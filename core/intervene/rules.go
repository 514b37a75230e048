package intervene

import (
	"fmt"
	"sort"
	"time"

	"github.com/huangsam/pulse/schema"
)

// Rule thresholds.
const (
	overtrainingStreakDays = 7
	burnoutHighScore       = 70.0
	burnoutCriticalScore   = 80.0
	timingMinFeltEvents    = 3
	timingLiftFactor       = 1.2
	meditationGapDays      = 3
	insightMinConfidence   = 0.8
	insightRuleCap         = 2
	streakCelebrationDays  = 7
)

// Input is everything a rule may look at. Rules are pure functions of this
// struct; a nil Forecast means "unavailable" and rules that need it do not
// fire.
type Input struct {
	Events   []schema.Event
	Forecast *schema.ForecastResult
	Patterns []schema.Pattern
}

// candidate pairs an intervention with the message key its rule owns, so
// the engine can render text after prioritization.
type candidate struct {
	key  schema.MessageKey
	data map[string]any
	iv   schema.Intervention
}

// rule yields zero or more candidates. Most rules yield at most one; the
// per-rule caps live inside the rules themselves.
type rule func(in *Input) []candidate

// allRules is the fixed rule set, evaluated on every check. Order does not
// matter for correctness since every rule is pure.
var allRules = []rule{
	checkOvertraining,
	checkBurnoutRisk,
	checkOptimalTiming,
	checkMeditationGap,
	checkPatternInsights,
	checkStreakCelebration,
}

// checkOvertraining fires when the user has worked out on seven or more
// consecutive calendar days, counted backward from the most recent workout
// day. Any gap over one day breaks the run.
func checkOvertraining(in *Input) []candidate {
	days := eventDays(in.Events, func(e *schema.Event) bool {
		return e.EventType == schema.WorkoutEvent
	})
	streak := trailingStreak(days)
	if streak < overtrainingStreakDays {
		return nil
	}

	data := map[string]any{"consecutive_days": streak}
	return []candidate{{
		key:  schema.OvertrainingMessage,
		data: data,
		iv: schema.Intervention{
			Type:    schema.WarningIntervention,
			Urgency: schema.HighUrgency,
			Title:   "Overtraining warning",
			Data:    data,
		},
	}}
}

// checkBurnoutRisk fires on a high forecast burnout score. Without a
// forecast there is nothing to evaluate.
func checkBurnoutRisk(in *Input) []candidate {
	if in.Forecast == nil {
		return nil
	}
	score := in.Forecast.BurnoutScore
	if score < burnoutHighScore {
		return nil
	}

	urgency := schema.HighUrgency
	if score >= burnoutCriticalScore {
		urgency = schema.CriticalUrgency
	}
	data := map[string]any{"burnout_score": score}
	return []candidate{{
		key:  schema.BurnoutRiskMessage,
		data: data,
		iv: schema.Intervention{
			Type:    schema.ForecastIntervention,
			Urgency: urgency,
			Title:   "Burnout risk",
			Data:    data,
		},
	}}
}

// checkOptimalTiming fires when the latest day's qualitative energy, scored
// on a 3-point feeling scale, beats the mean of the preceding days by more
// than 20%. Needs at least three events carrying a feeling label.
func checkOptimalTiming(in *Input) []candidate {
	type dayScore struct {
		day   string
		total float64
		count int
	}
	byDay := map[string]*dayScore{}
	felt := 0

	for i := range in.Events {
		e := &in.Events[i]
		if e.Feeling == "" {
			continue
		}
		day, ok := e.Day()
		if !ok {
			continue
		}
		felt++
		ds := byDay[day]
		if ds == nil {
			ds = &dayScore{day: day}
			byDay[day] = ds
		}
		ds.total += feelingScore(e.Feeling)
		ds.count++
	}
	if felt < timingMinFeltEvents || len(byDay) < 2 {
		return nil
	}

	days := make([]*dayScore, 0, len(byDay))
	for _, ds := range byDay {
		days = append(days, ds)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].day < days[j].day })

	latest := days[len(days)-1]
	latestAvg := latest.total / float64(latest.count)

	// Baseline over up to three days preceding the latest.
	prior := days[:len(days)-1]
	if len(prior) > 3 {
		prior = prior[len(prior)-3:]
	}
	var sum float64
	for _, ds := range prior {
		sum += ds.total / float64(ds.count)
	}
	baseline := sum / float64(len(prior))
	if baseline <= 0 || latestAvg <= baseline*timingLiftFactor {
		return nil
	}

	data := map[string]any{"energy_level": latestAvg, "baseline": baseline}
	return []candidate{{
		key:  schema.OptimalTimingMessage,
		data: data,
		iv: schema.Intervention{
			Type:    schema.SuggestionIntervention,
			Urgency: schema.MediumUrgency,
			Title:   "Good time for a challenge",
			Data:    data,
		},
	}}
}

// checkMeditationGap fires when the last meditation is three or more days
// behind the most recent event. Users with no meditation history are left
// alone.
func checkMeditationGap(in *Input) []candidate {
	meditationDays := eventDays(in.Events, func(e *schema.Event) bool {
		return e.EventType == schema.MeditationEvent
	})
	if len(meditationDays) == 0 {
		return nil
	}
	allDays := eventDays(in.Events, func(*schema.Event) bool { return true })
	if len(allDays) == 0 {
		return nil
	}

	gap := daysBetween(meditationDays[len(meditationDays)-1], allDays[len(allDays)-1])
	if gap < meditationGapDays {
		return nil
	}

	data := map[string]any{"days_since": gap}
	return []candidate{{
		key:  schema.MeditationGapMessage,
		data: data,
		iv: schema.Intervention{
			Type:    schema.SuggestionIntervention,
			Urgency: schema.MediumUrgency,
			Title:   "Meditation reminder",
			Data:    data,
		},
	}}
}

// checkPatternInsights surfaces up to two high-confidence detector findings.
func checkPatternInsights(in *Input) []candidate {
	var out []candidate
	for _, p := range in.Patterns {
		if p.Confidence < insightMinConfidence {
			continue
		}
		data := map[string]any{
			"pattern_type": string(p.Type),
			"confidence":   p.Confidence,
			"description":  p.Description,
		}
		out = append(out, candidate{
			key:  schema.PatternInsightMessage,
			data: data,
			iv: schema.Intervention{
				Type:    schema.InsightIntervention,
				Urgency: schema.LowUrgency,
				Title:   "Pattern spotted",
				Data:    data,
			},
		})
		if len(out) == insightRuleCap {
			break
		}
	}
	return out
}

// checkStreakCelebration fires for a seven-day run of any single event
// type; only the longest run across types is celebrated.
func checkStreakCelebration(in *Input) []candidate {
	byType := map[string][]schema.Event{}
	for _, e := range in.Events {
		if e.EventType != "" {
			byType[e.EventType] = append(byType[e.EventType], e)
		}
	}

	bestType, bestStreak := "", 0
	for eventType, events := range byType {
		days := eventDays(events, func(*schema.Event) bool { return true })
		streak := trailingStreak(days)
		if streak > bestStreak || (streak == bestStreak && eventType < bestType) {
			bestType, bestStreak = eventType, streak
		}
	}
	if bestStreak < streakCelebrationDays {
		return nil
	}

	data := map[string]any{"event_type": bestType, "streak_days": bestStreak}
	return []candidate{{
		key:  schema.StreakMessage,
		data: data,
		iv: schema.Intervention{
			Type:    schema.InsightIntervention,
			Urgency: schema.LowUrgency,
			Title:   "Streak milestone",
			Data:    data,
		},
	}}
}

// feelingScore maps a feeling label onto the 3-point qualitative scale.
func feelingScore(feeling string) float64 {
	if _, ok := schema.PositiveFeelings[feeling]; ok {
		return 3
	}
	if _, ok := schema.NegativeFeelings[feeling]; ok {
		return 1
	}
	return 2
}

// eventDays returns the sorted distinct calendar days of the events
// matching pred. Events with unusable timestamps are skipped.
func eventDays(events []schema.Event, pred func(*schema.Event) bool) []string {
	seen := map[string]struct{}{}
	for i := range events {
		e := &events[i]
		if !pred(e) {
			continue
		}
		if day, ok := e.Day(); ok {
			seen[day] = struct{}{}
		}
	}
	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// trailingStreak counts the consecutive-day run ending at the last entry of
// a sorted day list. A gap of more than one day breaks the run.
func trailingStreak(days []string) int {
	if len(days) == 0 {
		return 0
	}
	streak := 1
	for i := len(days) - 1; i > 0; i-- {
		if daysBetween(days[i-1], days[i]) != 1 {
			break
		}
		streak++
	}
	return streak
}

// daysBetween returns the calendar-day distance from a to b. Unparseable
// dates count as an infinite gap.
func daysBetween(a, b string) int {
	ta, errA := time.Parse(time.DateOnly, a)
	tb, errB := time.Parse(time.DateOnly, b)
	if errA != nil || errB != nil {
		return int(^uint(0) >> 1)
	}
	return int(tb.Sub(ta) / (24 * time.Hour))
}

// fallbackMessage renders the fixed deterministic text for a rule when the
// natural-language service is absent or fails.
func fallbackMessage(key schema.MessageKey, data map[string]any) string {
	switch key {
	case schema.OvertrainingMessage:
		return fmt.Sprintf("You've worked out %v days in a row. Consider a rest day to let your body recover.", data["consecutive_days"])
	case schema.BurnoutRiskMessage:
		return fmt.Sprintf("Your burnout risk score is %.0f. Plan some downtime before it climbs further.", data["burnout_score"])
	case schema.OptimalTimingMessage:
		return "Your energy is higher than usual today. Good moment to tackle something demanding."
	case schema.MeditationGapMessage:
		return fmt.Sprintf("It's been %v days since your last meditation. Even a short session helps.", data["days_since"])
	case schema.PatternInsightMessage:
		return fmt.Sprintf("We noticed something in your data: %v", data["description"])
	case schema.StreakMessage:
		return fmt.Sprintf("Nice work: %v days of %v in a row. Keep it going!", data["streak_days"], data["event_type"])
	default:
		return "Keep up the good work."
	}
}
