package schema

// Custom string types for type safety.
type (
	// Category represents the life dimension an event belongs to.
	Category string

	// PatternType represents the kind of statistical finding.
	PatternType string

	// InterventionType represents the kind of actionable output.
	InterventionType string

	// Urgency represents the ordinal severity of an intervention.
	Urgency string

	// MessageKey identifies the message template for an intervention rule.
	MessageKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the event store.
	DatabaseBackend string

	// LLMProvider represents the language-model provider for messaging.
	LLMProvider string
)

// All event categories supported.
const (
	PhysicalCategory  Category = "physical"
	MentalCategory    Category = "mental"
	SpiritualCategory Category = "spiritual"
)

// Well-known event types.
const (
	WorkoutEvent    = "workout"
	TaskEvent       = "task"
	MeditationEvent = "meditation"
	MoodEvent       = "mood"
)

// All pattern types emitted by the detector battery.
const (
	CorrelationPattern PatternType = "correlation"
	AssociationPattern PatternType = "association"
	TrendPattern       PatternType = "trend"
	TrendMAPattern     PatternType = "trend_ma"
	AnomalyPattern     PatternType = "anomaly"
)

// All intervention types supported.
const (
	WarningIntervention    InterventionType = "warning"
	SuggestionIntervention InterventionType = "suggestion"
	InsightIntervention    InterventionType = "insight"
	ForecastIntervention   InterventionType = "forecast"
)

// All urgency levels, from most to least severe.
const (
	CriticalUrgency Urgency = "critical"
	HighUrgency     Urgency = "high"
	MediumUrgency   Urgency = "medium"
	LowUrgency      Urgency = "low"
)

// urgencyRanks orders urgencies for sorting; lower rank sorts first.
var urgencyRanks = map[Urgency]int{
	CriticalUrgency: 0,
	HighUrgency:     1,
	MediumUrgency:   2,
	LowUrgency:      3,
}

// Rank returns the sort rank of the urgency; unknown urgencies sort last.
func (u Urgency) Rank() int {
	if r, ok := urgencyRanks[u]; ok {
		return r
	}
	return len(urgencyRanks)
}

// Message keys for the natural-language service, one per intervention rule.
const (
	OvertrainingMessage   MessageKey = "overtraining"
	BurnoutRiskMessage    MessageKey = "burnout_risk"
	OptimalTimingMessage  MessageKey = "optimal_timing"
	MeditationGapMessage  MessageKey = "meditation_gap"
	PatternInsightMessage MessageKey = "pattern_insight"
	StreakMessage         MessageKey = "streak"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All language-model providers supported.
const (
	OpenAIProvider LLMProvider = "openai"
	OllamaProvider LLMProvider = "ollama"
	NoneProvider   LLMProvider = "none" // default: deterministic templates only
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidLLMProviders lists all valid language-model providers.
var ValidLLMProviders = map[LLMProvider]struct{}{
	OpenAIProvider: {},
	OllamaProvider: {},
	NoneProvider:   {},
}

// Feeling labels that move the daily energy scalar.
var (
	PositiveFeelings = map[string]struct{}{"energized": {}, "great": {}, "focused": {}}
	NegativeFeelings = map[string]struct{}{"tired": {}, "exhausted": {}, "stressed": {}}
)
