package schema

import "time"

// WorkflowResult summarizes one daily workflow run. Success is true iff the
// error list is empty; partial runs still report what the healthy stages
// produced.
type WorkflowResult struct {
	Success                bool     `json:"success"`
	PatternsDetected       int      `json:"patterns_detected"`
	ForecastGenerated      bool     `json:"forecast_generated"`
	InterventionsTriggered int      `json:"interventions_triggered"`
	ExecutionTimeMS        int64    `json:"execution_time_ms"`
	Errors                 []string `json:"errors"`
}

// EventCheckResult is the output of the event-triggered fast path. Feedback
// is nil unless a critical or high urgency candidate fired.
type EventCheckResult struct {
	ImmediateFeedback *Intervention `json:"immediate_feedback"`
	ExecutionTimeMS   int64         `json:"execution_time_ms"`
}

// WorkflowStatus is a read-only snapshot of the orchestrator cache for one
// user. Producing it triggers no computation.
type WorkflowStatus struct {
	LastDailyRun       *time.Time `json:"last_daily_run,omitempty"`
	CacheAvailable     bool       `json:"cache_available"`
	CacheAgeHours      *float64   `json:"cache_age_hours,omitempty"`
	PatternsCount      int        `json:"patterns_count"`
	InterventionsCount int        `json:"interventions_count"`
}

// WorkflowRun is the persisted record of a workflow execution.
type WorkflowRun struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	RunType         string    `json:"run_type"` // "daily" or "event"
	Status          string    `json:"status"`   // "success" or "partial_success"
	PatternsCount   int       `json:"patterns_count"`
	ForecastDone    bool      `json:"forecast_done"`
	InterventionCnt int       `json:"intervention_count"`
	ExecutionTimeMS int64     `json:"execution_time_ms"`
	Errors          []string  `json:"errors,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
