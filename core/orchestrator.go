// Package core wires the analytics stages into workflows: a full daily
// batch, a fast event-triggered check, and a status query over the shared
// result cache.
package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/huangsam/pulse/core/detect"
	"github.com/huangsam/pulse/core/forecast"
	"github.com/huangsam/pulse/core/intervene"
	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
)

// cacheEntry is one user's latest daily-run output. Entries are replaced
// whole so a concurrent reader never sees a half-written mix of two runs.
type cacheEntry struct {
	patterns      []schema.Pattern
	forecast      *schema.ForecastResult
	interventions []schema.Intervention
	timestamp     time.Time
}

// Orchestrator sequences the pipeline stages and owns the per-user result
// cache. Safe for concurrent use across users; latest run wins per user.
type Orchestrator struct {
	store      contract.EventStore
	detector   *detect.Detector
	forecaster *forecast.Forecaster
	engine     *intervene.Engine

	RecentLimit int

	mu    sync.RWMutex
	cache map[int64]*cacheEntry
}

// NewOrchestrator builds the full pipeline against one store. messenger may
// be nil; interventions then carry their deterministic fallback text.
func NewOrchestrator(store contract.EventStore, messenger contract.Messenger) *Orchestrator {
	return &Orchestrator{
		store:       store,
		detector:    detect.NewDetector(store),
		forecaster:  forecast.NewForecaster(store),
		engine:      intervene.NewEngine(store, messenger),
		RecentLimit: contract.DefaultRecentLimit,
		cache:       make(map[int64]*cacheEntry),
	}
}

// Tune applies validated config thresholds to every pipeline stage.
func (o *Orchestrator) Tune(cfg *contract.Config) {
	o.detector.MinSamples = cfg.MinSamples
	o.detector.CorrelationThreshold = cfg.CorrelationThreshold
	o.detector.AnomalyZThreshold = cfg.AnomalyZThreshold
	o.detector.ChiSquareThreshold = cfg.ChiSquareThreshold

	o.forecaster.LookbackDays = cfg.LookbackDays
	o.forecaster.SampleLimit = cfg.SampleLimit
	o.forecaster.SetSmoothingAlpha(cfg.SmoothingAlpha)

	o.engine.MaxPerRun = cfg.MaxPerRun
	o.engine.SampleLimit = cfg.SampleLimit
}

// RunDailyWorkflow runs detection, forecasting, and intervention checks in
// order. Each stage has its own failure boundary: a failing stage records
// an error string and yields a safe empty default, and the next stage still
// runs. The combined output replaces the user's cache entry.
func (o *Orchestrator) RunDailyWorkflow(ctx context.Context, userID int64) *schema.WorkflowResult {
	start := time.Now()
	var stageErrors []string

	patterns, err := o.detector.DetectPatterns(ctx, userID, 0)
	if err != nil {
		stageErrors = append(stageErrors, fmt.Sprintf("pattern detection: %v", err))
		patterns = []schema.Pattern{}
	}

	fc, err := o.forecaster.GenerateForecast(ctx, userID, 0)
	if err != nil {
		stageErrors = append(stageErrors, fmt.Sprintf("forecast: %v", err))
		fc = nil
	}

	interventions := o.runInterventionStage(ctx, userID, fc, patterns, &stageErrors)

	now := time.Now()
	o.mu.Lock()
	o.cache[userID] = &cacheEntry{
		patterns:      patterns,
		forecast:      fc,
		interventions: interventions,
		timestamp:     now,
	}
	o.mu.Unlock()

	result := &schema.WorkflowResult{
		Success:                len(stageErrors) == 0,
		PatternsDetected:       len(patterns),
		ForecastGenerated:      fc != nil,
		InterventionsTriggered: len(interventions),
		ExecutionTimeMS:        time.Since(start).Milliseconds(),
		Errors:                 stageErrors,
	}
	o.recordRun(ctx, userID, "daily", result)
	return result
}

// runInterventionStage fetches the events the rules need and runs the
// engine inside the stage's failure boundary.
func (o *Orchestrator) runInterventionStage(ctx context.Context, userID int64, fc *schema.ForecastResult, patterns []schema.Pattern, stageErrors *[]string) []schema.Intervention {
	events, err := o.store.GetEvents(ctx, userID, contract.EventFilter{Limit: contract.DefaultSampleLimit})
	if err != nil {
		*stageErrors = append(*stageErrors, fmt.Sprintf("interventions: fetch events: %v", err))
		return []schema.Intervention{}
	}

	interventions, err := o.engine.CheckInterventions(ctx, userID, &intervene.Input{
		Events:   events,
		Forecast: fc,
		Patterns: patterns,
	})
	if err != nil {
		*stageErrors = append(*stageErrors, fmt.Sprintf("interventions: %v", err))
		return []schema.Intervention{}
	}
	return interventions
}

// RunEventTriggeredWorkflow is the fast path after a single event write. It
// reuses the cached forecast if one exists, checks the rules over only the
// most recent events, and returns at most one critical or high urgency
// candidate as immediate feedback. It never re-runs detection or
// forecasting.
func (o *Orchestrator) RunEventTriggeredWorkflow(ctx context.Context, userID int64, event schema.Event) *schema.EventCheckResult {
	start := time.Now()

	o.mu.RLock()
	var cachedForecast *schema.ForecastResult
	if entry := o.cache[userID]; entry != nil {
		cachedForecast = entry.forecast
	}
	o.mu.RUnlock()

	result := &schema.EventCheckResult{}
	defer func() { result.ExecutionTimeMS = time.Since(start).Milliseconds() }()

	recent, err := o.store.GetEvents(ctx, userID, contract.EventFilter{Limit: o.RecentLimit})
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Event check fetch for user %d", userID), err)
		return result
	}
	// The triggering event may not be visible in the store read yet.
	recent = append(recent, event)

	interventions, err := o.engine.CheckInterventions(ctx, userID, &intervene.Input{
		Events:   recent,
		Forecast: cachedForecast,
	})
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Event check rules for user %d", userID), err)
		return result
	}

	for i := range interventions {
		switch interventions[i].Urgency {
		case schema.CriticalUrgency, schema.HighUrgency:
			result.ImmediateFeedback = &interventions[i]
			return result
		}
	}
	return result
}

// GetWorkflowStatus reports whether a cache entry exists for the user and
// how stale it is, without triggering any computation.
func (o *Orchestrator) GetWorkflowStatus(userID int64) *schema.WorkflowStatus {
	o.mu.RLock()
	entry := o.cache[userID]
	o.mu.RUnlock()

	if entry == nil {
		return &schema.WorkflowStatus{}
	}

	age := time.Since(entry.timestamp).Hours()
	ts := entry.timestamp
	return &schema.WorkflowStatus{
		LastDailyRun:       &ts,
		CacheAvailable:     true,
		CacheAgeHours:      &age,
		PatternsCount:      len(entry.patterns),
		InterventionsCount: len(entry.interventions),
	}
}

// recordRun persists an execution record, best effort.
func (o *Orchestrator) recordRun(ctx context.Context, userID int64, runType string, result *schema.WorkflowResult) {
	status := "success"
	if !result.Success {
		status = "partial_success"
	}
	run := &schema.WorkflowRun{
		UserID:          userID,
		RunType:         runType,
		Status:          status,
		PatternsCount:   result.PatternsDetected,
		ForecastDone:    result.ForecastGenerated,
		InterventionCnt: result.InterventionsTriggered,
		ExecutionTimeMS: result.ExecutionTimeMS,
		Errors:          result.Errors,
	}
	if err := o.store.RecordWorkflowRun(ctx, run); err != nil {
		contract.LogWarn(fmt.Sprintf("Failed to record %s run for user %d", runType, userID), err)
	}
}
