// Package intervene evaluates threshold rules over recent events, the
// forecast, and detected patterns, and turns the winners into persisted,
// human-readable interventions.
package intervene

import (
	"context"
	"fmt"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
)

// Engine runs the rule set and persists the surviving interventions.
// Construct with NewEngine. The messenger is optional; without one every
// message uses the deterministic per-rule fallback text.
type Engine struct {
	store     contract.EventStore
	messenger contract.Messenger

	MaxPerRun   int
	SampleLimit int
}

// NewEngine returns an engine with default caps. messenger may be nil.
func NewEngine(store contract.EventStore, messenger contract.Messenger) *Engine {
	return &Engine{
		store:       store,
		messenger:   messenger,
		MaxPerRun:   contract.DefaultMaxPerRun,
		SampleLimit: contract.DefaultSampleLimit,
	}
}

// CheckInterventions evaluates every rule against the input and returns the
// prioritized survivors. A nil input makes the engine fetch the user's
// recent events itself, with no forecast and no patterns. Persistence and
// message generation failures are logged per candidate and never abort the
// run.
func (e *Engine) CheckInterventions(ctx context.Context, userID int64, in *Input) ([]schema.Intervention, error) {
	if in == nil {
		events, err := e.store.GetEvents(ctx, userID, contract.EventFilter{Limit: e.SampleLimit})
		if err != nil {
			return nil, fmt.Errorf("fetch events for user %d: %w", userID, err)
		}
		in = &Input{Events: events}
	}

	var candidates []candidate
	for _, r := range allRules {
		candidates = append(candidates, r(in)...)
	}

	kept := prioritizeCandidates(candidates, e.MaxPerRun)

	out := make([]schema.Intervention, 0, len(kept))
	for _, c := range kept {
		iv := c.iv
		iv.UserID = userID
		iv.Message = e.renderMessage(ctx, c.key, c.data)
		e.persist(ctx, &iv)
		out = append(out, iv)
	}
	return out, nil
}

// renderMessage asks the natural-language service for text and falls back
// to the rule's fixed string when the service is absent or fails.
func (e *Engine) renderMessage(ctx context.Context, key schema.MessageKey, data map[string]any) string {
	if e.messenger == nil {
		return fallbackMessage(key, data)
	}
	msg, err := e.messenger.GenerateMessage(ctx, key, data)
	if err != nil || msg == "" {
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Message generation for %s", key), err)
		}
		return fallbackMessage(key, data)
	}
	return msg
}

// persist stores one intervention, logging and continuing on failure so one
// bad write never hides the remaining candidates.
func (e *Engine) persist(ctx context.Context, iv *schema.Intervention) {
	id, err := e.store.CreateIntervention(ctx, iv)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Failed to persist %s intervention for user %d", iv.Type, iv.UserID), err)
		return
	}
	iv.ID = id
}
