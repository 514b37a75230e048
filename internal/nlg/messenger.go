package nlg

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
)

// messagePrompts holds the per-rule instructions handed to the model along
// with the supporting data.
var messagePrompts = map[schema.MessageKey]string{
	schema.OvertrainingMessage:   "The user has worked out many days in a row. Write one short, friendly sentence suggesting a rest day.",
	schema.BurnoutRiskMessage:    "The user's burnout risk score is elevated. Write one short, caring sentence suggesting downtime.",
	schema.OptimalTimingMessage:  "The user's energy is above their usual baseline today. Write one short sentence encouraging them to tackle something demanding.",
	schema.MeditationGapMessage:  "The user has not meditated for several days. Write one short, gentle reminder.",
	schema.PatternInsightMessage: "Summarize the detected behavioral pattern for the user in one short sentence.",
	schema.StreakMessage:         "The user has kept a daily streak going. Write one short congratulatory sentence.",
}

// MessengerImpl renders intervention text and parses free-text event
// descriptions through a completion client.
type MessengerImpl struct {
	client contract.LanguageModelClient
}

var _ contract.Messenger = &MessengerImpl{} // Compile-time check

// NewMessenger wraps a completion client. A nil client yields a nil
// messenger, which callers treat as "use deterministic fallbacks".
func NewMessenger(client contract.LanguageModelClient) contract.Messenger {
	if client == nil {
		return nil
	}
	return &MessengerImpl{client: client}
}

// GenerateMessage renders intervention text for the given template key.
// Failures propagate so the caller can use its deterministic fallback.
func (m *MessengerImpl) GenerateMessage(ctx context.Context, key schema.MessageKey, data map[string]any) (string, error) {
	instruction, ok := messagePrompts[key]
	if !ok {
		return "", fmt.Errorf("unknown message key: %s", key)
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal message data: %w", err)
	}

	prompt := fmt.Sprintf("%s\nSupporting data: %s\nRespond with the sentence only.", instruction, dataJSON)
	out, err := m.client.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ParseEvent extracts structured event fields from free text. The model is
// asked for JSON; if it fails or returns garbage, a keyword heuristic takes
// over so logging always has a best-effort answer.
func (m *MessengerImpl) ParseEvent(ctx context.Context, text string) (schema.ParsedEvent, error) {
	prompt := fmt.Sprintf(
		"Extract fields from this activity note: %q\n"+
			"Respond with JSON only, shaped like "+
			`{"category":"physical|mental|spiritual","event_type":"workout|task|meditation|mood","feeling":"","data":{}}`, text)

	out, err := m.client.Complete(ctx, prompt)
	if err != nil {
		return ParseEventKeywords(text), nil
	}

	var parsed schema.ParsedEvent
	if err := json.Unmarshal([]byte(extractJSON(out)), &parsed); err != nil || parsed.EventType == "" {
		return ParseEventKeywords(text), nil
	}
	return parsed, nil
}

// extractJSON trims model chatter around the first JSON object in a reply.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}

// ParseEventKeywords is the deterministic fallback parser. It matches
// well-known activity and feeling words and defaults to a mental-category
// mood event when nothing matches.
func ParseEventKeywords(text string) schema.ParsedEvent {
	lower := strings.ToLower(text)
	parsed := schema.ParsedEvent{Category: schema.MentalCategory, EventType: schema.MoodEvent}

	switch {
	case containsAny(lower, "workout", "gym", "run", "ran", "exercise", "lift"):
		parsed.Category = schema.PhysicalCategory
		parsed.EventType = schema.WorkoutEvent
	case containsAny(lower, "meditat", "breathwork", "mindful"):
		parsed.Category = schema.SpiritualCategory
		parsed.EventType = schema.MeditationEvent
	case containsAny(lower, "task", "finished", "completed", "shipped", "done"):
		parsed.Category = schema.MentalCategory
		parsed.EventType = schema.TaskEvent
		parsed.Data = map[string]any{"completed": true}
	}

	for feeling := range schema.PositiveFeelings {
		if strings.Contains(lower, feeling) {
			parsed.Feeling = feeling
			break
		}
	}
	if parsed.Feeling == "" {
		for feeling := range schema.NegativeFeelings {
			if strings.Contains(lower, feeling) {
				parsed.Feeling = feeling
				break
			}
		}
	}
	return parsed
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
