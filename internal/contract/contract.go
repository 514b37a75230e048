// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/pulse/schema"
)

// EventFilter narrows an event query. The zero value means "everything,
// newest first, up to the store default limit".
type EventFilter struct {
	Limit     int             // max rows to return; 0 means store default
	Category  schema.Category // optional category filter
	EventType string          // optional event type filter
	SinceDays int             // optional trailing window in days
}

// EventStore defines the persistence operations the analytics pipeline needs.
// Implementations must tolerate concurrent calls; the pipeline never mutates
// or deletes events. Row ordering from GetEvents is not guaranteed in either
// direction, so callers sort what they need sorted.
type EventStore interface {
	// GetEvents returns events for the user matching the filter.
	GetEvents(ctx context.Context, userID int64, filter EventFilter) ([]schema.Event, error)

	// CreateEvent persists a new event and returns its ID.
	CreateEvent(ctx context.Context, event *schema.Event) (int64, error)

	// CreatePattern persists a detected pattern and returns its ID.
	CreatePattern(ctx context.Context, pattern *schema.Pattern) (int64, error)

	// CreateIntervention persists an intervention and returns its ID.
	CreateIntervention(ctx context.Context, iv *schema.Intervention) (int64, error)

	// GetRecentPatterns returns the newest persisted patterns for the user.
	GetRecentPatterns(ctx context.Context, userID int64, limit int) ([]schema.Pattern, error)

	// GetRecentInterventions returns the newest persisted interventions
	// for the user.
	GetRecentInterventions(ctx context.Context, userID int64, limit int) ([]schema.Intervention, error)

	// RecordWorkflowRun stores an execution record. Best effort; callers
	// log failures and continue.
	RecordWorkflowRun(ctx context.Context, run *schema.WorkflowRun) error

	// GetStatus returns status information about the store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// LanguageModelClient is the capability interface for text completion.
// One concrete adapter exists per provider; the adapter is selected via a
// provider mapping at construction time, never via runtime type inspection.
type LanguageModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Messenger converts between free text and structured data, best effort.
// Both directions may fail; callers must fall back to deterministic output.
type Messenger interface {
	// GenerateMessage renders a human-readable message for the given
	// template key and supporting data.
	GenerateMessage(ctx context.Context, key schema.MessageKey, data map[string]any) (string, error)

	// ParseEvent extracts structured event fields from free text.
	ParseEvent(ctx context.Context, text string) (schema.ParsedEvent, error)
}
