package contract

import (
	"context"

	"github.com/huangsam/pulse/schema"
	"github.com/stretchr/testify/mock"
)

// MockEventStore is a testify mock for the EventStore interface.
type MockEventStore struct {
	mock.Mock
}

var _ EventStore = &MockEventStore{} // Compile-time check

// GetEvents implements the EventStore interface.
func (m *MockEventStore) GetEvents(ctx context.Context, userID int64, filter EventFilter) ([]schema.Event, error) {
	ret := m.Called(ctx, userID, filter)
	events, _ := ret.Get(0).([]schema.Event)
	return events, ret.Error(1)
}

// CreateEvent implements the EventStore interface.
func (m *MockEventStore) CreateEvent(ctx context.Context, event *schema.Event) (int64, error) {
	ret := m.Called(ctx, event)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// CreatePattern implements the EventStore interface.
func (m *MockEventStore) CreatePattern(ctx context.Context, pattern *schema.Pattern) (int64, error) {
	ret := m.Called(ctx, pattern)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// CreateIntervention implements the EventStore interface.
func (m *MockEventStore) CreateIntervention(ctx context.Context, iv *schema.Intervention) (int64, error) {
	ret := m.Called(ctx, iv)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// GetRecentPatterns implements the EventStore interface.
func (m *MockEventStore) GetRecentPatterns(ctx context.Context, userID int64, limit int) ([]schema.Pattern, error) {
	ret := m.Called(ctx, userID, limit)
	patterns, _ := ret.Get(0).([]schema.Pattern)
	return patterns, ret.Error(1)
}

// GetRecentInterventions implements the EventStore interface.
func (m *MockEventStore) GetRecentInterventions(ctx context.Context, userID int64, limit int) ([]schema.Intervention, error) {
	ret := m.Called(ctx, userID, limit)
	ivs, _ := ret.Get(0).([]schema.Intervention)
	return ivs, ret.Error(1)
}

// RecordWorkflowRun implements the EventStore interface.
func (m *MockEventStore) RecordWorkflowRun(ctx context.Context, run *schema.WorkflowRun) error {
	ret := m.Called(ctx, run)
	return ret.Error(0)
}

// GetStatus implements the EventStore interface.
func (m *MockEventStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	ret := m.Called(ctx)
	status, _ := ret.Get(0).(schema.StoreStatus)
	return status, ret.Error(1)
}

// Close implements the EventStore interface.
func (m *MockEventStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}

// MockMessenger is a testify mock for the Messenger interface.
type MockMessenger struct {
	mock.Mock
}

var _ Messenger = &MockMessenger{} // Compile-time check

// GenerateMessage implements the Messenger interface.
func (m *MockMessenger) GenerateMessage(ctx context.Context, key schema.MessageKey, data map[string]any) (string, error) {
	ret := m.Called(ctx, key, data)
	return ret.String(0), ret.Error(1)
}

// ParseEvent implements the Messenger interface.
func (m *MockMessenger) ParseEvent(ctx context.Context, text string) (schema.ParsedEvent, error) {
	ret := m.Called(ctx, text)
	parsed, _ := ret.Get(0).(schema.ParsedEvent)
	return parsed, ret.Error(1)
}

// MockLanguageModelClient is a testify mock for the LanguageModelClient interface.
type MockLanguageModelClient struct {
	mock.Mock
}

var _ LanguageModelClient = &MockLanguageModelClient{} // Compile-time check

// Complete implements the LanguageModelClient interface.
func (m *MockLanguageModelClient) Complete(ctx context.Context, prompt string) (string, error) {
	ret := m.Called(ctx, prompt)
	return ret.String(0), ret.Error(1)
}
