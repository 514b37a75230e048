package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
)

// CreatePattern persists a detected pattern and returns its ID.
func (s *EventStoreImpl) CreatePattern(ctx context.Context, pattern *schema.Pattern) (int64, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return 0, nil
	}

	data, err := marshalJSON(pattern.Data)
	if err != nil {
		return 0, err
	}
	createdAt := pattern.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	args := []any{
		pattern.UserID, string(pattern.Type), pattern.Description, pattern.Confidence,
		pattern.SampleSize, data, pattern.IsActive, formatTime(createdAt, s.backend),
	}

	columns := "user_id, pattern_type, description, confidence, sample_size, data, is_active, created_at"
	return s.insert(ctx, patternsTable, columns, args)
}

// CreateIntervention persists an intervention and returns its ID.
func (s *EventStoreImpl) CreateIntervention(ctx context.Context, iv *schema.Intervention) (int64, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return 0, nil
	}

	data, err := marshalJSON(iv.Data)
	if err != nil {
		return 0, err
	}
	createdAt := iv.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	args := []any{
		iv.UserID, string(iv.Type), string(iv.Urgency), iv.Title, iv.Message,
		data, formatTime(createdAt, s.backend), iv.UserRating, iv.WasHelpful,
	}

	columns := "user_id, intervention_type, urgency, title, message, data, created_at, user_rating, was_helpful"
	return s.insert(ctx, interventionsTable, columns, args)
}

// GetRecentPatterns returns the user's persisted patterns, newest first.
// The NoneBackend returns an empty list.
func (s *EventStoreImpl) GetRecentPatterns(ctx context.Context, userID int64, limit int) ([]schema.Pattern, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = contract.DefaultSampleLimit
	}

	query := fmt.Sprintf(
		"SELECT id, user_id, pattern_type, description, confidence, sample_size, data, is_active, created_at FROM %s WHERE user_id = %s ORDER BY created_at DESC, id DESC LIMIT %d",
		quoteTableName(patternsTable, s.backend), placeholder(1, s.backend), limit)

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []schema.Pattern
	for rows.Next() {
		var p schema.Pattern
		var patternType string
		var data *string
		var createdAt any
		if err := rows.Scan(&p.ID, &p.UserID, &patternType, &p.Description, &p.Confidence, &p.SampleSize, &data, &p.IsActive, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		p.Type = schema.PatternType(patternType)
		p.CreatedAt = parseTime(createdAt)
		if p.Data, err = unmarshalJSON(data); err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patterns: %w", err)
	}
	return patterns, nil
}

// GetRecentInterventions returns the user's persisted interventions,
// newest first. The NoneBackend returns an empty list.
func (s *EventStoreImpl) GetRecentInterventions(ctx context.Context, userID int64, limit int) ([]schema.Intervention, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = contract.DefaultSampleLimit
	}

	query := fmt.Sprintf(
		"SELECT id, user_id, intervention_type, urgency, title, message, data, created_at, user_rating, was_helpful FROM %s WHERE user_id = %s ORDER BY created_at DESC, id DESC LIMIT %d",
		quoteTableName(interventionsTable, s.backend), placeholder(1, s.backend), limit)

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interventions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ivs []schema.Intervention
	for rows.Next() {
		var iv schema.Intervention
		var ivType, urgency string
		var data *string
		var createdAt any
		if err := rows.Scan(&iv.ID, &iv.UserID, &ivType, &urgency, &iv.Title, &iv.Message, &data, &createdAt, &iv.UserRating, &iv.WasHelpful); err != nil {
			return nil, fmt.Errorf("failed to scan intervention: %w", err)
		}
		iv.Type = schema.InterventionType(ivType)
		iv.Urgency = schema.Urgency(urgency)
		iv.CreatedAt = parseTime(createdAt)
		if iv.Data, err = unmarshalJSON(data); err != nil {
			return nil, err
		}
		ivs = append(ivs, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interventions: %w", err)
	}
	return ivs, nil
}

// RecordWorkflowRun stores an execution record.
func (s *EventStoreImpl) RecordWorkflowRun(ctx context.Context, run *schema.WorkflowRun) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	args := []any{
		run.UserID, run.RunType, run.Status, run.PatternsCount, run.ForecastDone,
		run.InterventionCnt, run.ExecutionTimeMS, strings.Join(run.Errors, "; "),
		formatTime(createdAt, s.backend),
	}

	columns := "user_id, run_type, status, patterns_count, forecast_done, intervention_count, execution_time_ms, errors, created_at"
	_, err := s.insert(ctx, workflowRunsTable, columns, args)
	return err
}

// insert runs a backend-appropriate INSERT and returns the new row ID.
// PostgreSQL uses RETURNING; SQLite and MySQL use LastInsertId.
func (s *EventStoreImpl) insert(ctx context.Context, table, columns string, args []any) (int64, error) {
	quotedTableName := quoteTableName(table, s.backend)
	n := len(args)

	switch s.backend {
	case schema.PostgreSQLBackend:
		marks := make([]string, n)
		for i := range marks {
			marks[i] = fmt.Sprintf("$%d", i+1)
		}
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id", quotedTableName, columns, strings.Join(marks, ", "))
		var id int64
		if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		return id, nil

	default: // SQLite and MySQL
		marks := make([]string, n)
		for i := range marks {
			marks[i] = "?"
		}
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quotedTableName, columns, strings.Join(marks, ", "))
		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		return result.LastInsertId()
	}
}

// GetStatus returns status information about the event store.
func (s *EventStoreImpl) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int),
	}
	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	tables := []string{eventsTable, patternsTable, interventionsTable, workflowRunsTable}
	for _, table := range tables {
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))
		var count int
		if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}
