package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
)

// GetEvents returns the user's events matching the filter, newest first.
// The NoneBackend returns an empty list.
func (s *EventStoreImpl) GetEvents(ctx context.Context, userID int64, filter contract.EventFilter) ([]schema.Event, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	var conditions []string
	var args []any
	addCondition := func(column string, value any) {
		conditions = append(conditions, fmt.Sprintf("%s = %s", column, placeholder(len(args)+1, s.backend)))
		args = append(args, value)
	}

	addCondition("user_id", userID)
	if filter.Category != "" {
		addCondition("category", string(filter.Category))
	}
	if filter.EventType != "" {
		addCondition("event_type", filter.EventType)
	}
	if filter.SinceDays > 0 {
		// Timestamps are stored as UTC RFC3339 text, so the cutoff must be
		// UTC too for the lexicographic comparison to hold.
		cutoff := time.Now().UTC().AddDate(0, 0, -filter.SinceDays).Format(time.RFC3339)
		conditions = append(conditions, fmt.Sprintf("event_timestamp >= %s", placeholder(len(args)+1, s.backend)))
		args = append(args, cutoff)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = contract.DefaultSampleLimit
	}

	query := fmt.Sprintf(
		"SELECT id, user_id, category, event_type, event_timestamp, feeling, data FROM %s WHERE %s ORDER BY event_timestamp DESC LIMIT %d",
		quoteTableName(eventsTable, s.backend), strings.Join(conditions, " AND "), limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []schema.Event
	for rows.Next() {
		var e schema.Event
		var category string
		var data *string
		if err := rows.Scan(&e.ID, &e.UserID, &category, &e.EventType, &e.Timestamp, &e.Feeling, &data); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Category = schema.Category(category)
		if e.Data, err = unmarshalJSON(data); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

// CreateEvent persists a new event and returns its ID. The NoneBackend
// silently drops the write.
func (s *EventStoreImpl) CreateEvent(ctx context.Context, event *schema.Event) (int64, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return 0, nil
	}

	data, err := marshalJSON(event.Data)
	if err != nil {
		return 0, err
	}
	args := []any{event.UserID, string(event.Category), event.EventType, event.Timestamp, event.Feeling, data}

	quotedTableName := quoteTableName(eventsTable, s.backend)
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(
			"INSERT INTO %s (user_id, category, event_type, event_timestamp, feeling, data) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
			quotedTableName)
		var id int64
		if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert event: %w", err)
		}
		return id, nil

	default: // SQLite and MySQL
		query := fmt.Sprintf(
			"INSERT INTO %s (user_id, category, event_type, event_timestamp, feeling, data) VALUES (?, ?, ?, ?, ?, ?)",
			quotedTableName)
		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert event: %w", err)
		}
		return result.LastInsertId()
	}
}
