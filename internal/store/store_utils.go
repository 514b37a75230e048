package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/pulse/schema"
)

// quoteTableName returns the properly quoted table name for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// placeholder returns the n-th parameter placeholder for the backend.
// PostgreSQL numbers its parameters; SQLite and MySQL are positional.
func placeholder(n int, backend schema.DatabaseBackend) string {
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// formatTime converts a time.Time to the appropriate value for the backend.
// SQLite stores timestamps as RFC3339 text.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}

// parseTime converts a scanned created_at value back to a time.Time.
// SQLite hands back the RFC3339 text that formatTime stored; MySQL and
// PostgreSQL hand back native timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, _ := time.Parse(time.RFC3339Nano, t)
		return parsed
	case []byte:
		parsed, _ := time.Parse(time.RFC3339Nano, string(t))
		return parsed
	}
	return time.Time{}
}

// marshalJSON renders an open payload as the TEXT column value. A nil map
// stores as NULL.
func marshalJSON(m map[string]any) (any, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return string(b), nil
}

// unmarshalJSON parses a TEXT column back into an open payload. NULL and
// empty text yield a nil map.
func unmarshalJSON(s *string) (map[string]any, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(*s), &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return m, nil
}
