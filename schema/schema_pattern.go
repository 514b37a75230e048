package schema

import "time"

// Pattern is a persisted statistical finding. A pattern is a point-in-time
// record: re-running detection emits new rows rather than updating old ones.
type Pattern struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	Type        PatternType    `json:"pattern_type"`
	Description string         `json:"description"`
	Confidence  float64        `json:"confidence"` // always clamped to [0,1]
	SampleSize  int            `json:"sample_size"`
	Data        map[string]any `json:"data,omitempty"` // supporting statistics
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
}
