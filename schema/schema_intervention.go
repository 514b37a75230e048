package schema

import "time"

// Intervention is an actionable recommendation or warning derived from rule
// evaluation. Once created it is only mutated by user feedback fields.
type Intervention struct {
	ID         int64            `json:"id"`
	UserID     int64            `json:"user_id"`
	Type       InterventionType `json:"intervention_type"`
	Urgency    Urgency          `json:"urgency"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Data       map[string]any   `json:"data,omitempty"` // supporting metrics
	CreatedAt  time.Time        `json:"created_at"`
	UserRating *int             `json:"user_rating,omitempty"` // 1-5, set by feedback
	WasHelpful *bool            `json:"was_helpful,omitempty"`
}
