package schema

// StoreStatus holds status information about the event store.
type StoreStatus struct {
	Backend    string         `json:"backend"`
	Connected  bool           `json:"connected"`
	TableSizes map[string]int `json:"table_sizes,omitempty"`
}

// ParsedEvent holds the structured fields extracted from free text by the
// natural-language service. Fields the parser could not determine are empty.
type ParsedEvent struct {
	Category  Category       `json:"category"`
	EventType string         `json:"event_type"`
	Feeling   string         `json:"feeling,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}
