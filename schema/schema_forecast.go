package schema

// ForecastDay is one projected day of the capacity forecast.
type ForecastDay struct {
	Date        string  `json:"date"`
	Capacity    float64 `json:"capacity"` // 0-10 band
	Energy      float64 `json:"energy"`   // projected energy scalar
	BurnoutRisk float64 `json:"burnout_risk"`
}

// ForecastResult is the ephemeral output of one forecast run. It is
// recomputed on demand and only cached, never persisted by the core.
type ForecastResult struct {
	Days             []ForecastDay `json:"forecast"`
	Baseline         []float64     `json:"baseline,omitempty"` // window-3 moving average, diagnostic only
	Method           string        `json:"method"`             // name of the model that produced the projection
	Confidence       float64       `json:"confidence"`         // [0,1], scales with days of history
	BasedOnEvents    int           `json:"based_on_events"`
	BurnoutScore     float64       `json:"burnout_score"` // [0,100]
	DetectedPatterns []Pattern     `json:"detected_patterns"`
}

// EmptyForecast returns the well-formed zero-value result used when a user
// has no event history.
func EmptyForecast() *ForecastResult {
	return &ForecastResult{
		Days:             []ForecastDay{},
		Method:           "none",
		DetectedPatterns: []Pattern{},
	}
}
