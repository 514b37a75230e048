package contract

import (
	"testing"

	"github.com/huangsam/pulse/schema"
	"github.com/stretchr/testify/assert"
)

// validInput returns a raw input that passes validation unchanged.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		UserID:               1,
		HorizonDays:          DefaultHorizonDays,
		SampleLimit:          DefaultSampleLimit,
		Output:               "text",
		Color:                "yes",
		StoreBackend:         "sqlite",
		LLMProvider:          "none",
		MinSamples:           DefaultMinSamples,
		CorrelationThreshold: DefaultCorrelationThreshold,
		AnomalyZThreshold:    DefaultAnomalyZThreshold,
		ChiSquareThreshold:   DefaultChiSquareThreshold,
		LookbackDays:         DefaultLookbackDays,
		SmoothingAlpha:       DefaultSmoothingAlpha,
		MaxPerRun:            DefaultMaxPerRun,
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	err := ProcessAndValidate(cfg, validInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(1), cfg.UserID)
	assert.Equal(t, DefaultHorizonDays, cfg.HorizonDays)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.Equal(t, schema.NoneProvider, cfg.LLMProvider)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"zero user", func(in *ConfigRawInput) { in.UserID = 0 }},
		{"negative horizon", func(in *ConfigRawInput) { in.HorizonDays = -3 }},
		{"zero lookback", func(in *ConfigRawInput) { in.LookbackDays = 0 }},
		{"excessive limit", func(in *ConfigRawInput) { in.SampleLimit = MaxSampleLimit + 1 }},
		{"tiny min samples", func(in *ConfigRawInput) { in.MinSamples = 1 }},
		{"bad alpha", func(in *ConfigRawInput) { in.SmoothingAlpha = 1.5 }},
		{"bad correlation threshold", func(in *ConfigRawInput) { in.CorrelationThreshold = 2 }},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"bad backend", func(in *ConfigRawInput) { in.StoreBackend = "mongo" }},
		{"bad provider", func(in *ConfigRawInput) { in.LLMProvider = "palm" }},
		{"zero max interventions", func(in *ConfigRawInput) { in.MaxPerRun = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			err := ProcessAndValidate(&Config{}, in)
			assert.Error(t, err)
		})
	}
}

func TestProcessAndValidateEmptyProviderDefaultsToNone(t *testing.T) {
	in := validInput()
	in.LLMProvider = ""
	cfg := &Config{}

	assert.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, schema.NoneProvider, cfg.LLMProvider)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{UserID: 7, HorizonDays: 7}
	clone := cfg.Clone()
	clone.UserID = 8

	assert.Equal(t, int64(7), cfg.UserID)
	assert.Equal(t, int64(8), clone.UserID)
}

func TestUrgencyLabels(t *testing.T) {
	assert.Equal(t, "Critical", GetPlainUrgencyLabel(schema.CriticalUrgency))
	assert.Equal(t, "High", GetPlainUrgencyLabel(schema.HighUrgency))
	assert.Equal(t, "Medium", GetPlainUrgencyLabel(schema.MediumUrgency))
	assert.Equal(t, "Low", GetPlainUrgencyLabel(schema.LowUrgency))
	assert.Equal(t, "Low", GetPlainUrgencyLabel(schema.Urgency("mystery")))
}

func TestConfidenceLabel(t *testing.T) {
	assert.Equal(t, "Strong", GetConfidenceLabel(0.85))
	assert.Equal(t, "Moderate", GetConfidenceLabel(0.6))
	assert.Equal(t, "Weak", GetConfidenceLabel(0.2))
}
