package contract

import (
	"fmt"
	"strings"

	"github.com/huangsam/pulse/schema"
)

// Default values for configuration.
const (
	DefaultHorizonDays  = 7
	DefaultLookbackDays = 30
	DefaultSampleLimit  = 365
	MaxSampleLimit      = 10000
	DefaultMinSamples   = 6
	DefaultMaxPerRun    = 5
	DefaultRecentLimit  = 10 // events fetched by the event-triggered fast path
)

// Default detector and forecaster thresholds. These are heuristics, not
// formal significance tests, and can be tuned from config.
const (
	DefaultCorrelationThreshold = 0.2
	DefaultAnomalyZThreshold    = 1.5
	DefaultChiSquareThreshold   = 3.84 // ~p=0.05 for df=1
	DefaultSmoothingAlpha       = 0.3
)

// Config holds the runtime configuration for the pipeline.
// This struct remains the "final, validated" config.
type Config struct {
	UserID      int64
	HorizonDays int
	SampleLimit int

	Output     schema.OutputMode
	OutputFile string
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	LLMProvider schema.LLMProvider
	LLMModel    string

	// Detector tuning.
	MinSamples           int
	CorrelationThreshold float64
	AnomalyZThreshold    float64
	ChiSquareThreshold   float64

	// Forecaster tuning.
	LookbackDays   int
	SmoothingAlpha float64

	// Intervention engine tuning.
	MaxPerRun int
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	UserID      int64  `mapstructure:"user"`
	HorizonDays int    `mapstructure:"horizon"`
	SampleLimit int    `mapstructure:"limit"`
	Output      string `mapstructure:"output"`
	OutputFile  string `mapstructure:"output-file"`
	Color       string `mapstructure:"color"`
	Width       int    `mapstructure:"width"`

	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	LLMProvider string `mapstructure:"llm-provider"`
	LLMModel    string `mapstructure:"llm-model"`

	MinSamples           int     `mapstructure:"min-samples"`
	CorrelationThreshold float64 `mapstructure:"correlation-threshold"`
	AnomalyZThreshold    float64 `mapstructure:"anomaly-z-threshold"`
	ChiSquareThreshold   float64 `mapstructure:"chi-square-threshold"`
	LookbackDays         int     `mapstructure:"lookback"`
	SmoothingAlpha       float64 `mapstructure:"smoothing-alpha"`
	MaxPerRun            int     `mapstructure:"max-interventions"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Invalid caller input is the one error
// class that propagates; everything downstream degrades instead.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. User ---
	if input.UserID <= 0 {
		return fmt.Errorf("user must be a positive id (received %d)", input.UserID)
	}
	cfg.UserID = input.UserID

	// --- 2. Horizon / lookback / limits ---
	if input.HorizonDays <= 0 {
		return fmt.Errorf("horizon must be greater than 0 (received %d)", input.HorizonDays)
	}
	cfg.HorizonDays = input.HorizonDays

	if input.LookbackDays <= 0 {
		return fmt.Errorf("lookback must be greater than 0 (received %d)", input.LookbackDays)
	}
	cfg.LookbackDays = input.LookbackDays

	if input.SampleLimit <= 0 || input.SampleLimit > MaxSampleLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxSampleLimit, input.SampleLimit)
	}
	cfg.SampleLimit = input.SampleLimit

	if input.MinSamples < 2 {
		return fmt.Errorf("min-samples must be at least 2 (received %d)", input.MinSamples)
	}
	cfg.MinSamples = input.MinSamples

	if input.MaxPerRun <= 0 {
		return fmt.Errorf("max-interventions must be greater than 0 (received %d)", input.MaxPerRun)
	}
	cfg.MaxPerRun = input.MaxPerRun

	// --- 3. Thresholds ---
	if input.SmoothingAlpha <= 0 || input.SmoothingAlpha > 1 {
		return fmt.Errorf("smoothing-alpha must be in (0,1] (received %g)", input.SmoothingAlpha)
	}
	cfg.SmoothingAlpha = input.SmoothingAlpha

	if input.CorrelationThreshold < 0 || input.CorrelationThreshold > 1 {
		return fmt.Errorf("correlation-threshold must be in [0,1] (received %g)", input.CorrelationThreshold)
	}
	cfg.CorrelationThreshold = input.CorrelationThreshold

	if input.AnomalyZThreshold <= 0 {
		return fmt.Errorf("anomaly-z-threshold must be greater than 0 (received %g)", input.AnomalyZThreshold)
	}
	cfg.AnomalyZThreshold = input.AnomalyZThreshold

	if input.ChiSquareThreshold <= 0 {
		return fmt.Errorf("chi-square-threshold must be greater than 0 (received %g)", input.ChiSquareThreshold)
	}
	cfg.ChiSquareThreshold = input.ChiSquareThreshold

	// --- 4. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.UseColors = strings.ToLower(input.Color) != "no"
	cfg.Width = input.Width

	// --- 5. Store Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, or none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect

	// --- 6. LLM Provider Validation ---
	provider := input.LLMProvider
	if provider == "" {
		provider = string(schema.NoneProvider)
	}
	cfg.LLMProvider = schema.LLMProvider(strings.ToLower(provider))
	if _, ok := schema.ValidLLMProviders[cfg.LLMProvider]; !ok {
		return fmt.Errorf("invalid llm provider '%s'. must be openai, ollama, or none", input.LLMProvider)
	}
	cfg.LLMModel = input.LLMModel

	return nil
}

// Clone returns a copy of the config for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
