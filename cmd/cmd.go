// Package cmd defines the command-line interface for pulse.
package cmd

import (
	"github.com/huangsam/pulse/core/detect"
	"github.com/huangsam/pulse/core/forecast"
	"github.com/huangsam/pulse/core/intervene"
	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(interventionsCmd)
	rootCmd.AddCommand(workflowCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int64P("user", "u", 1, "User id to operate on")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultSampleLimit, "Maximum number of events to sample")
	rootCmd.PersistentFlags().Int("lookback", contract.DefaultLookbackDays, "Days of history to consider")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("llm-provider", string(schema.NoneProvider), "Language model provider: openai or ollama or none")
	rootCmd.PersistentFlags().String("llm-model", "", "Language model name (e.g., gpt-4o-mini, llama3)")
	rootCmd.PersistentFlags().Int("min-samples", contract.DefaultMinSamples, "Minimum days of history before detectors run")
	rootCmd.PersistentFlags().Float64("correlation-threshold", contract.DefaultCorrelationThreshold, "Minimum absolute correlation to report")
	rootCmd.PersistentFlags().Float64("anomaly-z-threshold", contract.DefaultAnomalyZThreshold, "Z-score magnitude that counts as an anomaly")
	rootCmd.PersistentFlags().Float64("chi-square-threshold", contract.DefaultChiSquareThreshold, "Chi-square statistic needed for an association")
	rootCmd.PersistentFlags().Float64("smoothing-alpha", contract.DefaultSmoothingAlpha, "Exponential smoothing factor in (0,1]")
	rootCmd.PersistentFlags().Int("max-interventions", contract.DefaultMaxPerRun, "Maximum interventions delivered per run")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of forecastCmd to Viper
	forecastCmd.Flags().Int("horizon", contract.DefaultHorizonDays, "Number of days to project forward")
	if err := viper.BindPFlags(forecastCmd.Flags()); err != nil {
		contract.LogFatal("Error binding forecast flags", err)
	}

	// Bind all flags of migrateCmd to Viper
	migrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}

// newTunedDetector builds a detector with the validated config thresholds.
func newTunedDetector() *detect.Detector {
	d := detect.NewDetector(eventStore)
	d.MinSamples = cfg.MinSamples
	d.CorrelationThreshold = cfg.CorrelationThreshold
	d.AnomalyZThreshold = cfg.AnomalyZThreshold
	d.ChiSquareThreshold = cfg.ChiSquareThreshold
	return d
}

// newTunedForecaster builds a forecaster with the validated config tuning.
func newTunedForecaster() *forecast.Forecaster {
	f := forecast.NewForecaster(eventStore)
	f.LookbackDays = cfg.LookbackDays
	f.SampleLimit = cfg.SampleLimit
	f.SetSmoothingAlpha(cfg.SmoothingAlpha)
	return f
}

// newTunedEngine builds an intervention engine with the validated config caps.
func newTunedEngine() *intervene.Engine {
	e := intervene.NewEngine(eventStore, messenger)
	e.MaxPerRun = cfg.MaxPerRun
	e.SampleLimit = cfg.SampleLimit
	return e
}
