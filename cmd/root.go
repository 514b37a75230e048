package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/internal/nlg"
	"github.com/huangsam/pulse/internal/outwriter"
	"github.com/huangsam/pulse/internal/store"
	"github.com/huangsam/pulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// eventStore is the store opened during shared setup. Commands that skip
// sharedSetup (migrate, version) leave it nil.
var eventStore contract.EventStore

// messenger renders intervention text and parses free-text events. May stay
// nil when no language-model provider is configured.
var messenger contract.Messenger

// writer is the shared output facade.
var writer = outwriter.NewOutWriter()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "pulse",
	Short:              "Track personal behavioral events and forecast your capacity.",
	Long:               `Pulse turns a stream of workouts, tasks, meditations and moods into patterns, forecasts and timely nudges.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".pulse") // Name of config file (without extension)
		viper.SetConfigType("yaml")   // We'll use YAML format
		viper.AddConfigPath(".")      // Look in the current directory
		viper.AddConfigPath("$HOME")  // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("PULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("user", 1)
	viper.SetDefault("horizon", contract.DefaultHorizonDays)
	viper.SetDefault("limit", contract.DefaultSampleLimit)
	viper.SetDefault("lookback", contract.DefaultLookbackDays)
	viper.SetDefault("min-samples", contract.DefaultMinSamples)
	viper.SetDefault("max-interventions", contract.DefaultMaxPerRun)
	viper.SetDefault("correlation-threshold", contract.DefaultCorrelationThreshold)
	viper.SetDefault("anomaly-z-threshold", contract.DefaultAnomalyZThreshold)
	viper.SetDefault("chi-square-threshold", contract.DefaultChiSquareThreshold)
	viper.SetDefault("smoothing-alpha", contract.DefaultSmoothingAlpha)
	viper.SetDefault("output", string(schema.TextOut))
	viper.SetDefault("store-backend", string(schema.SQLiteBackend))
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("llm-provider", string(schema.NoneProvider))
	viper.SetDefault("llm-model", "")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config, runs validation, and opens the event store.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Open the event store with validated config.
	st, err := store.NewEventStore(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize event store: %w", err)
	}
	eventStore = st

	// 5. Build the language-model messenger. A none provider yields a nil
	// messenger and deterministic fallback text everywhere.
	client, err := nlg.NewClient(cfg.LLMProvider, cfg.LLMModel)
	if err != nil {
		return fmt.Errorf("failed to initialize llm client: %w", err)
	}
	messenger = nlg.NewMessenger(client)

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".pulse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Cleanup releases resources opened during setup.
func Cleanup() {
	if eventStore != nil {
		_ = eventStore.Close()
	}
}
