package cmd

import (
	"time"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// detectCmd runs the statistical pattern battery.
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect behavioral patterns in your event history.",
	Long: `Run the full statistical battery over your recent events.

Detectors include:
- Correlation between daily workouts and completed tasks
- Association between workout days and feeling energized
- Linear trend in the daily workout count
- Moving-average shifts in workouts against the recent baseline
- Daily anomalies in workout and completed-task counts

Each finding is persisted with a confidence score and the supporting
statistics, so repeated runs build a history of what changed when.

Examples:
  # Detect patterns over the default window
  pulse detect

  # Widen the sample and lower the correlation bar
  pulse detect --limit 1000 --correlation-threshold 0.1

  # Export findings as JSON
  pulse detect --output json --output-file patterns.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		detector := newTunedDetector()
		patterns, err := detector.DetectPatterns(rootCtx, cfg.UserID, cfg.SampleLimit)
		if err != nil {
			contract.LogFatal("Cannot run pattern detection", err)
		}
		if err := writer.WritePatterns(patterns, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write pattern results", err)
		}
	},
}
