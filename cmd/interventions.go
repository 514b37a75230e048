package cmd

import (
	"time"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// interventionsCmd evaluates the rule set and prints recommendations.
var interventionsCmd = &cobra.Command{
	Use:   "interventions",
	Short: "Check which interventions your recent behavior triggers.",
	Long: `Evaluate every intervention rule against your recent events.

Rules cover:
- Overtraining warnings after a week of consecutive workouts
- Burnout alerts when the forecast risk crosses 70
- Optimal timing suggestions when you feel better than baseline
- Meditation gap nudges after three days without practice
- Insights surfaced from high-confidence patterns
- Streak celebrations at seven consecutive days

Results are ranked by urgency, deduplicated per type, and capped per run
so a bad week doesn't bury you in nudges.

Examples:
  # See current recommendations
  pulse interventions

  # Allow more interventions per run
  pulse interventions --max-interventions 10

  # Render messages with a local model
  pulse interventions --llm-provider ollama --llm-model llama3`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		engine := newTunedEngine()
		ivs, err := engine.CheckInterventions(rootCtx, cfg.UserID, nil)
		if err != nil {
			contract.LogFatal("Cannot check interventions", err)
		}
		if err := writer.WriteInterventions(ivs, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write intervention results", err)
		}
	},
}
