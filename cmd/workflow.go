package cmd

import (
	"github.com/huangsam/pulse/core"
	"github.com/huangsam/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// workflowCmd runs the full daily pipeline in one shot.
var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Run the daily pipeline: detect, forecast, intervene.",
	Long: `Run every analytics stage in order and report what happened.

The daily workflow:
1. Detects patterns over your recent history
2. Generates a fresh capacity forecast
3. Checks intervention rules against the combined results

Each stage is isolated: a failure in one stage is recorded and the rest
still run, so a partial run still produces useful output. The run itself
is recorded in the store for auditing.

Examples:
  # Run the full pipeline
  pulse workflow

  # Run against a PostgreSQL store
  pulse workflow --store-backend postgresql --store-db-connect $PULSE_DSN`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		orch := core.NewOrchestrator(eventStore, messenger)
		orch.Tune(cfg)
		result := orch.RunDailyWorkflow(rootCtx, cfg.UserID)
		if err := writer.WriteWorkflow(result, cfg); err != nil {
			contract.LogFatal("Cannot write workflow results", err)
		}
	},
}
