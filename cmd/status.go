package cmd

import (
	"github.com/huangsam/pulse/core"
	"github.com/huangsam/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// statusCmd shows store connectivity and workflow cache state.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store connection details and table sizes",
	Long: `Show the configured store backend, its connection health, and how
many rows each table holds, plus the workflow cache state.

Examples:
  # Check the default SQLite store
  pulse status

  # Check a remote store
  pulse status --store-backend mysql --store-db-connect $PULSE_DSN`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		storeStatus, err := eventStore.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot read store status", err)
		}

		// A fresh CLI process has no cache; the fields matter for the
		// long-lived MCP server, which reuses the same printer.
		orch := core.NewOrchestrator(eventStore, messenger)
		workflowStatus := orch.GetWorkflowStatus(cfg.UserID)

		if err := writer.WriteStatus(workflowStatus, storeStatus, cfg); err != nil {
			contract.LogFatal("Cannot write status", err)
		}
	},
}
