package cmd

import (
	"github.com/huangsam/pulse/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Pulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to run detection, forecasting, and intervention checks via standard tools.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, eventStore, messenger)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
