// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Pulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.EventStore, messenger contract.Messenger) *server.MCPServer {
	s := server.NewMCPServer(
		"Pulse Behavioral Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := newToolHandler(baseCfg, store, messenger)

	// --- 1. Tool: detect_patterns ---
	s.AddTool(mcp.NewTool("detect_patterns",
		mcp.WithDescription("Run the statistical pattern battery over a user's recent event history."),
		mcp.WithNumber("user_id", mcp.Description("User to analyze (defaults to the configured user).")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of events to sample.")),
	), h.handleDetectPatterns)

	// --- 2. Tool: generate_forecast ---
	s.AddTool(mcp.NewTool("generate_forecast",
		mcp.WithDescription("Project daily capacity and burnout risk over a forward horizon."),
		mcp.WithNumber("user_id", mcp.Description("User to forecast (defaults to the configured user).")),
		mcp.WithNumber("horizon_days", mcp.Description("Number of days to project. Defaults to 7.")),
	), h.handleGenerateForecast)

	// --- 3. Tool: check_interventions ---
	s.AddTool(mcp.NewTool("check_interventions",
		mcp.WithDescription("Evaluate intervention rules and return the prioritized recommendations."),
		mcp.WithNumber("user_id", mcp.Description("User to evaluate (defaults to the configured user).")),
	), h.handleCheckInterventions)

	// --- 4. Tool: run_daily_workflow ---
	s.AddTool(mcp.NewTool("run_daily_workflow",
		mcp.WithDescription("Run the full daily pipeline: detection, forecasting, and interventions."),
		mcp.WithNumber("user_id", mcp.Description("User to process (defaults to the configured user).")),
	), h.handleRunDailyWorkflow)

	// --- 5. Tool: get_status ---
	s.AddTool(mcp.NewTool("get_status",
		mcp.WithDescription("Report store connectivity, table sizes, and workflow cache freshness."),
		mcp.WithNumber("user_id", mcp.Description("User whose cache to inspect (defaults to the configured user).")),
	), h.handleGetStatus)

	return s
}

// StartMCPServer starts the Pulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.EventStore, messenger contract.Messenger) error {
	s := NewMCPServer(baseCfg, store, messenger)
	return server.ServeStdio(s)
}
