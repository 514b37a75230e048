package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/pulse/core"
	"github.com/huangsam/pulse/core/detect"
	"github.com/huangsam/pulse/core/forecast"
	"github.com/huangsam/pulse/core/intervene"
	"github.com/huangsam/pulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers. The
// orchestrator is shared so the workflow cache survives across tool calls
// within one server session.
type toolHandler struct {
	baseCfg   *contract.Config
	store     contract.EventStore
	messenger contract.Messenger
	orch      *core.Orchestrator
}

func newToolHandler(baseCfg *contract.Config, store contract.EventStore, messenger contract.Messenger) *toolHandler {
	return &toolHandler{
		baseCfg:   baseCfg,
		store:     store,
		messenger: messenger,
		orch:      core.NewOrchestrator(store, messenger),
	}
}

// userID resolves the tool argument, falling back to the configured user.
func (h *toolHandler) userID(request mcp.CallToolRequest) int64 {
	if id := request.GetInt("user_id", 0); id > 0 {
		return int64(id)
	}
	return h.baseCfg.UserID
}

func (h *toolHandler) handleDetectPatterns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", h.baseCfg.SampleLimit)
	if limit <= 0 || limit > contract.MaxSampleLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", contract.MaxSampleLimit)), nil
	}

	detector := detect.NewDetector(h.store)
	patterns, err := detector.DetectPatterns(ctx, h.userID(request), limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("detection failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(patterns, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGenerateForecast(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	horizon := request.GetInt("horizon_days", h.baseCfg.HorizonDays)
	if horizon < 0 {
		return mcp.NewToolResultError("horizon_days must be non-negative"), nil
	}

	forecaster := forecast.NewForecaster(h.store)
	result, err := forecaster.GenerateForecast(ctx, h.userID(request), horizon)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("forecast failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckInterventions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	engine := intervene.NewEngine(h.store, h.messenger)
	interventions, err := engine.CheckInterventions(ctx, h.userID(request), nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("intervention check failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(interventions, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRunDailyWorkflow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := h.orch.RunDailyWorkflow(ctx, h.userID(request))

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeStatus, err := h.store.GetStatus(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status check failed: %v", err)), nil
	}

	combined := map[string]any{
		"store":    storeStatus,
		"workflow": h.orch.GetWorkflowStatus(h.userID(request)),
	}
	jsonData, _ := json.MarshalIndent(combined, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
