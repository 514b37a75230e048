package mcp_test

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/pulse/internal/contract"
	mcp_internal "github.com/huangsam/pulse/internal/mcp"
	"github.com/huangsam/pulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		UserID:      1,
		HorizonDays: contract.DefaultHorizonDays,
		SampleLimit: contract.DefaultSampleLimit,
	}

	store := &contract.MockEventStore{}
	s := mcp_internal.NewMCPServer(baseCfg, store, nil)

	ctx := context.Background()

	t.Run("detect_patterns rejects oversized limit", func(t *testing.T) {
		tool := s.GetTool("detect_patterns")
		require.NotNil(t, tool, "Tool detect_patterns should exist")

		req := newToolRequest("detect_patterns", map[string]any{
			"limit": 50000.0,
		})

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "limit must be between")
	})

	t.Run("generate_forecast rejects negative horizon", func(t *testing.T) {
		tool := s.GetTool("generate_forecast")
		require.NotNil(t, tool, "Tool generate_forecast should exist")

		req := newToolRequest("generate_forecast", map[string]any{
			"horizon_days": -3.0,
		})

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "non-negative")
	})
}

func TestMCPServerHandlers_StoreFailure(t *testing.T) {
	baseCfg := &contract.Config{
		UserID:      1,
		SampleLimit: contract.DefaultSampleLimit,
	}

	store := &contract.MockEventStore{}
	store.On("GetEvents", mock.Anything, int64(1), mock.Anything).
		Return(nil, errors.New("connection refused"))

	s := mcp_internal.NewMCPServer(baseCfg, store, nil)

	tool := s.GetTool("detect_patterns")
	require.NotNil(t, tool)

	res, err := tool.Handler(context.Background(), newToolRequest("detect_patterns", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "detection failed")
}

func TestMCPServerHandlers_GetStatus(t *testing.T) {
	baseCfg := &contract.Config{UserID: 1}

	store := &contract.MockEventStore{}
	store.On("GetStatus", mock.Anything).Return(schema.StoreStatus{
		Backend:    string(schema.SQLiteBackend),
		Connected:  true,
		TableSizes: map[string]int{"pulse_events": 42},
	}, nil)

	s := mcp_internal.NewMCPServer(baseCfg, store, nil)

	tool := s.GetTool("get_status")
	require.NotNil(t, tool)

	res, err := tool.Handler(context.Background(), newToolRequest("get_status", map[string]any{}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "pulse_events")
	assert.Contains(t, text, "\"connected\": true")
	assert.Contains(t, text, "\"cache_available\": false")
}

func TestMCPServerToolInventory(t *testing.T) {
	baseCfg := &contract.Config{UserID: 1}
	s := mcp_internal.NewMCPServer(baseCfg, &contract.MockEventStore{}, nil)

	for _, name := range []string{
		"detect_patterns",
		"generate_forecast",
		"check_interventions",
		"run_daily_workflow",
		"get_status",
	} {
		assert.NotNil(t, s.GetTool(name), "Tool %s should be registered", name)
	}
}
