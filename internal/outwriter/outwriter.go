// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for
// the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePatterns prints pattern detection results using the configured output format.
func (ow *OutWriter) WritePatterns(patterns []schema.Pattern, cfg *contract.Config, duration time.Duration) error {
	return PrintPatternResults(patterns, cfg, duration)
}

// WriteForecast prints a forecast using the configured output format.
func (ow *OutWriter) WriteForecast(result *schema.ForecastResult, cfg *contract.Config, duration time.Duration) error {
	return PrintForecastResults(result, cfg, duration)
}

// WriteInterventions prints interventions using the configured output format.
func (ow *OutWriter) WriteInterventions(ivs []schema.Intervention, cfg *contract.Config, duration time.Duration) error {
	return PrintInterventionResults(ivs, cfg, duration)
}

// WriteWorkflow prints a daily workflow summary.
func (ow *OutWriter) WriteWorkflow(result *schema.WorkflowResult, cfg *contract.Config) error {
	return PrintWorkflowResult(result, cfg)
}

// WriteStatus prints workflow and store status information.
func (ow *OutWriter) WriteStatus(workflow *schema.WorkflowStatus, store schema.StoreStatus, cfg *contract.Config) error {
	return PrintStatus(workflow, store, cfg)
}
