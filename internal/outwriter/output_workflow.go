package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
)

// PrintWorkflowResult outputs a daily workflow summary. JSON output is
// machine-readable; everything else prints a short human summary.
func PrintWorkflowResult(result *schema.WorkflowResult, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON workflow result")
	}

	if result.Success {
		fmt.Println("Daily workflow completed.")
	} else {
		fmt.Println("Daily workflow completed with errors.")
	}
	fmt.Printf("Patterns detected: %d\n", result.PatternsDetected)
	fmt.Printf("Forecast generated: %t\n", result.ForecastGenerated)
	fmt.Printf("Interventions triggered: %d\n", result.InterventionsTriggered)
	fmt.Printf("Execution time: %d ms\n", result.ExecutionTimeMS)
	for _, msg := range result.Errors {
		fmt.Printf("Error: %s\n", msg)
	}
	return nil
}

// PrintStatus outputs workflow cache status and store status.
func PrintStatus(workflow *schema.WorkflowStatus, store schema.StoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		combined := map[string]any{"workflow": workflow, "store": store}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, combined)
		}, "Wrote JSON status")
	}

	fmt.Printf("Store Backend: %s\n", store.Backend)
	fmt.Printf("Connected: %t\n", store.Connected)
	for table, size := range store.TableSizes {
		fmt.Printf("Table %s: %d rows\n", table, size)
	}

	fmt.Printf("Cache Available: %t\n", workflow.CacheAvailable)
	if workflow.CacheAvailable {
		if workflow.LastDailyRun != nil {
			fmt.Printf("Last Daily Run: %s\n", workflow.LastDailyRun.Format("2006-01-02 15:04:05"))
		}
		if workflow.CacheAgeHours != nil {
			fmt.Printf("Cache Age: %.1f hours\n", *workflow.CacheAgeHours)
		}
		fmt.Printf("Cached Patterns: %d\n", workflow.PatternsCount)
		fmt.Printf("Cached Interventions: %d\n", workflow.InterventionsCount)
	}
	return nil
}
