package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/internal/parquet"
	"github.com/spf13/cobra"
)

// exportCmd writes analytics results to Parquet for external tooling.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export patterns and interventions to Parquet files",
	Long: `Export the persisted patterns and interventions as Parquet files
for analytics tooling. Run detect or workflow first to populate them.

Two files are written into the output directory:
- patterns.parquet      - every detected pattern with its statistics
- interventions.parquet - every triggered intervention with its metadata

The columnar format works directly with pandas, DuckDB, Spark, and most
BI tools.

Examples:
  # Export into the current directory
  pulse export

  # Export into a dedicated directory
  pulse export --output-file pulse-data

  # Use with DuckDB
  pulse export --output-file data
  duckdb -c "SELECT * FROM read_parquet('data/patterns.parquet') LIMIT 10"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		outDir := cfg.OutputFile
		if outDir == "" {
			outDir = "."
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			contract.LogFatal("Cannot create export directory", err)
		}

		start := time.Now()

		patterns, err := eventStore.GetRecentPatterns(rootCtx, cfg.UserID, cfg.SampleLimit)
		if err != nil {
			contract.LogFatal("Cannot load patterns for export", err)
		}

		ivs, err := eventStore.GetRecentInterventions(rootCtx, cfg.UserID, cfg.SampleLimit)
		if err != nil {
			contract.LogFatal("Cannot load interventions for export", err)
		}

		patternsPath := filepath.Join(outDir, "patterns.parquet")
		if err := parquet.WritePatternsParquet(parquet.ConvertPatterns(patterns), patternsPath); err != nil {
			contract.LogFatal("Cannot write patterns parquet", err)
		}

		interventionsPath := filepath.Join(outDir, "interventions.parquet")
		if err := parquet.WriteInterventionsParquet(parquet.ConvertInterventions(ivs), interventionsPath); err != nil {
			contract.LogFatal("Cannot write interventions parquet", err)
		}

		fmt.Printf("Exported %d patterns and %d interventions to %s in %v\n",
			len(patterns), len(ivs), outDir, time.Since(start).Round(time.Millisecond))
	},
}
