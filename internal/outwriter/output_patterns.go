package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintPatternResults outputs detected patterns, dispatching based on the
// output format configured.
func PrintPatternResults(patterns []schema.Pattern, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForPatterns(patterns, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForPatterns(patterns, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printPatternTable(patterns, cfg, duration); err != nil {
			return fmt.Errorf("error writing pattern table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForPatterns handles opening the file and calling the JSON writer.
func printJSONResultsForPatterns(patterns []schema.Pattern, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, patterns)
	}, "Wrote JSON pattern results")
}

// printCSVResultsForPatterns handles opening the file and calling the CSV writer.
func printCSVResultsForPatterns(patterns []schema.Pattern, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"pattern_type", "description", "confidence", "sample_size", "is_active"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, p := range patterns {
				row := []string{
					string(p.Type),
					p.Description,
					fmt.Sprintf("%.2f", p.Confidence),
					strconv.Itoa(p.SampleSize),
					strconv.FormatBool(p.IsActive),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV pattern results")
}

// printPatternTable prints patterns in a four-column table.
func printPatternTable(patterns []schema.Pattern, cfg *contract.Config, duration time.Duration) error {
	if len(patterns) == 0 {
		fmt.Println("No patterns detected. More daily history may be needed.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Type", "Description", "Confidence", "Samples"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	descWidth := GetMaxDescriptionWidth(cfg)
	var data [][]string
	for _, p := range patterns {
		row := []string{
			string(p.Type),
			truncateText(p.Description, descWidth),
			fmt.Sprintf("%.2f (%s)", p.Confidence, contract.GetConfidenceLabel(p.Confidence)),
			strconv.Itoa(p.SampleSize),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Pattern detection completed in %v. Store backend: %s\n", duration, cfg.StoreBackend)
	return nil
}
