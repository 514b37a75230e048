package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintInterventionResults outputs interventions, dispatching based on the
// output format configured.
func PrintInterventionResults(ivs []schema.Intervention, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForInterventions(ivs, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForInterventions(ivs, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printInterventionTable(ivs, cfg, duration); err != nil {
			return fmt.Errorf("error writing intervention table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForInterventions handles opening the file and calling the JSON writer.
func printJSONResultsForInterventions(ivs []schema.Intervention, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, ivs)
	}, "Wrote JSON intervention results")
}

// printCSVResultsForInterventions handles opening the file and calling the CSV writer.
func printCSVResultsForInterventions(ivs []schema.Intervention, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"intervention_type", "urgency", "title", "message"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, iv := range ivs {
				row := []string{
					string(iv.Type),
					contract.GetPlainUrgencyLabel(iv.Urgency),
					iv.Title,
					iv.Message,
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV intervention results")
}

// printInterventionTable prints interventions in a four-column table with
// colored urgency labels when colors are enabled.
func printInterventionTable(ivs []schema.Intervention, cfg *contract.Config, duration time.Duration) error {
	if len(ivs) == 0 {
		fmt.Println("No interventions triggered. Nothing needs your attention right now.")
		return nil
	}

	urgencyLabel := contract.GetPlainUrgencyLabel
	if cfg.UseColors {
		urgencyLabel = contract.GetColorUrgencyLabel
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Urgency", "Type", "Title", "Message"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	msgWidth := GetMaxDescriptionWidth(cfg)
	var data [][]string
	for _, iv := range ivs {
		row := []string{
			urgencyLabel(iv.Urgency),
			string(iv.Type),
			iv.Title,
			truncateText(iv.Message, msgWidth),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Intervention check completed in %v. Store backend: %s\n", duration, cfg.StoreBackend)
	return nil
}
