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

// PrintForecastResults outputs a forecast, dispatching based on the output
// format configured.
func PrintForecastResults(result *schema.ForecastResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForForecast(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForForecast(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printForecastTable(result, cfg, duration); err != nil {
			return fmt.Errorf("error writing forecast table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForForecast handles opening the file and calling the JSON writer.
func printJSONResultsForForecast(result *schema.ForecastResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON forecast results")
}

// printCSVResultsForForecast handles opening the file and calling the CSV writer.
func printCSVResultsForForecast(result *schema.ForecastResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"date", "capacity", "energy", "burnout_risk"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, day := range result.Days {
				row := []string{
					day.Date,
					fmt.Sprintf("%.1f", day.Capacity),
					fmt.Sprintf("%.2f", day.Energy),
					fmt.Sprintf("%.0f", day.BurnoutRisk),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV forecast results")
}

// printForecastTable prints the forecast in a four-column table plus a
// summary line with the burnout score and method.
func printForecastTable(result *schema.ForecastResult, cfg *contract.Config, duration time.Duration) error {
	if len(result.Days) == 0 {
		fmt.Println("No forecast available. Log some events first.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Date", "Capacity", "Energy", "Burnout Risk"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, day := range result.Days {
		row := []string{
			day.Date,
			fmt.Sprintf("%.1f", day.Capacity),
			fmt.Sprintf("%.2f", day.Energy),
			fmt.Sprintf("%.0f", day.BurnoutRisk),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Burnout score: %.0f/100. Method: %s. Confidence: %.2f (%s), based on %d events.\n",
		result.BurnoutScore, result.Method, result.Confidence,
		contract.GetConfidenceLabel(result.Confidence), result.BasedOnEvents)
	fmt.Printf("Forecast completed in %v. Store backend: %s\n", duration, cfg.StoreBackend)
	return nil
}
