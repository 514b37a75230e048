package cmd

import (
	"time"

	"github.com/huangsam/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// forecastCmd projects capacity and burnout risk forward.
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast daily capacity and burnout risk.",
	Long: `Project your energy series forward and estimate burnout risk.

The forecaster fits an ARIMA model to your daily energy history and falls
back to exponential smoothing when the history is too short or too flat.
Each projected day carries a 0-10 capacity band and a burnout risk score
driven by workout streaks and energy decline.

Confidence grows with the amount of history: a month of events yields a
full-confidence forecast, a few days yields a weak one.

Examples:
  # Forecast the default week ahead
  pulse forecast

  # Project two weeks with a longer lookback
  pulse forecast --horizon 14 --lookback 60

  # Machine-readable output
  pulse forecast --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		forecaster := newTunedForecaster()
		result, err := forecaster.GenerateForecast(rootCtx, cfg.UserID, cfg.HorizonDays)
		if err != nil {
			contract.LogFatal("Cannot generate forecast", err)
		}
		if err := writer.WriteForecast(result, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write forecast results", err)
		}
	},
}
