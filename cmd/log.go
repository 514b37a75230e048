package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/pulse/core"
	"github.com/huangsam/pulse/internal/contract"
	"github.com/huangsam/pulse/internal/nlg"
	"github.com/huangsam/pulse/schema"
	"github.com/spf13/cobra"
)

// logCmd records a free-text event and runs the fast intervention check.
var logCmd = &cobra.Command{
	Use:   "log [text]",
	Short: "Log an event in plain language.",
	Long: `Record what you just did as a plain sentence.

The text is parsed into a structured event (category, type, feeling) using
the configured language model, or a keyword parser when no model is set.
After the write, a fast rule check runs over your most recent events and
prints immediate feedback if anything urgent fires.

Examples:
  # Log a workout
  pulse log "morning run, feeling energized"

  # Log a completed task
  pulse log "shipped the quarterly report, exhausted"

  # Log a meditation session
  pulse log "20 minutes of breathwork"`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		text := strings.Join(args, " ")

		var parsed schema.ParsedEvent
		if messenger != nil {
			p, err := messenger.ParseEvent(rootCtx, text)
			if err != nil {
				contract.LogFatal("Cannot parse event text", err)
			}
			parsed = p
		} else {
			parsed = nlg.ParseEventKeywords(text)
		}

		event := schema.Event{
			UserID:    cfg.UserID,
			Category:  parsed.Category,
			EventType: parsed.EventType,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Feeling:   parsed.Feeling,
			Data:      parsed.Data,
		}
		id, err := eventStore.CreateEvent(rootCtx, &event)
		if err != nil {
			contract.LogFatal("Cannot store event", err)
		}
		event.ID = id
		fmt.Printf("Logged %s/%s event #%d\n", event.Category, event.EventType, id)

		orch := core.NewOrchestrator(eventStore, messenger)
		orch.Tune(cfg)
		check := orch.RunEventTriggeredWorkflow(rootCtx, cfg.UserID, event)
		if check.ImmediateFeedback != nil {
			iv := check.ImmediateFeedback
			label := contract.GetPlainUrgencyLabel(iv.Urgency)
			if cfg.UseColors {
				label = contract.GetColorUrgencyLabel(iv.Urgency)
			}
			fmt.Printf("\n%s %s: %s\n", label, iv.Title, iv.Message)
		}
	},
}
