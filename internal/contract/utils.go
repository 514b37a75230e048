package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/huangsam/pulse/schema"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	MediumColor   = color.New(color.FgYellow)              // mediumColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetPlainUrgencyLabel returns the display label for an urgency.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainUrgencyLabel(u schema.Urgency) string {
	switch u {
	case schema.CriticalUrgency:
		return "Critical"
	case schema.HighUrgency:
		return "High"
	case schema.MediumUrgency:
		return "Medium"
	default:
		return "Low"
	}
}

// GetColorUrgencyLabel returns a colored urgency label for console output.
func GetColorUrgencyLabel(u schema.Urgency) string {
	text := GetPlainUrgencyLabel(u)

	switch u {
	case schema.CriticalUrgency:
		return CriticalColor.Sprint(text)
	case schema.HighUrgency:
		return HighColor.Sprint(text)
	case schema.MediumUrgency:
		return MediumColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// GetConfidenceLabel maps a [0,1] confidence to a coarse display label.
func GetConfidenceLabel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "Strong"
	case confidence >= 0.5:
		return "Moderate"
	default:
		return "Weak"
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error to stderr and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for the event store.
func GetDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pulse.db"
	}
	return filepath.Join(home, ".pulse.db")
}
