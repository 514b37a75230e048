// Package parquet provides data structures and functions for exporting pulse
// pattern and intervention data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/pulse/schema"
	"github.com/parquet-go/parquet-go"
)

// PatternRecord represents a single detected pattern for columnar export.
// This struct maps to the pulse_patterns database table.
type PatternRecord struct {
	// PatternID is the unique identifier for this pattern row
	PatternID int64 `parquet:"pattern_id,snappy"`

	// UserID references the user the pattern belongs to
	UserID int64 `parquet:"user_id,snappy"`

	// PatternType is the detector family that produced the pattern
	PatternType string `parquet:"pattern_type,snappy"`

	// Description is the human-readable pattern summary
	Description string `parquet:"description,snappy"`

	// Confidence is the detection confidence in [0,1]
	Confidence float64 `parquet:"confidence,snappy"`

	// SampleSize is the number of days backing the detection
	SampleSize int32 `parquet:"sample_size,snappy"`

	// Data contains the JSON-encoded supporting statistics (nullable)
	Data *string `parquet:"data,optional,snappy"`

	// CreatedAt is when the pattern was detected (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// InterventionRecord represents a single delivered intervention for columnar export.
// This struct maps to the pulse_interventions database table.
type InterventionRecord struct {
	// InterventionID is the unique identifier for this intervention row
	InterventionID int64 `parquet:"intervention_id,snappy"`

	// UserID references the user the intervention was delivered to
	UserID int64 `parquet:"user_id,snappy"`

	// InterventionType is the delivery category (warning, suggestion, insight, forecast)
	InterventionType string `parquet:"intervention_type,snappy"`

	// Urgency is the priority band (critical, high, medium, low)
	Urgency string `parquet:"urgency,snappy"`

	// Title is the short intervention headline
	Title string `parquet:"title,snappy"`

	// Message is the full rendered intervention text
	Message string `parquet:"message,snappy"`

	// Data contains the JSON-encoded supporting metrics (nullable)
	Data *string `parquet:"data,optional,snappy"`

	// CreatedAt is when the intervention was created (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// UserRating is the 1-5 feedback rating (nullable until feedback arrives)
	UserRating *int32 `parquet:"user_rating,optional,snappy"`
}

// WritePatternsParquet writes a slice of PatternRecord structs to a Parquet file.
func WritePatternsParquet(data []PatternRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the PatternRecord struct tags
	writer := parquet.NewGenericWriter[PatternRecord](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteInterventionsParquet writes a slice of InterventionRecord structs to a Parquet file.
func WriteInterventionsParquet(data []InterventionRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the InterventionRecord struct tags
	writer := parquet.NewGenericWriter[InterventionRecord](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertPatterns converts schema.Pattern to PatternRecord for Parquet export.
func ConvertPatterns(patterns []schema.Pattern) []PatternRecord {
	result := make([]PatternRecord, len(patterns))
	for i, p := range patterns {
		result[i] = PatternRecord{
			PatternID:   p.ID,
			UserID:      p.UserID,
			PatternType: string(p.Type),
			Description: p.Description,
			Confidence:  p.Confidence,
			SampleSize:  int32(p.SampleSize),
			Data:        encodeData(p.Data),
			CreatedAt:   p.CreatedAt,
		}
	}
	return result
}

// ConvertInterventions converts schema.Intervention to InterventionRecord for Parquet export.
func ConvertInterventions(interventions []schema.Intervention) []InterventionRecord {
	result := make([]InterventionRecord, len(interventions))
	for i, iv := range interventions {
		var rating *int32
		if iv.UserRating != nil {
			r := int32(*iv.UserRating)
			rating = &r
		}
		result[i] = InterventionRecord{
			InterventionID:   iv.ID,
			UserID:           iv.UserID,
			InterventionType: string(iv.Type),
			Urgency:          string(iv.Urgency),
			Title:            iv.Title,
			Message:          iv.Message,
			Data:             encodeData(iv.Data),
			CreatedAt:        iv.CreatedAt,
			UserRating:       rating,
		}
	}
	return result
}

// encodeData serializes a metrics map to JSON, returning nil for empty maps
// so the parquet column stays null.
func encodeData(data map[string]any) *string {
	if len(data) == 0 {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}
