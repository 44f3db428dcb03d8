// Package models defines the rows a batch import consumes and the report
// it produces.
package models

import (
	"time"

	patternservice "docket/internal/pattern/service"
	id "docket/pkg/domain"
)

// Row is one hearing extracted from an uploaded schedule. Every field is
// raw text from the source document except ScheduledAt, which the upload
// parser has already combined from the date and time columns.
type Row struct {
	CaseNumber  string    `json:"case_number"`
	PersonName  string    `json:"person_name"`
	TaxID       string    `json:"tax_id,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	HearingType string    `json:"hearing_type,omitempty"`
	Court       string    `json:"court,omitempty"`
	CaseClass   string    `json:"case_class,omitempty"`
	Subjects    string    `json:"subjects,omitempty"`
	Title       string    `json:"title,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	Status      string    `json:"status,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// RowError records why one row was skipped. Row indices are zero-based
// positions in the submitted batch.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Report aggregates the outcome of one batch. Rows are counted exactly
// once: imported, duplicate, or errored.
type Report struct {
	TotalRows         int                           `json:"total_rows"`
	Imported          int                           `json:"imported"`
	Duplicates        int                           `json:"duplicates"`
	NewPersonsCreated int                           `json:"new_persons_created"`
	Errors            []RowError                    `json:"errors"`
	Disagreements     []patternservice.Disagreement `json:"disagreements,omitempty"`
}

// Run is a persisted import execution with its report.
type Run struct {
	ID         id.RunID
	StartedAt  time.Time
	FinishedAt time.Time
	Report     Report
}
