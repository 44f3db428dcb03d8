// Package models defines learned correction patterns. A pattern records
// that a given raw extracted value was manually corrected, so future
// imports can apply the correction automatically.
package models

import (
	"time"

	id "docket/pkg/domain"
)

// PatternType names the field a correction applies to.
type PatternType string

const (
	// PatternTypeCategory corrects the category derived from a court name.
	PatternTypeCategory PatternType = "category"
	// PatternTypePersonName corrects a recurring misspelled party name.
	PatternTypePersonName PatternType = "person_name"
	// PatternTypeCaseClass corrects an extracted case class.
	PatternTypeCaseClass PatternType = "case_class"
	// PatternTypeCaseNumber corrects a recurring misread case number.
	PatternTypeCaseNumber PatternType = "case_number"
)

// PatternConfidence is the fixed confidence of a stored correction. A
// heuristic result below it defers to the pattern; at or above it the
// heuristic wins.
const PatternConfidence = 90

// Pattern is one learned correction, unique per (Type, NormalizedValue).
// OriginalValue keeps the raw text as received; NormalizedValue is the
// lookup key, so accent and case variants of one value share a pattern.
// TimesUsed counts how often the correction was confirmed; the raw and
// corrected fields are last-writer-wins.
type Pattern struct {
	ID                id.PatternID
	Type              PatternType
	OriginalValue     string
	NormalizedValue   string
	CorrectedValue    string
	CorrectedCategory id.CaseCategory
	TimesUsed         int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Valid reports whether the pattern type is one of the known values.
func (t PatternType) Valid() bool {
	switch t {
	case PatternTypeCategory, PatternTypePersonName, PatternTypeCaseClass, PatternTypeCaseNumber:
		return true
	}
	return false
}
