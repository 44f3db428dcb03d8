package domain

import dErrors "docket/pkg/domain-errors"

// CaseCategory classifies a case record by the defense assignment that
// handles it. Invariant: the value must be one of the supported categories.
//
// Usage: construct via ParseCaseCategory at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type CaseCategory string

// Supported case categories.
const (
	CategoryJury             CaseCategory = "jury"
	CategoryDomesticViolence CaseCategory = "domestic_violence"
	CategoryPenalExecution   CaseCategory = "penal_execution"
	CategorySubstitution     CaseCategory = "substitution"
)

// validCaseCategories is the single source of truth for valid categories.
var validCaseCategories = map[CaseCategory]bool{
	CategoryJury:             true,
	CategoryDomesticViolence: true,
	CategoryPenalExecution:   true,
	CategorySubstitution:     true,
}

// ParseCaseCategory constructs a CaseCategory from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseCaseCategory(s string) (CaseCategory, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "category cannot be empty")
	}
	c := CaseCategory(s)
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid category")
	}
	return c, nil
}

// IsValid checks if the category is one of the supported enum values.
func (c CaseCategory) IsValid() bool {
	return validCaseCategories[c]
}

// String returns the string representation of the category.
func (c CaseCategory) String() string {
	return string(c)
}
