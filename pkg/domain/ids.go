// Package domain holds typed identifiers shared across the module.
//
// Each registry entity gets its own UUID-backed type so the compiler keeps
// person, case, hearing, pattern, and run identifiers from crossing wires.
package domain

import (
	"github.com/google/uuid"

	dErrors "docket/pkg/domain-errors"
)

type (
	// PersonID identifies an assisted individual in the person registry.
	PersonID uuid.UUID
	// CaseID identifies a case record.
	CaseID uuid.UUID
	// HearingID identifies an imported scheduled-record entry.
	HearingID uuid.UUID
	// PatternID identifies a learned correction pattern.
	PatternID uuid.UUID
	// RunID identifies a batch import run.
	RunID uuid.UUID
)

func (id PersonID) String() string  { return uuid.UUID(id).String() }
func (id CaseID) String() string    { return uuid.UUID(id).String() }
func (id HearingID) String() string { return uuid.UUID(id).String() }
func (id PatternID) String() string { return uuid.UUID(id).String() }
func (id RunID) String() string     { return uuid.UUID(id).String() }

func (id PersonID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id CaseID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id HearingID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id PatternID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id RunID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }

// NewPersonID returns a fresh random person identifier.
func NewPersonID() PersonID { return PersonID(uuid.New()) }

// NewCaseID returns a fresh random case identifier.
func NewCaseID() CaseID { return CaseID(uuid.New()) }

// NewHearingID returns a fresh random hearing identifier.
func NewHearingID() HearingID { return HearingID(uuid.New()) }

// NewPatternID returns a fresh random pattern identifier.
func NewPatternID() PatternID { return PatternID(uuid.New()) }

// NewRunID returns a fresh random run identifier.
func NewRunID() RunID { return RunID(uuid.New()) }

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id cannot be empty", kind)
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id is not a valid UUID", kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id cannot be the nil UUID", kind)
	}
	return parsed, nil
}

// ParsePersonID parses and validates a person ID from its string form.
func ParsePersonID(raw string) (PersonID, error) {
	parsed, err := parseUUID(raw, "person")
	return PersonID(parsed), err
}

// ParseCaseID parses and validates a case ID from its string form.
func ParseCaseID(raw string) (CaseID, error) {
	parsed, err := parseUUID(raw, "case")
	return CaseID(parsed), err
}

// ParseHearingID parses and validates a hearing ID from its string form.
func ParseHearingID(raw string) (HearingID, error) {
	parsed, err := parseUUID(raw, "hearing")
	return HearingID(parsed), err
}

// ParsePatternID parses and validates a pattern ID from its string form.
func ParsePatternID(raw string) (PatternID, error) {
	parsed, err := parseUUID(raw, "pattern")
	return PatternID(parsed), err
}

// ParseRunID parses and validates a run ID from its string form.
func ParseRunID(raw string) (RunID, error) {
	parsed, err := parseUUID(raw, "run")
	return RunID(parsed), err
}
