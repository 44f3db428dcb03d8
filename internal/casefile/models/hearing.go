package models

import (
	"strings"
	"time"

	id "docket/pkg/domain"
)

// HearingStatus is the lifecycle state of a scheduled hearing.
type HearingStatus string

const (
	HearingStatusScheduled   HearingStatus = "scheduled"
	HearingStatusCancelled   HearingStatus = "cancelled"
	HearingStatusRescheduled HearingStatus = "rescheduled"
	HearingStatusHeld        HearingStatus = "held"
)

// Hearing is one court appointment. CaseNumber is denormalized from the
// case so the import key (CaseNumber, ScheduledAt) resolves without a
// join.
type Hearing struct {
	ID          id.HearingID
	CaseID      id.CaseID
	PersonID    id.PersonID
	CaseNumber  string
	ScheduledAt time.Time
	HearingType string
	Category    id.CaseCategory
	Title       string
	Venue       string
	Status      HearingStatus
	Notes       string
	CreatedAt   time.Time
}

// MapImportedStatus folds the free-text status column of an import row
// onto a HearingStatus. Unrecognized text maps to scheduled.
func MapImportedStatus(raw string) HearingStatus {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lowered, "cancelad"):
		return HearingStatusCancelled
	case strings.Contains(lowered, "redesignad"), strings.Contains(lowered, "remarcad"):
		return HearingStatusRescheduled
	case strings.Contains(lowered, "realizad"):
		return HearingStatusHeld
	default:
		return HearingStatusScheduled
	}
}
