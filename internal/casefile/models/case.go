// Package models defines the case and hearing records the importer
// creates and the HTTP layer serves.
package models

import (
	"time"

	id "docket/pkg/domain"
)

// Case is a court case bound to one person. CaseNumber is stored in
// canonical CNJ punctuation when the digits fit the format, otherwise as
// the trimmed text received, so the same number always lands on one row.
type Case struct {
	ID         id.CaseID
	CaseNumber string
	Category   id.CaseCategory
	CaseClass  string
	Court      string
	PersonID   id.PersonID
	Archived   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
