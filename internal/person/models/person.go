// Package models defines the person records shared by the matching,
// import, and storage layers.
package models

import (
	"time"

	id "docket/pkg/domain"
)

// Person is a party registered in the docket. NormalizedName is the
// accent-stripped, case-folded form of DisplayName and is the only field
// name matching ever reads. TaxID is empty when the party has no
// registered identifier.
type Person struct {
	ID              id.PersonID
	DisplayName     string
	NormalizedName  string
	TaxID           string
	PrimaryCategory id.CaseCategory
	FolderRef       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
