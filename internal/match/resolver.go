package match

import id "docket/pkg/domain"

// Tier names the decision rule that produced a match.
type Tier string

const (
	// TierIdentifier is a strong-identifier (tax id) match.
	TierIdentifier Tier = "identifier"
	// TierExact is a normalized exact-name match.
	TierExact Tier = "exact"
	// TierSimilar is a high-similarity match at or above the threshold.
	TierSimilar Tier = "similar"
	// TierNone means no acceptable match; the caller creates a new person.
	TierNone Tier = "none"
)

// Resolution is the outcome of resolving one incoming row against the
// registry. When Tier is TierNone, CreateName carries the title-cased name
// to persist; otherwise PersonID references the matched entry.
type Resolution struct {
	PersonID   id.PersonID
	Tier       Tier
	Similarity float64
	CreateName string
}

// Matched reports whether an existing person was selected.
func (r Resolution) Matched() bool {
	return r.Tier != TierNone
}

// Resolve applies the tiered decision policy, first match wins:
//
//  1. identifier: the registry already matched the row's tax id
//  2. exact: a candidate whose name normalizes equal to the incoming name
//  3. similar: the best candidate scoring >= threshold; ties break to the
//     highest similarity, then the earliest-created registry entry
//  4. none: create new, name title-cased
//
// Pure decision, no side effects, never fails on malformed input: a missing
// identifier or an empty candidate set degrades to "create new".
func Resolve(set RetrievedSet, incomingName string, threshold float64) Resolution {
	if set.ByTaxID != nil {
		return Resolution{PersonID: set.ByTaxID.ID, Tier: TierIdentifier, Similarity: 1.0}
	}

	var (
		best      *Candidate
		bestScore float64
	)
	for i := range set.Candidates {
		c := &set.Candidates[i]
		score := Similarity(c.Name, incomingName)
		if score == 1.0 {
			return Resolution{PersonID: c.ID, Tier: TierExact, Similarity: 1.0}
		}
		switch {
		case score > bestScore:
			best, bestScore = c, score
		case score == bestScore && best != nil && c.CreatedAt.Before(best.CreatedAt):
			best = c
		}
	}

	if best != nil && bestScore >= threshold && threshold > 0 {
		return Resolution{PersonID: best.ID, Tier: TierSimilar, Similarity: bestScore}
	}

	return Resolution{Tier: TierNone, CreateName: TitleCase(incomingName)}
}
