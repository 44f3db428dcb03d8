package match

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	id "docket/pkg/domain"
)

// MaxCandidateLimit is the hard cap on candidates fetched per row. The
// retriever must never return the full registry; batch latency stays
// linear in row count because of this bound.
const MaxCandidateLimit = 20

// defaultCandidateLimit applies when a caller passes a non-positive limit.
const defaultCandidateLimit = 10

// Candidate is a registry entry under consideration for a match.
type Candidate struct {
	ID        id.PersonID
	Name      string
	TaxID     string
	CreatedAt time.Time
}

// Registry is the narrow read surface the retriever needs from the person
// registry. Absence is expressed as (nil, nil), not an error.
type Registry interface {
	FindByTaxID(ctx context.Context, taxID string) (*Candidate, error)
	FindCandidatesByNamePrefix(ctx context.Context, prefix string, limit int) ([]Candidate, error)
}

// RetrievedSet is the bounded pre-filter output handed to Resolve.
type RetrievedSet struct {
	// ByTaxID is the exact identifier match, when the row carried a tax id
	// and the registry holds it.
	ByTaxID *Candidate
	// Candidates are prefix-filtered entries for similarity scoring.
	Candidates []Candidate
}

// Retriever performs the cheap recall-oriented candidate query; precision
// is the resolver's job.
type Retriever struct {
	registry Registry
	limit    int
}

// NewRetriever builds a retriever over the given registry. limit bounds
// candidate fetches and is clamped to MaxCandidateLimit.
func NewRetriever(registry Registry, limit int) (*Retriever, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if limit <= 0 {
		limit = defaultCandidateLimit
	}
	if limit > MaxCandidateLimit {
		limit = MaxCandidateLimit
	}
	return &Retriever{registry: registry, limit: limit}, nil
}

// Retrieve fetches the identifier match and the name-prefix candidate set
// for one incoming row. The two registry lookups are independent and run
// in parallel. An empty tax id skips the identifier lookup; an empty name
// skips the candidate query.
func (r *Retriever) Retrieve(ctx context.Context, rawName, taxID string) (RetrievedSet, error) {
	var set RetrievedSet

	g, gctx := errgroup.WithContext(ctx)

	if normalized := NormalizeTaxID(taxID); normalized != "" {
		g.Go(func() error {
			found, err := r.registry.FindByTaxID(gctx, normalized)
			if err != nil {
				return fmt.Errorf("tax id lookup: %w", err)
			}
			set.ByTaxID = found
			return nil
		})
	}

	if prefix := firstToken(rawName); prefix != "" {
		g.Go(func() error {
			candidates, err := r.registry.FindCandidatesByNamePrefix(gctx, prefix, r.limit)
			if err != nil {
				return fmt.Errorf("candidate lookup: %w", err)
			}
			if len(candidates) > r.limit {
				candidates = candidates[:r.limit]
			}
			set.Candidates = candidates
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RetrievedSet{}, err
	}
	return set, nil
}

func firstToken(rawName string) string {
	normalized := Normalize(rawName)
	if normalized == "" {
		return ""
	}
	if i := strings.IndexByte(normalized, ' '); i > 0 {
		return normalized[:i]
	}
	return normalized
}
