package match

import "strings"

// Similarity scores how likely two free-text names refer to the same
// person, in [0,1]. Callers use the canonical argument ordering
// Similarity(candidateName, incomingName); the score is not guaranteed to
// be symmetric and fixtures depend on that convention.
//
// Scoring, in order:
//  1. normalized equality -> 1.0
//  2. containment of the shorter normalized string in the longer ->
//     len(shorter)/len(longer), which covers truncated suffixes and
//     nicknames folded into full names
//  3. token overlap -> |shared tokens| / max(token count a, token count b),
//     which covers reordered or partially overlapping name tokens
//
// Two empty names score 1.0; one empty name scores 0.
func Similarity(candidateName, incomingName string) float64 {
	a := Normalize(candidateName)
	b := Normalize(incomingName)
	if a == b {
		return 1.0
	}

	longer, shorter := a, b
	if len(b) > len(a) {
		longer, shorter = b, a
	}
	if len(shorter) == 0 {
		return 0
	}
	if strings.Contains(longer, shorter) {
		return float64(len(shorter)) / float64(len(longer))
	}

	tokensA := strings.Split(a, " ")
	tokensB := strings.Split(b, " ")
	setB := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		setB[t] = true
	}
	shared := 0
	seen := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		if setB[t] && !seen[t] {
			shared++
			seen[t] = true
		}
	}
	denom := len(tokensA)
	if len(tokensB) > denom {
		denom = len(tokensB)
	}
	return float64(shared) / float64(denom)
}
