package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{
			name:     "identical names",
			a:        "Maria Silva",
			b:        "Maria Silva",
			expected: 1.0,
		},
		{
			name:     "identical after normalization",
			a:        "JOSÉ  SANTOS",
			b:        "jose santos",
			expected: 1.0,
		},
		{
			name:     "containment returns length ratio",
			a:        "maria silva santos",
			b:        "maria silva",
			expected: 11.0 / 18.0,
		},
		{
			name:     "containment is order-insensitive over argument length",
			a:        "maria silva",
			b:        "maria silva santos",
			expected: 11.0 / 18.0,
		},
		{
			name:     "token overlap",
			a:        "Maria Silva Santos",
			b:        "Maria Santos Pereira",
			expected: 2.0 / 3.0,
		},
		{
			name:     "no shared tokens and no containment",
			a:        "Pedro Oliveira",
			b:        "Ana Costa",
			expected: 0,
		},
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 1.0,
		},
		{
			name:     "one empty",
			a:        "Maria",
			b:        "",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

// TestSimilarity_Reflexive covers the property similarity(n, n) == 1.0 for
// arbitrary names.
func TestSimilarity_Reflexive(t *testing.T) {
	names := []string{
		"Maria da Silva",
		"JOÃO PEDRO DOS SANTOS",
		"a",
		"  spaced   out  name ",
		"",
	}
	for _, n := range names {
		assert.Equal(t, 1.0, Similarity(n, n), "name %q", n)
	}
}

// TestSimilarity_NameVariant pins the score the import scenario depends
// on: "Maria da Silva" against stored "Maria Silva" clears a 0.6 threshold.
func TestSimilarity_NameVariant(t *testing.T) {
	got := Similarity("Maria Silva", "Maria da Silva")
	assert.Greater(t, got, 0.6)
	assert.Less(t, got, 1.0)
}
