package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "strips diacritics",
			input:    "José Conceição",
			expected: "jose conceicao",
		},
		{
			name:     "lowercases",
			input:    "MARIA SILVA",
			expected: "maria silva",
		},
		{
			name:     "trims and collapses whitespace",
			input:    "  Maria   da\tSilva  ",
			expected: "maria da silva",
		},
		{
			name:     "whitespace only",
			input:    "   \t ",
			expected: "",
		},
		{
			name:     "total over arbitrary text",
			input:    "João (RÉU) 123",
			expected: "joao (reu) 123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "capitalizes each word",
			input:    "JOÃO SILVA",
			expected: "João Silva",
		},
		{
			name:     "keeps particles lowercase",
			input:    "MARIA DOS SANTOS",
			expected: "Maria dos Santos",
		},
		{
			name:     "particle as first word is capitalized",
			input:    "da silva pedro",
			expected: "Da Silva Pedro",
		},
		{
			name:     "mixed particles",
			input:    "PEDRO DE OLIVEIRA NETO",
			expected: "Pedro de Oliveira Neto",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TitleCase(tt.input))
		})
	}
}

func TestNormalizeTaxID(t *testing.T) {
	assert.Equal(t, "12345678901", NormalizeTaxID("123.456.789-01"))
	assert.Equal(t, "12345678901", NormalizeTaxID(" 123 456 789 01 "))
	assert.Equal(t, "", NormalizeTaxID("no digits here"))
	assert.Equal(t, "", NormalizeTaxID(""))
}

func TestFormatCaseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already canonical",
			input:    "8000819-86.2025.8.05.0039",
			expected: "8000819-86.2025.8.05.0039",
		},
		{
			name:     "bare digits",
			input:    "80008198620258050039",
			expected: "8000819-86.2025.8.05.0039",
		},
		{
			name:     "unrecognized format passes through trimmed",
			input:    "  EP-1234/2020  ",
			expected: "EP-1234/2020",
		},
		{
			name:     "digit-less numbers keep their text",
			input:    "PROC-ABC",
			expected: "PROC-ABC",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCaseNumber(tt.input))
		})
	}
}
