// Package match implements name normalization, similarity scoring, and the
// tiered person-resolution policy used by the batch importer.
package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// particles are name connectives kept lower-case by TitleCase, matching how
// registry names are formatted on creation ("Maria da Silva", not
// "Maria Da Silva").
var particles = map[string]bool{
	"da": true, "de": true, "do": true, "das": true, "dos": true, "e": true,
}

// Normalize canonicalizes a free-text name for comparison: diacritics
// removed, lower-cased, trimmed, internal whitespace collapsed to single
// spaces. Total over arbitrary input.
func Normalize(name string) string {
	stripped := stripDiacritics(name)
	fields := strings.Fields(strings.ToLower(stripped))
	return strings.Join(fields, " ")
}

// stripDiacritics decomposes to NFD and drops combining marks, so
// "José" and "Jose" normalize identically.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TitleCase formats a raw name for persistence: each word capitalized,
// name particles kept lower-case except in first position.
func TitleCase(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		if i > 0 && particles[w] {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// NormalizeTaxID strips everything but digits from a tax identifier, the
// canonical form under which persons are uniquely keyed.
func NormalizeTaxID(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var caseNumberPattern = regexp.MustCompile(`(\d{7})-?(\d{2})\.?(\d{4})\.?(\d)\.?(\d{2})\.?(\d{4})`)

// FormatCaseNumber re-emits a case number in canonical CNJ punctuation
// (NNNNNNN-DD.AAAA.J.TR.OOOO) when the digits fit the format, so
// punctuation variants of one number converge on a single key. Returns
// the trimmed input unchanged when they don't: two distinct non-CNJ
// numbers must never collapse. Formatting never rejects a row.
func FormatCaseNumber(s string) string {
	cleaned := strings.TrimSpace(s)
	m := caseNumberPattern.FindStringSubmatch(strings.ReplaceAll(cleaned, " ", ""))
	if m == nil {
		return cleaned
	}
	return m[1] + "-" + m[2] + "." + m[3] + "." + m[4] + "." + m[5] + "." + m[6]
}
