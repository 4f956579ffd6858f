package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Canonical returns s in Unicode canonical composition form (NFC).
func Canonical(s string) string {
	return norm.NFC.String(s)
}

// CanonicalLine trims trailing whitespace (including the line terminator)
// and returns the NFC form of the remainder.
func CanonicalLine(line string) string {
	return Canonical(strings.TrimRightFunc(line, unicode.IsSpace))
}

// FoldLower lower-cases s with language-neutral Unicode rules and returns
// the NFC form of the result.
func FoldLower(s string) string {
	return Canonical(cases.Lower(language.Und).String(s))
}
