// Package municipio resolves free-text municipality names against the
// fixed catalog of municipios of the state of Hidalgo.
package municipio

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize turns arbitrary text into a comparison key: surrounding
// whitespace is trimmed, inner whitespace runs collapse to one space,
// letters are lowercased and combining accents are removed
// (e.g. "  Pachuca  de  SOTO " -> "pachuca de soto", "México" -> "mexico").
// Comparison keys are never shown to users.
func Normalize(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	result, _, _ := transform.String(stripAccents, s)
	return result
}
