package normalize

import (
	"strings"
	"unicode"
)

// Trailing tokens stripped from the loose form. Keep in sync with the
// snapshot builder, which extends this set.
var legalSuffixes = map[string]bool{
	"ltd":          true,
	"limited":      true,
	"plc":          true,
	"llp":          true,
	"lp":           true,
	"inc":          true,
	"incorporated": true,
	"co":           true,
	"company":      true,
	"corp":         true,
	"corporation":  true,
	"llc":          true,
	"gmbh":         true,
	"sa":           true,
	"sarl":         true,
}

// Strict lowercases, expands "&" to "and", replaces anything that is not a
// letter, digit or whitespace with a space and squeezes runs of whitespace.
// Total and idempotent; empty in means empty out.
func Strict(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Loose is Strict plus stripping trailing legal-entity suffixes
// ("acme widgets ltd" -> "acme widgets").
func Loose(s string) string {
	return StripSuffixes(Strict(s), legalSuffixes)
}

// StripSuffixes pops trailing tokens while they appear in the given set.
func StripSuffixes(cleaned string, suffixes map[string]bool) string {
	if cleaned == "" {
		return ""
	}
	tokens := strings.Split(cleaned, " ")
	for len(tokens) > 0 && suffixes[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

func Tokens(s string) []string {
	return strings.Fields(s)
}
