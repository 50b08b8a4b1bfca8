// Package slug converts display names into URL path segments.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned when a name has no ASCII letters or digits left after normalization.
const Fallback = "listing"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases s, strips diacritics, and joins the remaining
// alphanumeric runs with single hyphens.
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = removeAccents(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return Fallback
	}
	return s
}

// WithSuffix appends a numeric suffix for disambiguating duplicate slugs.
// A suffix below 2 returns s unchanged.
func WithSuffix(s string, n int) string {
	if n < 2 {
		return s
	}
	return s + "-" + strconv.Itoa(n)
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
