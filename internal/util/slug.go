// Package util holds small helpers shared across services and handlers.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphen = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe slug from a title: accents are stripped via
// unicode decomposition, everything outside [a-z0-9-] is dropped and runs of
// whitespace collapse to single hyphens.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, _ := transform.String(t, s)

	out = strings.ToLower(out)
	out = strings.Join(strings.Fields(out), "-")
	out = nonSlugChars.ReplaceAllString(out, "")
	out = repeatedHyphen.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// IsValidSlug reports whether s is lowercase alphanumeric with single
// interior hyphens.
func IsValidSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	if strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	return true
}
