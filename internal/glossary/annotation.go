package glossary

import (
	"regexp"
	"strings"
)

var (
	genderMarkerRe  = regexp.MustCompile(`\{[mfn]\}`)
	regionMarkerRe  = regexp.MustCompile(`\[[^\]]+\]`)
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)
)

// StripAnnotations removes gender markers such as {f} and bracketed region or
// usage notes such as [Mexico] from a single gloss fragment.
// Parenthetical text is left alone.
func StripAnnotations(fragment string) string {
	s := strings.TrimSpace(genderMarkerRe.ReplaceAllString(fragment, ""))
	return strings.TrimSpace(regionMarkerRe.ReplaceAllString(s, ""))
}

// stripFirstParenthetical removes the first "(...)" span together with the
// whitespace in front of it.
func stripFirstParenthetical(s string) string {
	loc := parentheticalRe.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[:loc[0]] + s[loc[1]:])
}

func hasParenthetical(s string) bool {
	return strings.Contains(s, "(") && strings.Contains(s, ")")
}
