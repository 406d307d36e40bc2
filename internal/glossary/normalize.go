// Package glossary turns dictionary glosses into sets of accepted answers and
// checks typed answers against them.
package glossary

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize strips accents, lower-cases, and trims text for comparison.
//
// Lower-casing happens before decomposition so characters whose lower-case
// form carries a combining mark (e.g. U+0130) still normalize in one pass.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	result, _, _ := transform.String(stripMarks, strings.ToLower(text))
	return strings.TrimSpace(result)
}
