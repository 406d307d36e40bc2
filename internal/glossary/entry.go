package glossary

import (
	"slices"
	"strings"
)

// Triple is one raw record from a lesson source.
type Triple struct {
	Headword   string
	Gloss      string
	Definition string
}

// Entry is a headword together with every answer it accepts.
type Entry struct {
	Headword string
	// Answers are normalized and unique, in the order the gloss produced them.
	Answers       []string
	OriginalGloss string
	Definition    string
}

// Build expands a gloss into an Entry. It reports false when the headword is
// blank or the gloss yields no answers; such records are not kept.
func Build(headword, gloss, definition string) (Entry, bool) {
	headword = strings.TrimSpace(headword)
	if headword == "" {
		return Entry{}, false
	}
	answers := Expand(gloss)
	if len(answers) == 0 {
		return Entry{}, false
	}
	return Entry{
		Headword:      headword,
		Answers:       answers,
		OriginalGloss: gloss,
		Definition:    definition,
	}, true
}

// IsCorrect reports whether input matches one of the entry's answers once
// normalized. There is no partial or fuzzy matching.
func (e Entry) IsCorrect(input string) bool {
	return slices.Contains(e.Answers, Normalize(input))
}

// IsCorrect reports whether input is an accepted answer for entry.
func IsCorrect(input string, entry Entry) bool {
	return entry.IsCorrect(input)
}
