package glossary

import "strings"

const infinitivePrefix = "to "

// Expand turns a raw gloss into the ordered, de-duplicated list of
// normalized answers it accepts.
//
// "to run (move quickly), to jog" yields
//
//	to run, to run (move quickly), run, run (move quickly), to jog, jog
func Expand(gloss string) []string {
	answers := newAnswerSet()
	for _, fragment := range splitGloss(gloss) {
		cleaned := StripAnnotations(fragment)

		if hasParenthetical(cleaned) {
			answers.add(stripFirstParenthetical(cleaned))
		}
		answers.add(cleaned)

		if !hasInfinitivePrefix(cleaned) {
			continue
		}
		withoutTo := strings.TrimSpace(cleaned[len(infinitivePrefix):])
		if withoutTo == "" {
			continue
		}
		if hasParenthetical(withoutTo) {
			answers.add(stripFirstParenthetical(withoutTo))
		}
		answers.add(withoutTo)
	}
	return answers.values
}

func splitGloss(gloss string) []string {
	fields := strings.FieldsFunc(gloss, func(r rune) bool {
		return r == ',' || r == ';'
	})
	fragments := make([]string, 0, len(fields))
	for _, field := range fields {
		if f := strings.TrimSpace(field); f != "" {
			fragments = append(fragments, f)
		}
	}
	return fragments
}

func hasInfinitivePrefix(s string) bool {
	return len(s) >= len(infinitivePrefix) && strings.EqualFold(s[:len(infinitivePrefix)], infinitivePrefix)
}

// answerSet keeps normalized answers in first-seen order.
type answerSet struct {
	seen   map[string]struct{}
	values []string
}

func newAnswerSet() *answerSet {
	return &answerSet{seen: make(map[string]struct{})}
}

func (s *answerSet) add(raw string) {
	answer := Normalize(raw)
	if answer == "" {
		return
	}
	if _, ok := s.seen[answer]; ok {
		return
	}
	s.seen[answer] = struct{}{}
	s.values = append(s.values, answer)
}
