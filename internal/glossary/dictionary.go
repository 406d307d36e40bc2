package glossary

import "strings"

// Dictionary maps headwords to entries. It is never modified after
// BuildDictionary returns, so it can be shared between goroutines freely.
type Dictionary struct {
	entries   map[string]Entry
	headwords []string
}

// Rand is the subset of *math/rand/v2.Rand used to pick words.
type Rand interface {
	IntN(n int) int
}

// BuildDictionary builds a new Dictionary from raw triples. Triples that do
// not produce an entry are skipped. When a headword repeats, the later triple
// wins but the headword keeps its first position.
func BuildDictionary(triples []Triple) *Dictionary {
	d := &Dictionary{
		entries: make(map[string]Entry, len(triples)),
	}
	for _, t := range triples {
		entry, ok := Build(t.Headword, t.Gloss, t.Definition)
		if !ok {
			continue
		}
		if _, exists := d.entries[entry.Headword]; !exists {
			d.headwords = append(d.headwords, entry.Headword)
		}
		d.entries[entry.Headword] = entry
	}
	return d
}

// Fallback is the dictionary served when no source can be read.
func Fallback() *Dictionary {
	return BuildDictionary([]Triple{
		{
			Headword:   "casa",
			Gloss:      "house, home",
			Definition: "{f} /ˈkasa/ (building for living)",
		},
	})
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.headwords)
}

// Lookup returns the entry stored under headword exactly as written.
func (d *Dictionary) Lookup(headword string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	entry, ok := d.entries[headword]
	return entry, ok
}

// LookupFold tries an exact lookup first and then falls back to the first
// headword, in dictionary order, that matches case-insensitively.
func (d *Dictionary) LookupFold(headword string) (Entry, bool) {
	if entry, ok := d.Lookup(headword); ok {
		return entry, true
	}
	if d == nil {
		return Entry{}, false
	}
	for _, h := range d.headwords {
		if strings.EqualFold(h, headword) {
			return d.entries[h], true
		}
	}
	return Entry{}, false
}

// Headwords returns the headwords in the order they were first loaded.
func (d *Dictionary) Headwords() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.headwords...)
}

// Random picks a headword uniformly. It reports false for an empty dictionary.
func (d *Dictionary) Random(rng Rand) (Entry, bool) {
	if d.Len() == 0 {
		return Entry{}, false
	}
	return d.entries[d.headwords[rng.IntN(len(d.headwords))]], true
}
