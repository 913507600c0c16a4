package search

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/kittclouds/memofilter/pkg/filter"
)

// ============================================================================
// Canonical form - shared by pattern compilation and text scanning
// ============================================================================

// isJoiner reports punctuation kept inside tag names ("project/alpha",
// "read-later", "v1.2").
func isJoiner(r rune) bool {
	switch r {
	case '\'', '-', '_', '/', '.', '&':
		return true
	default:
		return false
	}
}

// fold lower-cases r and reports whether it survives canonicalization.
func fold(r rune) (rune, bool) {
	c := unicode.ToLower(r)
	switch c {
	case '’', '‘':
		c = '\''
	case '–', '—':
		c = '-'
	}
	return c, unicode.IsLetter(c) || unicode.IsDigit(c) || isJoiner(c)
}

// Canonicalize lower-cases s, keeps letters, digits and joiners, and
// collapses every other run of characters into one space.
func Canonicalize(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	lastWasSpace := true
	for _, ch := range s {
		if c, keep := fold(ch); keep {
			out.WriteRune(c)
			lastWasSpace = false
		} else if !lastWasSpace {
			out.WriteByte(' ')
			lastWasSpace = true
		}
	}
	return strings.TrimSuffix(out.String(), " ")
}

// offsetMap maps each byte of Canonicalize(original) back to a byte offset
// in original, plus one trailing entry for the end of the string.
func offsetMap(original string) []int {
	mapping := make([]int, 0, len(original)+1)

	lastWasSpace := true
	for pos, ch := range original {
		if c, keep := fold(ch); keep {
			for range utf8.RuneLen(c) {
				mapping = append(mapping, pos)
			}
			lastWasSpace = false
		} else if !lastWasSpace {
			mapping = append(mapping, pos)
			lastWasSpace = true
		}
	}
	return append(mapping, len(original))
}

// ============================================================================
// Dictionary
// ============================================================================

// Dictionary finds known tag names in free text with one Aho-Corasick pass.
type Dictionary struct {
	ac       *ahocorasick.Automaton
	patterns []string       // canonical forms, indexed by pattern ID
	display  []string       // first spelling seen for each pattern
	index    map[string]int // canonical form -> pattern ID
}

// Match is a tag mention in scanned text.
type Match struct {
	Start int    // byte offset in the original text
	End   int    // exclusive
	Text  string // original slice, casing preserved
	Tag   string // tag as registered
}

// Compile builds a dictionary over tags. Tags that canonicalize to the
// same form share one pattern; the first spelling wins.
func Compile(tags []string) (*Dictionary, error) {
	d := &Dictionary{index: make(map[string]int)}

	for _, tag := range tags {
		key := Canonicalize(tag)
		if key == "" {
			continue
		}
		if _, exists := d.index[key]; exists {
			continue
		}
		d.index[key] = len(d.patterns)
		d.patterns = append(d.patterns, key)
		d.display = append(d.display, tag)
	}

	if len(d.patterns) == 0 {
		return d, nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(d.patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	d.ac = automaton
	return d, nil
}

// Len is the number of distinct tags.
func (d *Dictionary) Len() int { return len(d.patterns) }

// Lookup returns the registered spelling for a tag name.
func (d *Dictionary) Lookup(name string) (string, bool) {
	idx, ok := d.index[Canonicalize(name)]
	if !ok {
		return "", false
	}
	return d.display[idx], true
}

// Scan returns whole-word tag mentions in text, in text order.
func (d *Dictionary) Scan(text string) []Match {
	if d.ac == nil {
		return nil
	}

	canonical := Canonicalize(text)
	haystack := []byte(canonical)
	canonToOrig := offsetMap(text)

	found := d.ac.FindAllOverlapping(haystack)
	result := make([]Match, 0, len(found))
	for _, m := range found {
		if !wordBounded(haystack, m.Start, m.End) {
			continue
		}
		start := mapOffset(m.Start, canonToOrig, len(text))
		end := mapOffset(m.End, canonToOrig, len(text))
		if start >= end || end > len(text) {
			continue
		}
		result = append(result, Match{
			Start: start,
			End:   end,
			Text:  text[start:end],
			Tag:   d.display[m.PatternID],
		})
	}
	slices.SortStableFunc(result, func(a, b Match) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return result
}

func wordBounded(h []byte, start, end int) bool {
	return (start == 0 || h[start-1] == ' ') && (end == len(h) || h[end] == ' ')
}

func mapOffset(canonOffset int, mapping []int, originalLen int) int {
	if canonOffset < 0 {
		return 0
	}
	if canonOffset >= len(mapping) {
		return originalLen
	}
	return mapping[canonOffset]
}

// Suggest returns a tagSearch filter for each known tag mentioned in text,
// in first-mention order without repeats.
func (d *Dictionary) Suggest(text string) []filter.Filter {
	var out []filter.Filter
	seen := make(map[string]bool)
	for _, m := range d.Scan(text) {
		if seen[m.Tag] {
			continue
		}
		seen[m.Tag] = true
		out = append(out, filter.Tag(m.Tag))
	}
	return out
}
