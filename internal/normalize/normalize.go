// Package normalize prepares free text for fuzzy comparison.
// It lower-cases, trims, strips Hebrew diacritics (nikud and cantillation marks)
// and collapses whitespace, while remembering where every normalized rune came from.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
)

// hebrewMarks covers the Hebrew points and accents block (U+0591 to U+05C7).
var hebrewMarks = runes.In(&unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0591, Hi: 0x05C7, Stride: 1}},
})

// Mapped is a normalized string that keeps, for every normalized rune,
// the rune offset of its source in the original string.
type Mapped struct {
	Runes   []rune
	Offsets []int
}

// String returns the normalized text.
func (m Mapped) String() string {
	return string(m.Runes)
}

// Len returns the normalized length in runes.
func (m Mapped) Len() int {
	return len(m.Runes)
}

// Original translates ascending normalized rune indices into rune offsets of the
// original string. Indices outside the normalized text are dropped.
func (m Mapped) Original(indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(m.Offsets) {
			continue
		}
		out = append(out, m.Offsets[idx])
	}
	return out
}

// IsMark reports whether r is stripped during normalization.
func IsMark(r rune) bool {
	return hebrewMarks.Contains(r)
}

// Map normalizes s and records the source offset of every rune it keeps.
func Map(s string) Mapped {
	src := []rune(s)
	out := Mapped{
		Runes:   make([]rune, 0, len(src)),
		Offsets: make([]int, 0, len(src)),
	}

	pendingSpace := -1
	for i, r := range src {
		// 1. Drop diacritics
		if hebrewMarks.Contains(r) {
			continue
		}

		// 2. Trim leading whitespace, remember the first rune of an inner run
		if unicode.IsSpace(r) {
			if len(out.Runes) > 0 && pendingSpace < 0 {
				pendingSpace = i
			}
			continue
		}

		// 3. Collapse the run into a single space, trailing runs never get flushed
		if pendingSpace >= 0 {
			out.Runes = append(out.Runes, ' ')
			out.Offsets = append(out.Offsets, pendingSpace)
			pendingSpace = -1
		}

		// 4. Lower-case rune by rune so offsets stay one-to-one
		out.Runes = append(out.Runes, unicode.ToLower(r))
		out.Offsets = append(out.Offsets, i)
	}
	return out
}

// Text returns the normalized form of s.
func Text(s string) string {
	return Map(s).String()
}

// Words splits the normalized form of s on spaces.
func Words(s string) []string {
	normalized := Text(s)
	if normalized == "" {
		return []string{}
	}
	return strings.Split(normalized, " ")
}
