package match

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Marker is the markup wrapped around every highlighted rune.
type Marker struct {
	Open  string `json:"open" mapstructure:"open"`
	Close string `json:"close" mapstructure:"close"`
}

// DefaultMarker wraps matches in <mark> elements.
var DefaultMarker = Marker{Open: "<mark>", Close: "</mark>"}

// IsZero reports whether no markup is configured.
func (m Marker) IsZero() bool {
	return m.Open == "" && m.Close == ""
}

func (m Marker) orDefault() Marker {
	if m.IsZero() {
		return DefaultMarker
	}
	return m
}

// Highlight wraps each rune of text whose offset is listed in indices.
// Other runes pass through unchanged; no escaping is applied.
func Highlight(text string, indices []int, marker Marker) string {
	if len(indices) == 0 {
		return text
	}
	marker = marker.orDefault()

	marked := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		marked[idx] = struct{}{}
	}

	var b strings.Builder
	b.Grow(len(text) + len(indices)*(len(marker.Open)+len(marker.Close)))
	pos := 0
	for _, r := range text {
		if _, ok := marked[pos]; ok {
			b.WriteString(marker.Open)
			b.WriteRune(r)
			b.WriteString(marker.Close)
		} else {
			b.WriteRune(r)
		}
		pos++
	}
	return b.String()
}

// literalMatcher finds a query as a case-insensitive literal anywhere in a label.
type literalMatcher struct {
	re *regexp.Regexp
}

func newLiteralMatcher(q string) *literalMatcher {
	return &literalMatcher{re: regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))}
}

// find returns the rune offsets covered by every occurrence, or nil.
func (l *literalMatcher) find(text string) []int {
	locs := l.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	var indices []int
	for _, loc := range locs {
		start := utf8.RuneCountInString(text[:loc[0]])
		n := utf8.RuneCountInString(text[loc[0]:loc[1]])
		indices = append(indices, span(start, n)...)
	}
	return indices
}

// replace wraps every occurrence as a single span.
func (l *literalMatcher) replace(text string, marker Marker) string {
	marker = marker.orDefault()
	return l.re.ReplaceAllStringFunc(text, func(s string) string {
		return marker.Open + s + marker.Close
	})
}
