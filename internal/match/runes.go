package match

import "sort"

type wordSpan struct {
	start int
	runes []rune
}

func splitWords(r []rune) [][]rune {
	spans := wordSpans(r)
	words := make([][]rune, len(spans))
	for i, s := range spans {
		words[i] = s.runes
	}
	return words
}

// wordSpans splits normalized runes on single spaces.
func wordSpans(r []rune) []wordSpan {
	var spans []wordSpan
	start := 0
	for i := 0; i <= len(r); i++ {
		if i < len(r) && r[i] != ' ' {
			continue
		}
		if i > start {
			spans = append(spans, wordSpan{start: start, runes: r[start:i]})
		}
		start = i + 1
	}
	return spans
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasPrefixRunes(s, prefix []rune) bool {
	return len(s) >= len(prefix) && equalRunes(s[:len(prefix)], prefix)
}

func indexRunes(s, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if equalRunes(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func span(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}

func sortUnique(indices []int) []int {
	sort.Ints(indices)
	out := indices[:0]
	for _, v := range indices {
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}
