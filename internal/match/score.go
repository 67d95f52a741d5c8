// Package match implements the fuzzy autocomplete engine: scoring a query against
// a label, ranking candidate lists, suggestions with recency and highlighting.
//
// All functions are pure and safe for concurrent use.
package match

import (
	"math"

	"github.com/gcbaptista/go-suggest/internal/normalize"
)

// Scoring constants. These are tuned values; changing them changes ranking.
const (
	exactScore     = 100
	prefixScore    = 90
	substringScore = 70

	wordExactScore           = 25
	wordContainedScore       = 20
	wordAnywhereScore        = 10
	multiWordCompletionBonus = 30
	multiWordBrevityBase     = 20
	partialWordBonus         = 5

	charScore                  = 8
	consecutiveBonus           = 3
	subsequenceCompletionBonus = 15
	subsequenceBrevityBase     = 30
	spreadDivisor              = 4
	partialMatchRatio          = 0.6
	partialMatchBonus          = 5
)

// Result is the score of one query against one target.
// Indices are ascending unique rune offsets into the original target string.
type Result struct {
	Score   int
	Indices []int
}

// Score rates how well query matches target. It never returns a negative score.
func Score(query, target string) Result {
	return scoreMapped(newQuery(query), normalize.Map(target))
}

// query is a normalized query, prepared once per search.
type query struct {
	runes []rune
	words [][]rune
}

func newQuery(raw string) query {
	q := query{runes: normalize.Map(raw).Runes}
	q.words = splitWords(q.runes)
	return q
}

func scoreMapped(q query, target normalize.Mapped) Result {
	score, indices := scoreRunes(q, target.Runes)
	if score < 0 {
		score = 0
	}
	return Result{Score: score, Indices: target.Original(indices)}
}

// scoreRunes returns the raw score and normalized indices. The substring
// branch may yield a negative score, callers clamp it.
func scoreRunes(q query, t []rune) (int, []int) {
	if len(q.runes) == 0 {
		return 0, nil
	}

	if equalRunes(q.runes, t) {
		return exactScore, span(0, len(t))
	}

	if hasPrefixRunes(t, q.runes) {
		return prefixScore, span(0, len(q.runes))
	}

	if k := indexRunes(t, q.runes); k >= 0 {
		return substringScore - k, span(k, len(q.runes))
	}

	if len(q.words) >= 2 {
		if score, indices, ok := scoreWords(q.words, t); ok {
			return score, indices
		}
	}

	return scoreSubsequence(q.runes, t)
}

// scoreWords matches every query word independently against the words of t.
func scoreWords(words [][]rune, t []rune) (int, []int, bool) {
	targetWords := wordSpans(t)
	total, matched := 0, 0
	var indices []int

	for _, qw := range words {
		best, bestStart := 0, -1
		for _, tw := range targetWords {
			k := indexRunes(tw.runes, qw)
			if k < 0 {
				continue
			}
			s := wordContainedScore
			if len(tw.runes) == len(qw) {
				s = wordExactScore
			}
			if s > best {
				best, bestStart = s, tw.start+k
			}
			if best == wordExactScore {
				break
			}
		}
		if best == 0 {
			if k := indexRunes(t, qw); k >= 0 {
				best, bestStart = wordAnywhereScore, k
			}
		}
		if best == 0 {
			continue
		}
		total += best
		matched++
		indices = append(indices, span(bestStart, len(qw))...)
	}

	if matched == 0 {
		return 0, nil, false
	}
	if matched == len(words) {
		total += multiWordCompletionBonus + max(0, multiWordBrevityBase-len(t))
	} else {
		total += partialWordBonus * matched
	}
	return total, sortUnique(indices), true
}

// scoreSubsequence consumes query runes in order, left to right.
func scoreSubsequence(q, t []rune) (int, []int) {
	indices := make([]int, 0, len(q))
	score, run, qi := 0, 0, 0

	for i := 0; i < len(t) && qi < len(q); i++ {
		if t[i] != q[qi] {
			continue
		}
		score += charScore
		if n := len(indices); n > 0 && indices[n-1] == i-1 {
			run++
			score += consecutiveBonus + run
		} else {
			run = 0
		}
		indices = append(indices, i)
		qi++
	}

	if qi == len(q) {
		spread := indices[len(indices)-1] - indices[0]
		score += subsequenceCompletionBonus
		score -= spread / spreadDivisor
		score += max(0, subsequenceBrevityBase-len(t))
		return score, indices
	}

	threshold := int(math.Ceil(partialMatchRatio * float64(len(q))))
	if qi > 0 && qi >= threshold {
		return qi*charScore + partialMatchBonus, indices
	}
	return 0, nil
}
