package match

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gcbaptista/go-suggest/internal/normalize"
)

// NameField is the search field resolving to a candidate's display name.
const NameField = "name"

// Searchable is a record the engine can rank.
// SearchField returns false for absent fields and for values that are not strings.
type Searchable interface {
	CandidateID() string
	DisplayName() string
	SearchField(field string) (string, bool)
}

// ScoredMatch is a ranked candidate. It is computed per call and never persisted.
type ScoredMatch[T Searchable] struct {
	Candidate        T      `json:"candidate"`
	Score            int    `json:"score"`
	MatchedField     string `json:"matched_field,omitempty"`
	MatchedIndices   []int  `json:"matched_indices,omitempty"`
	HighlightedLabel string `json:"highlighted_label"`
}

// SearchOptions configures FuzzySearch.
type SearchOptions struct {
	Limit        int      // maximum number of results, honored literally
	MinScore     int      // matches scoring below are dropped
	SearchFields []string // fields evaluated per candidate, defaults to ["name"]
	Marker       Marker   // highlight markup, defaults to DefaultMarker
}

// DefaultSearchOptions returns limit 10, min score 5 and the name field.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limit:        10,
		MinScore:     5,
		SearchFields: []string{NameField},
		Marker:       DefaultMarker,
	}
}

func (o SearchOptions) fields() []string {
	if len(o.SearchFields) == 0 {
		return []string{NameField}
	}
	return o.SearchFields
}

// FuzzySearch ranks candidates against query.
// A blank query returns the first Limit candidates in input order with score 0.
func FuzzySearch[T Searchable](query string, candidates []T, opts SearchOptions) []ScoredMatch[T] {
	limit := max(opts.Limit, 0)
	if strings.TrimSpace(query) == "" {
		return firstN(candidates, limit)
	}

	q := newQuery(query)
	marker := opts.Marker.orDefault()
	fields := opts.fields()

	results := make([]ScoredMatch[T], 0)
	for _, c := range candidates {
		best, ok := bestField(q, c, fields)
		if !ok || best.result.Score < opts.MinScore {
			continue
		}
		results = append(results, ScoredMatch[T]{
			Candidate:        c,
			Score:            best.result.Score,
			MatchedField:     best.field,
			MatchedIndices:   best.result.Indices,
			HighlightedLabel: label(c, best, marker),
		})
	}

	sortMatches(results)
	return truncate(results, limit)
}

type fieldResult struct {
	field  string
	text   string
	result Result
}

// bestField keeps the first field with the strictly highest score.
func bestField[T Searchable](q query, c T, fields []string) (fieldResult, bool) {
	var best fieldResult
	found := false
	for _, field := range fields {
		text, ok := c.SearchField(field)
		if !ok {
			continue
		}
		r := scoreMapped(q, normalize.Map(text))
		if !found || r.Score > best.result.Score {
			best = fieldResult{field: field, text: text, result: r}
			found = true
		}
	}
	return best, found
}

// label highlights the display name when the name field won. Matches in other
// fields leave the label plain.
func label[T Searchable](c T, best fieldResult, marker Marker) string {
	if best.field == NameField {
		return Highlight(best.text, best.result.Indices, marker)
	}
	return c.DisplayName()
}

func firstN[T Searchable](candidates []T, limit int) []ScoredMatch[T] {
	n := min(limit, len(candidates))
	results := make([]ScoredMatch[T], 0, n)
	for _, c := range candidates[:n] {
		results = append(results, plainMatch(c, 0))
	}
	return results
}

func plainMatch[T Searchable](c T, score int) ScoredMatch[T] {
	return ScoredMatch[T]{Candidate: c, Score: score, HighlightedLabel: c.DisplayName()}
}

// sortMatches orders by score descending, then by shorter display name.
func sortMatches[T Searchable](results []ScoredMatch[T]) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return utf8.RuneCountInString(results[i].Candidate.DisplayName()) <
			utf8.RuneCountInString(results[j].Candidate.DisplayName())
	})
}

func truncate[T Searchable](results []ScoredMatch[T], limit int) []ScoredMatch[T] {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
