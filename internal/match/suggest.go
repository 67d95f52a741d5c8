package match

import (
	"strings"
	"unicode/utf8"
)

const (
	maxRecentSuggestions = 3
	recentScore          = 100
	recentBoost          = 15
	fallbackScore        = 30
)

// SuggestOptions configures GetSuggestions.
type SuggestOptions struct {
	Limit         int
	MinScore      int
	IncludeRecent bool
	SearchFields  []string
	Marker        Marker
}

// DefaultSuggestOptions returns limit 10, min score 5 with recents enabled.
func DefaultSuggestOptions() SuggestOptions {
	return SuggestOptions{
		Limit:         10,
		MinScore:      5,
		IncludeRecent: true,
		SearchFields:  []string{NameField},
		Marker:        DefaultMarker,
	}
}

func (o SuggestOptions) searchOptions() SearchOptions {
	return SearchOptions{
		Limit:        o.Limit,
		MinScore:     o.MinScore,
		SearchFields: o.SearchFields,
		Marker:       o.Marker,
	}
}

// Path tells which branch of GetSuggestions produced the results.
type Path string

const (
	PathBrowse   Path = "browse"   // blank query, input order
	PathRecent   Path = "recent"   // blank query, recent selections first
	PathFuzzy    Path = "fuzzy"    // fuzzy scoring
	PathFallback Path = "fallback" // literal substring over the name
)

// GetSuggestions is FuzzySearch tuned for autocomplete inputs.
//
// On a blank query the recently selected candidates come first (at most three),
// followed by the rest in input order. When fuzzy matching finds nothing, a plain
// case-insensitive substring search over the name is used instead. Candidates
// listed in recentIDs receive a recency boost.
func GetSuggestions[T Searchable](query string, candidates []T, recentIDs []string, opts SuggestOptions) []ScoredMatch[T] {
	results, _ := Suggest(query, candidates, recentIDs, opts)
	return results
}

// Suggest is GetSuggestions that also reports the branch taken.
func Suggest[T Searchable](query string, candidates []T, recentIDs []string, opts SuggestOptions) ([]ScoredMatch[T], Path) {
	limit := max(opts.Limit, 0)
	useRecent := opts.IncludeRecent && len(recentIDs) > 0

	if strings.TrimSpace(query) == "" {
		if useRecent {
			return recentFirst(candidates, recentIDs, limit), PathRecent
		}
		return FuzzySearch(query, candidates, opts.searchOptions()), PathBrowse
	}

	path := PathFuzzy
	results := FuzzySearch(query, candidates, opts.searchOptions())
	if len(results) == 0 {
		path = PathFallback
		results = substringFallback(query, candidates, opts.Marker)
	}

	if useRecent {
		recent := idSet(recentIDs)
		for i := range results {
			if _, ok := recent[results[i].Candidate.CandidateID()]; ok {
				results[i].Score += recentBoost
			}
		}
		sortMatches(results)
	}
	return truncate(results, limit), path
}

func recentFirst[T Searchable](candidates []T, recentIDs []string, limit int) []ScoredMatch[T] {
	byID := make(map[string]T, len(candidates))
	for _, c := range candidates {
		if _, exists := byID[c.CandidateID()]; !exists {
			byID[c.CandidateID()] = c
		}
	}

	results := make([]ScoredMatch[T], 0, limit)
	shown := make(map[string]struct{}, maxRecentSuggestions)
	for _, id := range recentIDs {
		if len(shown) == maxRecentSuggestions || len(results) == limit {
			break
		}
		c, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := shown[id]; dup {
			continue
		}
		shown[id] = struct{}{}
		results = append(results, plainMatch(c, recentScore))
	}

	recent := idSet(recentIDs)
	for _, c := range candidates {
		if len(results) >= limit {
			break
		}
		if _, ok := recent[c.CandidateID()]; ok {
			continue
		}
		results = append(results, plainMatch(c, 0))
	}
	return results
}

// substringFallback scores literal name matches by brevity alone. It is not
// filtered by MinScore.
func substringFallback[T Searchable](query string, candidates []T, marker Marker) []ScoredMatch[T] {
	lm := newLiteralMatcher(strings.TrimSpace(query))
	results := make([]ScoredMatch[T], 0)
	for _, c := range candidates {
		name := c.DisplayName()
		indices := lm.find(name)
		if indices == nil {
			continue
		}
		results = append(results, ScoredMatch[T]{
			Candidate:        c,
			Score:            max(0, fallbackScore-utf8.RuneCountInString(name)),
			MatchedField:     NameField,
			MatchedIndices:   indices,
			HighlightedLabel: lm.replace(name, marker),
		})
	}
	sortMatches(results)
	return results
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
