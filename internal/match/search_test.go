package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pet is a minimal Searchable used across the engine tests.
type pet struct {
	id     string
	name   string
	fields map[string]interface{}
}

func (p pet) CandidateID() string { return p.id }
func (p pet) DisplayName() string { return p.name }
func (p pet) SearchField(field string) (string, bool) {
	if field == NameField {
		return p.name, true
	}
	v, ok := p.fields[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func breeds() []pet {
	return []pet{
		{id: "1", name: "Labrador Retriever"},
		{id: "2", name: "Golden Retriever"},
		{id: "3", name: "Poodle"},
		{id: "4", name: "Lab"},
		{id: "5", name: "German Shepherd", fields: map[string]interface{}{"hebrew": "רועה גרמני"}},
		{id: "6", name: "Beagle"},
	}
}

func ids(results []ScoredMatch[pet]) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Candidate.id
	}
	return out
}

func TestFuzzySearchRanking(t *testing.T) {
	results := FuzzySearch("lab", breeds(), DefaultSearchOptions())
	require.Len(t, results, 2)

	assert.Equal(t, []string{"4", "1"}, ids(results))
	assert.Equal(t, 100, results[0].Score)
	assert.Equal(t, 90, results[1].Score)
	assert.Equal(t, NameField, results[1].MatchedField)
	assert.Equal(t, []int{0, 1, 2}, results[1].MatchedIndices)
	assert.Equal(t, "<mark>L</mark><mark>a</mark><mark>b</mark>rador Retriever", results[1].HighlightedLabel)
}

func TestFuzzySearchTieBreakFavorsShorterNames(t *testing.T) {
	candidates := []pet{
		{id: "long", name: "Labrador"},
		{id: "short", name: "Lab mix"},
	}
	results := FuzzySearch("la", candidates, DefaultSearchOptions())
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, []string{"short", "long"}, ids(results))
}

func TestFuzzySearchBlankQuery(t *testing.T) {
	opts := DefaultSearchOptions()
	opts.Limit = 3

	results := FuzzySearch("  ", breeds(), opts)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"1", "2", "3"}, ids(results))
	for _, r := range results {
		assert.Zero(t, r.Score)
		assert.Empty(t, r.MatchedIndices)
		assert.Equal(t, r.Candidate.name, r.HighlightedLabel)
	}
}

func TestFuzzySearchLimitContract(t *testing.T) {
	for _, query := range []string{"", "e", "retriever", "zzz"} {
		for limit := -1; limit <= 7; limit++ {
			opts := DefaultSearchOptions()
			opts.Limit = limit
			opts.MinScore = 0
			results := FuzzySearch(query, breeds(), opts)
			assert.LessOrEqual(t, len(results), max(limit, 0), "query %q limit %d", query, limit)
		}
	}
}

func TestFuzzySearchMinScoreContract(t *testing.T) {
	for _, minScore := range []int{0, 5, 30, 60, 95} {
		opts := DefaultSearchOptions()
		opts.MinScore = minScore
		for _, r := range FuzzySearch("re", breeds(), opts) {
			assert.GreaterOrEqual(t, r.Score, minScore)
		}
	}
}

func TestFuzzySearchExtraFields(t *testing.T) {
	opts := DefaultSearchOptions()
	opts.SearchFields = []string{NameField, "hebrew"}

	results := FuzzySearch("רועה", breeds(), opts)
	require.Len(t, results, 1)
	assert.Equal(t, "5", results[0].Candidate.id)
	assert.Equal(t, "hebrew", results[0].MatchedField)
	assert.Equal(t, 90, results[0].Score)
	// Matches outside the name leave the label plain.
	assert.Equal(t, "German Shepherd", results[0].HighlightedLabel)
}

func TestFuzzySearchSkipsNonStringFields(t *testing.T) {
	candidates := []pet{
		{id: "a", name: "Rex", fields: map[string]interface{}{"weight": 30, "tags": []string{"rex"}}},
		{id: "b", name: "Max", fields: map[string]interface{}{"weight": "rex"}},
	}
	opts := DefaultSearchOptions()
	opts.SearchFields = []string{"weight", "tags", "missing"}

	var results []ScoredMatch[pet]
	assert.NotPanics(t, func() {
		results = FuzzySearch("rex", candidates, opts)
	})
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Candidate.id)
}

func TestFuzzySearchBestFieldWins(t *testing.T) {
	candidates := []pet{
		{id: "1", name: "Labrador Retriever", fields: map[string]interface{}{"alias": "Lab"}},
	}
	opts := DefaultSearchOptions()
	opts.SearchFields = []string{NameField, "alias"}

	results := FuzzySearch("lab", candidates, opts)
	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Score)
	assert.Equal(t, "alias", results[0].MatchedField)
}

func TestFuzzySearchNoMatchesReturnsEmpty(t *testing.T) {
	results := FuzzySearch("!!!", breeds(), DefaultSearchOptions())
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFuzzySearchCustomMarker(t *testing.T) {
	opts := DefaultSearchOptions()
	opts.Marker = Marker{Open: "[", Close: "]"}
	results := FuzzySearch("poo", breeds(), opts)
	require.Len(t, results, 1)
	assert.Equal(t, "[P][o][o]dle", results[0].HighlightedLabel)
}

func TestFuzzySearchIsStableForLargeInput(t *testing.T) {
	candidates := make([]pet, 0, 500)
	for i := 0; i < 500; i++ {
		candidates = append(candidates, pet{id: strings.Repeat("x", i%7+1), name: "Mixed breed"})
	}
	opts := DefaultSearchOptions()
	opts.Limit = 500
	results := FuzzySearch("mixed", candidates, opts)
	require.Len(t, results, 500)
	for i, r := range results {
		assert.Equal(t, candidates[i].id, r.Candidate.id)
	}
}
