package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-suggest/config"
	"github.com/gcbaptista/go-suggest/internal/errors"
	"github.com/gcbaptista/go-suggest/internal/match"
	"github.com/gcbaptista/go-suggest/internal/recent"
	"github.com/gcbaptista/go-suggest/model"
	"github.com/gcbaptista/go-suggest/services"
)

func breeds() []model.Candidate {
	return []model.Candidate{
		{ID: "1", Name: "Labrador Retriever", Fields: map[string]interface{}{"hebrew": "לברדור רטריבר"}},
		{ID: "2", Name: "Golden Retriever", Fields: map[string]interface{}{"hebrew": "גולדן רטריבר"}},
		{ID: "3", Name: "Poodle", Fields: map[string]interface{}{"hebrew": "פודל"}},
		{ID: "4", Name: "Lab"},
	}
}

func hebrewBreeds() []model.Candidate {
	return []model.Candidate{
		{ID: "h1", Name: "פודל"},
		{ID: "h2", Name: "בולדוג"},
		{ID: "h3", Name: "אקיטה"},
		{ID: "h4", Name: "באסט"},
		{ID: "h5", Name: "Beagle"},
	}
}

func newTestCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir), dir
}

func createWith(t *testing.T, c *Catalog, name string, candidates []model.Candidate) *Collection {
	t.Helper()
	require.NoError(t, c.CreateCollection(config.NewCollectionSettings(name)))
	col, err := c.Collection(name)
	require.NoError(t, err)
	require.NoError(t, col.PutCandidates(candidates))
	return col
}

func hitIDs(result services.SearchResult) []string {
	ids := make([]string, len(result.Hits))
	for i, h := range result.Hits {
		ids[i] = h.Candidate.ID
	}
	return ids
}

func intPtr(n int) *int { return &n }

func TestCreateCollection(t *testing.T) {
	c, dir := newTestCatalog(t)

	require.NoError(t, c.CreateCollection(config.CollectionSettings{Name: "breeds"}))
	assert.Equal(t, []string{"breeds"}, c.ListCollections())
	assert.FileExists(t, filepath.Join(dir, "breeds", settingsFile))
	assert.FileExists(t, filepath.Join(dir, "breeds", candidatesFile))

	settings, err := c.GetCollectionSettings("breeds")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, settings.SearchFields)
	assert.Equal(t, config.DefaultLimit, settings.DefaultLimit)

	err = c.CreateCollection(config.CollectionSettings{Name: "breeds"})
	assert.ErrorIs(t, err, errors.ErrCollectionAlreadyExists)
}

func TestCreateCollectionValidation(t *testing.T) {
	c, _ := newTestCatalog(t)

	for _, name := range []string{"", " breeds", "a/b", "..", ".hidden", "ns:x"} {
		t.Run(name, func(t *testing.T) {
			err := c.CreateCollection(config.CollectionSettings{Name: name})
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}

	err := c.CreateCollection(config.CollectionSettings{Name: "dup", SearchFields: []string{"name", "name"}})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	assert.Empty(t, c.ListCollections())
}

func TestGetCollectionNotFound(t *testing.T) {
	c, _ := newTestCatalog(t)

	_, err := c.GetCollection("missing")
	assert.ErrorIs(t, err, errors.ErrCollectionNotFound)
	_, err = c.GetCollectionSettings("missing")
	assert.ErrorIs(t, err, errors.ErrCollectionNotFound)
	assert.ErrorIs(t, c.DeleteCollection("missing"), errors.ErrCollectionNotFound)
	assert.ErrorIs(t, c.UpdateCollectionSettings("missing", config.CollectionSettings{}), errors.ErrCollectionNotFound)
}

func TestPersistenceRoundTrip(t *testing.T) {
	c, dir := newTestCatalog(t)
	col := createWith(t, c, "breeds", breeds())
	require.NoError(t, col.DeleteCandidate("3"))

	reloaded := New(dir)
	assert.Equal(t, []string{"breeds"}, reloaded.ListCollections())

	got, err := reloaded.Collection("breeds")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())

	lab, err := got.GetCandidate("1")
	require.NoError(t, err)
	assert.Equal(t, "לברדור רטריבר", lab.Fields["hebrew"])
}

func TestLoadSkipsMismatchedDirectories(t *testing.T) {
	c, dir := newTestCatalog(t)
	createWith(t, c, "breeds", breeds())

	require.NoError(t, os.Rename(filepath.Join(dir, "breeds"), filepath.Join(dir, "moved")))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))

	reloaded := New(dir)
	assert.Empty(t, reloaded.ListCollections())
}

func TestPutCandidatesUpserts(t *testing.T) {
	c, _ := newTestCatalog(t)
	col := createWith(t, c, "breeds", breeds())

	require.NoError(t, col.PutCandidates([]model.Candidate{
		{ID: "2", Name: "Golden Retriever (UK)"},
		{ID: "5", Name: "Beagle"},
	}))

	all := col.Candidates()
	require.Len(t, all, 5)
	assert.Equal(t, "Golden Retriever (UK)", all[1].Name)
	assert.Equal(t, "5", all[4].ID)

	err := col.PutCandidates([]model.Candidate{{ID: " ", Name: "blank"}})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	assert.Equal(t, 5, col.Len())
}

func TestReplaceCandidatesDedupes(t *testing.T) {
	c, _ := newTestCatalog(t)
	col := createWith(t, c, "breeds", breeds())

	require.NoError(t, col.ReplaceCandidates([]model.Candidate{
		{ID: "a", Name: "First"},
		{ID: "b", Name: "Second"},
		{ID: "a", Name: "First again"},
	}))

	all := col.Candidates()
	require.Len(t, all, 2)
	assert.Equal(t, "First again", all[0].Name)

	_, err := col.GetCandidate("1")
	assert.ErrorIs(t, err, errors.ErrCandidateNotFound)
}

func TestDeleteCandidate(t *testing.T) {
	c, _ := newTestCatalog(t)
	col := createWith(t, c, "breeds", breeds())

	require.NoError(t, col.DeleteCandidate("2"))
	assert.ErrorIs(t, col.DeleteCandidate("2"), errors.ErrCandidateNotFound)

	// Index positions are rebuilt after removal.
	poodle, err := col.GetCandidate("3")
	require.NoError(t, err)
	assert.Equal(t, "Poodle", poodle.Name)
}

func TestRenameCollection(t *testing.T) {
	c, dir := newTestCatalog(t)
	createWith(t, c, "breeds", breeds())
	require.NoError(t, c.CreateCollection(config.NewCollectionSettings("cities")))

	assert.ErrorIs(t, c.RenameCollection("breeds", "breeds"), errors.ErrSameName)
	assert.ErrorIs(t, c.RenameCollection("missing", "x"), errors.ErrCollectionNotFound)
	assert.ErrorIs(t, c.RenameCollection("breeds", "cities"), errors.ErrCollectionAlreadyExists)

	require.NoError(t, c.RenameCollection("breeds", "dogs"))
	assert.Equal(t, []string{"cities", "dogs"}, c.ListCollections())
	assert.NoDirExists(t, filepath.Join(dir, "breeds"))

	reloaded := New(dir)
	col, err := reloaded.Collection("dogs")
	require.NoError(t, err)
	assert.Equal(t, "dogs", col.Settings().Name)
	assert.Equal(t, 4, col.Len())
}

func TestDeleteCollection(t *testing.T) {
	c, dir := newTestCatalog(t)
	createWith(t, c, "breeds", breeds())

	require.NoError(t, c.DeleteCollection("breeds"))
	assert.Empty(t, c.ListCollections())
	assert.NoDirExists(t, filepath.Join(dir, "breeds"))
}

func TestUpdateCollectionSettings(t *testing.T) {
	c, dir := newTestCatalog(t)
	createWith(t, c, "breeds", breeds())

	err := c.UpdateCollectionSettings("breeds", config.CollectionSettings{Name: "other"})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	require.NoError(t, c.UpdateCollectionSettings("breeds", config.CollectionSettings{
		SearchFields: []string{"name", "hebrew"},
		DefaultLimit: 2,
		MinScore:     10,
	}))

	reloaded := New(dir)
	settings, err := reloaded.GetCollectionSettings("breeds")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "hebrew"}, settings.SearchFields)
	assert.Equal(t, 2, settings.DefaultLimit)
	assert.Equal(t, 10, settings.MinScore)
}

func TestSearch(t *testing.T) {
	c, _ := newTestCatalog(t)
	col := createWith(t, c, "breeds", breeds())

	result, err := col.Search(services.SearchQuery{Query: "lab"})
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "1"}, hitIDs(result))
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, match.PathFuzzy, result.Path)
	assert.NotEmpty(t, result.QueryID)

	result, err = col.Search(services.SearchQuery{Query: "רטריבר", SearchFields: []string{"hebrew"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, hitIDs(result))

	result, err = col.Search(services.SearchQuery{Query: "", Limit: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, hitIDs(result))
	assert.Equal(t, match.PathBrowse, result.Path)

	_, err = col.Search(services.SearchQuery{Query: "lab", Limit: intPtr(-1)})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	_, err = col.Search(services.SearchQuery{Query: "lab", MinScore: intPtr(-1)})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestSuggestUsesRecentNamespace(t *testing.T) {
	storage := recent.NewMemoryStorage()
	c := New(t.TempDir(), WithRecentStorage(storage))
	col := createWith(t, c, "breeds", breeds())

	require.NoError(t, col.Select("web", "3"))
	require.NoError(t, col.Select("web", "2"))
	assert.ErrorIs(t, col.Select("web", "missing"), errors.ErrCandidateNotFound)

	result, err := col.Suggest(services.SuggestQuery{Namespace: "web", Limit: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "1"}, hitIDs(result))
	assert.Equal(t, match.PathRecent, result.Path)

	// Other namespaces are unaffected.
	result, err = col.Suggest(services.SuggestQuery{Limit: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, hitIDs(result))
	assert.Equal(t, match.PathBrowse, result.Path)

	raw, err := storage.Get("breeds:web")
	require.NoError(t, err)
	assert.JSONEq(t, `["2","3"]`, string(raw))
}

func TestSuggestExplicitRecentIDsAndOverrides(t *testing.T) {
	c, _ := newTestCatalog(t)
	col := createWith(t, c, "breeds", breeds())

	result, err := col.Suggest(services.SuggestQuery{Query: "retriever", RecentIDs: []string{"1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, hitIDs(result))

	disabled := false
	result, err = col.Suggest(services.SuggestQuery{Query: "retriever", RecentIDs: []string{"1"}, IncludeRecent: &disabled})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, hitIDs(result))
}

func TestSuggestRespectsCollectionRecentSetting(t *testing.T) {
	c, _ := newTestCatalog(t)
	col := createWith(t, c, "breeds", breeds())

	disabled := false
	settings := col.Settings()
	settings.IncludeRecent = &disabled
	require.NoError(t, c.UpdateCollectionSettings("breeds", settings))

	require.NoError(t, col.Select("", "3"))
	result, err := col.Suggest(services.SuggestQuery{})
	require.NoError(t, err)
	assert.Equal(t, "1", result.Hits[0].Candidate.ID)
}

func TestSuggestFallback(t *testing.T) {
	c, _ := newTestCatalog(t)
	name := strings.Repeat("x", 80) + " Needle"
	col := createWith(t, c, "long", []model.Candidate{{ID: "x", Name: name}})

	result, err := col.Suggest(services.SuggestQuery{Query: "needle"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, match.PathFallback, result.Path)
	assert.Equal(t, strings.Repeat("x", 80)+" <mark>Needle</mark>", result.Hits[0].HighlightedLabel)
}

func TestCustomMarker(t *testing.T) {
	c := New(t.TempDir(), WithMarker(match.Marker{Open: "[", Close: "]"}))
	col := createWith(t, c, "breeds", breeds())

	result, err := col.Search(services.SearchQuery{Query: "poo"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "[P][o][o]dle", result.Hits[0].HighlightedLabel)
}

func TestLettersAndGroups(t *testing.T) {
	c, _ := newTestCatalog(t)
	col := createWith(t, c, "hebrew", hebrewBreeds())

	assert.Equal(t, []string{"א", "ב", "פ", "#"}, col.Letters())

	groups := col.Groups("", "")
	require.Len(t, groups, 4)
	assert.Equal(t, "ב", groups[1].Letter)
	assert.Equal(t, "באסט", groups[1].Items[0].Name)
	assert.Equal(t, "בולדוג", groups[1].Items[1].Name)

	groups = col.Groups("א", "ב")
	require.Len(t, groups, 2)
	assert.Equal(t, "א", groups[0].Letter)
	assert.Equal(t, "ב", groups[1].Letter)

	// An invalid bound groups everything.
	assert.Len(t, col.Groups("x", "ב"), 4)

	// Grouping sorts copies, the stored order is untouched.
	assert.Equal(t, "h1", col.Candidates()[0].ID)
}

func TestCatalogRecent(t *testing.T) {
	c := New(t.TempDir(), WithRecentStorage(recent.UnavailableStorage{}), WithRecentCapacity(2))
	store := c.Recent("global")
	assert.NotPanics(t, func() { store.AddRecent("a") })
	assert.Empty(t, store.GetRecent())

	c = New(t.TempDir(), WithRecentCapacity(2))
	store = c.Recent("global")
	store.AddRecent("a")
	store.AddRecent("b")
	store.AddRecent("c")
	assert.Equal(t, []string{"c", "b"}, store.GetRecent())
}

func TestRecentNamespace(t *testing.T) {
	assert.Equal(t, "breeds:default", RecentNamespace("breeds", ""))
	assert.Equal(t, "breeds:web", RecentNamespace("breeds", "web"))
}
