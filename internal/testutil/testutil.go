// Package testutil provides fixtures and helpers shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-suggest/config"
	"github.com/gcbaptista/go-suggest/internal/catalog"
	"github.com/gcbaptista/go-suggest/internal/recent"
	"github.com/gcbaptista/go-suggest/model"
	"github.com/gcbaptista/go-suggest/services"
)

// Breeds is a mixed Latin and Hebrew fixture. Latin names come first, in
// insertion order, so blank-query results are predictable.
func Breeds() []model.Candidate {
	return []model.Candidate{
		{ID: "1", Name: "Labrador Retriever", Fields: map[string]interface{}{"hebrew": "לברדור רטריבר"}},
		{ID: "2", Name: "Golden Retriever", Fields: map[string]interface{}{"hebrew": "גולדן רטריבר"}},
		{ID: "3", Name: "Poodle", Fields: map[string]interface{}{"hebrew": "פודל"}},
		{ID: "4", Name: "Lab"},
		{ID: "h1", Name: "פודל"},
		{ID: "h2", Name: "בולדוג"},
		{ID: "h3", Name: "אקיטה"},
	}
}

// CreateTestCatalog opens a catalog in a per-test temp dir backed by memory
// recent storage.
func CreateTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.New(t.TempDir(), catalog.WithRecentStorage(recent.NewMemoryStorage()))
}

// SeedCollection creates name with default settings and upserts candidates.
func SeedCollection(t *testing.T, cat *catalog.Catalog, name string, candidates []model.Candidate) services.CollectionAccessor {
	t.Helper()
	require.NoError(t, cat.CreateCollection(config.NewCollectionSettings(name)), "Failed to create test collection")
	col, err := cat.GetCollection(name)
	require.NoError(t, err, "Failed to get collection accessor")
	require.NoError(t, col.PutCandidates(candidates), "Failed to add test candidates")
	return col
}

// HitIDs returns the candidate ids of result in rank order.
func HitIDs(result services.SearchResult) []string {
	ids := make([]string, len(result.Hits))
	for i, h := range result.Hits {
		ids[i] = h.Candidate.ID
	}
	return ids
}

// AssertHitIDs verifies the ranked ids of result.
func AssertHitIDs(t *testing.T, result services.SearchResult, want ...string) {
	t.Helper()
	assert.Equal(t, want, HitIDs(result), "Hit ids should match")
}

// WaitForCandidates polls the collection until it holds want candidates.
func WaitForCandidates(t *testing.T, cat services.CollectionManager, name string, want int, timeout time.Duration) {
	t.Helper()
	assert.Eventually(t, func() bool {
		col, err := cat.GetCollection(name)
		return err == nil && len(col.Candidates()) == want
	}, timeout, 10*time.Millisecond, "Collection %s should reach %d candidates", name, want)
}
