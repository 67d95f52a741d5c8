package catalog

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-suggest/config"
	"github.com/gcbaptista/go-suggest/internal/errors"
	"github.com/gcbaptista/go-suggest/internal/hebrew"
	"github.com/gcbaptista/go-suggest/internal/match"
	"github.com/gcbaptista/go-suggest/internal/metrics"
	"github.com/gcbaptista/go-suggest/internal/persistence"
	"github.com/gcbaptista/go-suggest/internal/recent"
	"github.com/gcbaptista/go-suggest/model"
	"github.com/gcbaptista/go-suggest/services"
)

// Collection is one named list of candidates with its settings.
// It implements services.CollectionAccessor.
type Collection struct {
	catalog *Catalog

	mu       sync.RWMutex
	settings config.CollectionSettings
	// candidates is replaced, never modified in place, so readers may keep a
	// snapshot after releasing mu.
	candidates []model.Candidate
	byID       map[string]int
}

func newCollection(catalog *Catalog, settings config.CollectionSettings) *Collection {
	return &Collection{
		catalog:    catalog,
		settings:   settings,
		candidates: []model.Candidate{},
		byID:       make(map[string]int),
	}
}

func label(c model.Candidate) string { return c.Name }

// Settings returns a copy of the collection settings.
func (col *Collection) Settings() config.CollectionSettings {
	col.mu.RLock()
	defer col.mu.RUnlock()
	settings := col.settings
	settings.SearchFields = slices.Clone(col.settings.SearchFields)
	settings.DatasetFields = slices.Clone(col.settings.DatasetFields)
	return settings
}

func (col *Collection) setSettings(settings config.CollectionSettings) {
	col.mu.Lock()
	defer col.mu.Unlock()
	col.settings = settings
}

func (col *Collection) snapshot() (config.CollectionSettings, []model.Candidate) {
	col.mu.RLock()
	defer col.mu.RUnlock()
	return col.settings, col.candidates
}

// Candidates returns the candidates in insertion order.
func (col *Collection) Candidates() []model.Candidate {
	_, candidates := col.snapshot()
	return slices.Clone(candidates)
}

// Len returns the number of candidates.
func (col *Collection) Len() int {
	col.mu.RLock()
	defer col.mu.RUnlock()
	return len(col.candidates)
}

// GetCandidate returns the candidate with id.
func (col *Collection) GetCandidate(id string) (model.Candidate, error) {
	col.mu.RLock()
	defer col.mu.RUnlock()
	i, ok := col.byID[id]
	if !ok {
		return model.Candidate{}, errors.NewCandidateNotFoundError(id, col.settings.Name)
	}
	return col.candidates[i], nil
}

func validateCandidates(candidates []model.Candidate) error {
	for i, c := range candidates {
		if strings.TrimSpace(c.ID) == "" {
			return errors.NewValidationError(fmt.Sprintf("candidates[%d].id", i), "candidate id cannot be empty")
		}
	}
	return nil
}

// PutCandidates upserts candidates by id. Existing ids keep their position and
// new ids are appended in the given order.
func (col *Collection) PutCandidates(candidates []model.Candidate) error {
	if err := validateCandidates(candidates); err != nil {
		return err
	}

	col.mu.Lock()
	defer col.mu.Unlock()

	next := slices.Clone(col.candidates)
	byID := make(map[string]int, len(col.byID)+len(candidates))
	for k, v := range col.byID {
		byID[k] = v
	}
	for _, c := range candidates {
		if i, ok := byID[c.ID]; ok {
			next[i] = c
			continue
		}
		byID[c.ID] = len(next)
		next = append(next, c)
	}
	return col.commitLocked(next, byID)
}

// ReplaceCandidates swaps the whole candidate list. Later duplicates of an id
// overwrite earlier ones in place.
func (col *Collection) ReplaceCandidates(candidates []model.Candidate) error {
	if err := validateCandidates(candidates); err != nil {
		return err
	}

	col.mu.Lock()
	defer col.mu.Unlock()

	next, byID := dedupe(candidates)
	return col.commitLocked(next, byID)
}

// DeleteCandidate removes the candidate with id.
func (col *Collection) DeleteCandidate(id string) error {
	col.mu.Lock()
	defer col.mu.Unlock()

	i, ok := col.byID[id]
	if !ok {
		return errors.NewCandidateNotFoundError(id, col.settings.Name)
	}
	next := make([]model.Candidate, 0, len(col.candidates)-1)
	next = append(next, col.candidates[:i]...)
	next = append(next, col.candidates[i+1:]...)
	_, byID := dedupe(next)
	return col.commitLocked(next, byID)
}

func dedupe(candidates []model.Candidate) ([]model.Candidate, map[string]int) {
	out := make([]model.Candidate, 0, len(candidates))
	byID := make(map[string]int, len(candidates))
	for _, c := range candidates {
		if i, ok := byID[c.ID]; ok {
			out[i] = c
			continue
		}
		byID[c.ID] = len(out)
		out = append(out, c)
	}
	return out, byID
}

// setCandidates installs candidates loaded from disk without persisting them.
func (col *Collection) setCandidates(candidates []model.Candidate) {
	col.mu.Lock()
	defer col.mu.Unlock()
	col.candidates, col.byID = dedupe(candidates)
}

func (col *Collection) commitLocked(next []model.Candidate, byID map[string]int) error {
	if err := col.saveLocked(next); err != nil {
		return err
	}
	col.candidates = next
	col.byID = byID
	metrics.SetCandidates(col.settings.Name, len(next))
	return nil
}

func (col *Collection) saveLocked(candidates []model.Candidate) error {
	path := filepath.Join(col.catalog.collectionDir(col.settings.Name), candidatesFile)
	if err := persistence.SaveGob(path, candidates); err != nil {
		return fmt.Errorf("failed to save candidates for collection %s: %w", col.settings.Name, err)
	}
	return nil
}

func (col *Collection) persistCandidates() error {
	col.mu.RLock()
	defer col.mu.RUnlock()
	return col.saveLocked(col.candidates)
}

func resolveInt(override *int, fallback int, field string) (int, error) {
	if override == nil {
		return fallback, nil
	}
	if *override < 0 {
		return 0, errors.NewValidationError(field, "must not be negative")
	}
	return *override, nil
}

func resolveFields(override, fallback []string) []string {
	if len(override) > 0 {
		return override
	}
	return fallback
}

// Search ranks the collection with FuzzySearch.
func (col *Collection) Search(query services.SearchQuery) (services.SearchResult, error) {
	start := time.Now()
	settings, candidates := col.snapshot()

	limit, err := resolveInt(query.Limit, settings.DefaultLimit, "limit")
	if err != nil {
		return services.SearchResult{}, err
	}
	minScore, err := resolveInt(query.MinScore, settings.MinScore, "min_score")
	if err != nil {
		return services.SearchResult{}, err
	}

	hits := match.FuzzySearch(query.Query, candidates, match.SearchOptions{
		Limit:        limit,
		MinScore:     minScore,
		SearchFields: resolveFields(query.SearchFields, settings.SearchFields),
		Marker:       col.catalog.marker,
	})

	path := match.PathFuzzy
	if strings.TrimSpace(query.Query) == "" {
		path = match.PathBrowse
	}
	return col.result("search", hits, path, start), nil
}

// Suggest ranks the collection with GetSuggestions. Recent ids come from the
// query when given, otherwise from the collection's recent namespace.
func (col *Collection) Suggest(query services.SuggestQuery) (services.SearchResult, error) {
	start := time.Now()
	settings, candidates := col.snapshot()

	limit, err := resolveInt(query.Limit, settings.DefaultLimit, "limit")
	if err != nil {
		return services.SearchResult{}, err
	}
	minScore, err := resolveInt(query.MinScore, settings.MinScore, "min_score")
	if err != nil {
		return services.SearchResult{}, err
	}
	includeRecent := settings.RecentEnabled()
	if query.IncludeRecent != nil {
		includeRecent = *query.IncludeRecent
	}

	var recentIDs []string
	if includeRecent {
		recentIDs = query.RecentIDs
		if recentIDs == nil {
			recentIDs = col.Recent(query.Namespace).GetRecent()
		}
	}

	hits, path := match.Suggest(query.Query, candidates, recentIDs, match.SuggestOptions{
		Limit:         limit,
		MinScore:      minScore,
		IncludeRecent: includeRecent,
		SearchFields:  resolveFields(query.SearchFields, settings.SearchFields),
		Marker:        col.catalog.marker,
	})
	return col.result("suggest", hits, path, start), nil
}

func (col *Collection) result(operation string, hits []services.Hit, path match.Path, start time.Time) services.SearchResult {
	took := time.Since(start)
	metrics.ObserveQuery(operation, string(path), len(hits), took)
	return services.SearchResult{
		Hits:    hits,
		Total:   len(hits),
		Path:    path,
		Took:    took.Milliseconds(),
		QueryID: uuid.New().String(),
	}
}

// Recent returns the recent-selections store of a namespace in this collection.
func (col *Collection) Recent(namespace string) *recent.Store {
	settings := col.Settings()
	return col.catalog.recentStore(RecentNamespace(settings.Name, namespace), settings.RecentCapacity)
}

// Select records id as the latest selection in namespace. The id must exist.
func (col *Collection) Select(namespace, id string) error {
	if _, err := col.GetCandidate(id); err != nil {
		return err
	}
	col.Recent(namespace).AddRecent(id)
	return nil
}

// Letters lists the first Hebrew letters present among candidate names.
func (col *Collection) Letters() []string {
	_, candidates := col.snapshot()
	return hebrew.AvailableLetters(candidates, label)
}

// Groups buckets candidates by first Hebrew letter. With both bounds set, only
// letters in the inclusive range are kept; with neither set, all are grouped.
func (col *Collection) Groups(from, to string) []services.LetterGroup {
	_, candidates := col.snapshot()
	if from != "" || to != "" {
		candidates = hebrew.FilterByLetterRange(candidates, label, from, to)
	}
	return hebrew.GroupByLetter(candidates, label)
}
