package services

import (
	"github.com/gcbaptista/go-suggest/config"
	"github.com/gcbaptista/go-suggest/internal/hebrew"
	"github.com/gcbaptista/go-suggest/internal/match"
	"github.com/gcbaptista/go-suggest/model"
)

// Hit is one ranked candidate in a result.
type Hit = match.ScoredMatch[model.Candidate]

// LetterGroup is a bucket of candidates sharing a first Hebrew letter.
type LetterGroup = hebrew.Group[model.Candidate]

// SearchQuery runs FuzzySearch against a collection. Nil pointers fall back to
// the collection settings.
type SearchQuery struct {
	Query        string   `json:"query"`
	Limit        *int     `json:"limit,omitempty"`
	MinScore     *int     `json:"min_score,omitempty"`
	SearchFields []string `json:"search_fields,omitempty"` // Optional: subset of fields to score, in priority order
}

// SuggestQuery runs GetSuggestions against a collection.
type SuggestQuery struct {
	Query         string   `json:"query"`
	Limit         *int     `json:"limit,omitempty"`
	MinScore      *int     `json:"min_score,omitempty"`
	IncludeRecent *bool    `json:"include_recent,omitempty"`
	SearchFields  []string `json:"search_fields,omitempty"`
	Namespace     string   `json:"namespace,omitempty"`  // Recent namespace inside the collection, e.g. a user or form id
	RecentIDs     []string `json:"recent_ids,omitempty"` // Optional: recent ids supplied by the caller instead of the store
}

// SearchResult is returned by Search and Suggest.
type SearchResult struct {
	Hits    []Hit      `json:"hits"`
	Total   int        `json:"total"`
	Path    match.Path `json:"path,omitempty"`
	Took    int64      `json:"took"`     // milliseconds
	QueryID string     `json:"query_id"` // unique UUID for this query
}

// CandidateWriter modifies the candidates of one collection.
type CandidateWriter interface {
	PutCandidates(candidates []model.Candidate) error
	ReplaceCandidates(candidates []model.Candidate) error
	DeleteCandidate(id string) error
	Select(namespace, id string) error // records a recent selection in the collection namespace
}

// CandidateReader reads and ranks the candidates of one collection.
type CandidateReader interface {
	Candidates() []model.Candidate
	GetCandidate(id string) (model.Candidate, error)
	Search(query SearchQuery) (SearchResult, error)
	Suggest(query SuggestQuery) (SearchResult, error)
	Letters() []string
	Groups(from, to string) []LetterGroup
}

// CollectionAccessor combines reads and writes with the collection settings.
type CollectionAccessor interface {
	CandidateReader
	CandidateWriter
	Settings() config.CollectionSettings
}

// CollectionManager manages the lifecycle of collections.
type CollectionManager interface {
	CreateCollection(settings config.CollectionSettings) error
	GetCollection(name string) (CollectionAccessor, error)
	GetCollectionSettings(name string) (config.CollectionSettings, error)
	UpdateCollectionSettings(name string, settings config.CollectionSettings) error
	RenameCollection(oldName, newName string) error
	DeleteCollection(name string) error
	ListCollections() []string
}

// RecentStores hands out recent-selection stores by namespace key.
type RecentStores interface {
	Recent(namespace string) RecentStore
}

// RecentStore is the recent-selections contract used by the API.
type RecentStore interface {
	GetRecent() []string
	AddRecent(id string)
	ClearRecent()
}
