// Package config provides collection settings and application configuration.
package config

import (
	"strings"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultLimit          = 10
	DefaultMinScore       = 5
	DefaultRecentCapacity = 5
	NameField             = "name"
)

// CollectionSettings configures how one collection is searched.
//
// SearchFields order matters only for ties: when two fields score the same for a
// candidate, the earlier field is reported as the matched field.
type CollectionSettings struct {
	Name           string   `json:"name"`
	SearchFields   []string `json:"search_fields"`             // Fields scored per candidate, e.g. ["name", "hebrew"]
	DefaultLimit   int      `json:"default_limit"`             // Results returned when a query sets no limit
	MinScore       int      `json:"min_score"`                 // Fuzzy matches below this are dropped
	IncludeRecent  *bool    `json:"include_recent,omitempty"`  // Boost and surface recent selections, nil means true
	RecentCapacity int      `json:"recent_capacity"`           // Ids kept per recent namespace
	DatasetPath    string   `json:"dataset_path,omitempty"`    // Optional JSON/YAML file the collection is loaded from
	DatasetFields  []string `json:"dataset_fields,omitempty"`  // gjson paths extracted from dataset records as extra fields
}

// RecentEnabled reports whether recent selections are used, defaulting to true.
func (settings *CollectionSettings) RecentEnabled() bool {
	return settings.IncludeRecent == nil || *settings.IncludeRecent
}

// ValidateFieldNames returns a message for every invalid field reference.
func (settings *CollectionSettings) ValidateFieldNames() []string {
	var conflicts []string

	conflicts = append(conflicts, checkDuplicates("search_fields", settings.SearchFields)...)
	conflicts = append(conflicts, checkDuplicates("dataset_fields", settings.DatasetFields)...)

	allFields := make([]string, 0, len(settings.SearchFields)+len(settings.DatasetFields))
	allFields = append(allFields, settings.SearchFields...)
	allFields = append(allFields, settings.DatasetFields...)
	for _, field := range allFields {
		if strings.TrimSpace(field) == "" {
			conflicts = append(conflicts, "Field name cannot be empty or whitespace-only")
		}
	}

	for _, field := range settings.DatasetFields {
		if field == "id" || field == NameField {
			conflicts = append(conflicts, "Field '"+field+"' in dataset_fields is reserved")
		}
	}

	if settings.DefaultLimit < 0 {
		conflicts = append(conflicts, "default_limit must not be negative")
	}
	if settings.MinScore < 0 {
		conflicts = append(conflicts, "min_score must not be negative")
	}
	if settings.RecentCapacity < 0 {
		conflicts = append(conflicts, "recent_capacity must not be negative")
	}

	return conflicts
}

func checkDuplicates(fieldName string, fields []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, field := range fields {
		if seen[field] {
			errors = append(errors, "Duplicate field '"+field+"' found in "+fieldName)
		}
		seen[field] = true
	}

	return errors
}

// ApplyDefaults fills zero values. MinScore 0 is a legitimate setting and is
// only defaulted for freshly created settings through NewCollectionSettings.
func (settings *CollectionSettings) ApplyDefaults() {
	if len(settings.SearchFields) == 0 {
		settings.SearchFields = []string{NameField}
	}
	if settings.DefaultLimit == 0 {
		settings.DefaultLimit = DefaultLimit
	}
	if settings.RecentCapacity == 0 {
		settings.RecentCapacity = DefaultRecentCapacity
	}
	if settings.IncludeRecent == nil {
		enabled := true
		settings.IncludeRecent = &enabled
	}
	if settings.DatasetFields == nil {
		settings.DatasetFields = []string{}
	}
}

// NewCollectionSettings returns settings for name with every default applied.
func NewCollectionSettings(name string) CollectionSettings {
	settings := CollectionSettings{Name: name, MinScore: DefaultMinScore}
	settings.ApplyDefaults()
	return settings
}
