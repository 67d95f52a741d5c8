package config

import (
	"testing"
)

func TestValidateFieldNames(t *testing.T) {
	tests := []struct {
		name           string
		settings       CollectionSettings
		expectedErrors int
		description    string
	}{
		{
			name:           "defaults are valid",
			settings:       NewCollectionSettings("breeds"),
			expectedErrors: 0,
			description:    "Freshly created settings should validate cleanly",
		},
		{
			name: "extra search fields",
			settings: CollectionSettings{
				Name:          "breeds",
				SearchFields:  []string{"name", "hebrew", "aliases.en"},
				DatasetFields: []string{"hebrew", "aliases.en"},
			},
			expectedErrors: 0,
			description:    "Search fields may reference dataset paths",
		},
		{
			name: "duplicate search field",
			settings: CollectionSettings{
				Name:         "breeds",
				SearchFields: []string{"name", "hebrew", "name"},
			},
			expectedErrors: 1,
			description:    "Duplicates in search_fields should be reported",
		},
		{
			name: "blank field names",
			settings: CollectionSettings{
				Name:          "breeds",
				SearchFields:  []string{"name", "  "},
				DatasetFields: []string{""},
			},
			expectedErrors: 2,
			description:    "Every blank field name should be reported",
		},
		{
			name: "reserved dataset field",
			settings: CollectionSettings{
				Name:          "breeds",
				SearchFields:  []string{"name"},
				DatasetFields: []string{"id", "name"},
			},
			expectedErrors: 2,
			description:    "id and name are always extracted and cannot be declared",
		},
		{
			name: "negative numbers",
			settings: CollectionSettings{
				Name:           "breeds",
				SearchFields:   []string{"name"},
				DefaultLimit:   -1,
				MinScore:       -5,
				RecentCapacity: -2,
			},
			expectedErrors: 3,
			description:    "Negative limits, scores and capacities are rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := tt.settings.ValidateFieldNames()
			if len(errors) != tt.expectedErrors {
				t.Errorf("%s: expected %d errors, got %d: %v", tt.description, tt.expectedErrors, len(errors), errors)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var settings CollectionSettings
	settings.ApplyDefaults()

	if len(settings.SearchFields) != 1 || settings.SearchFields[0] != NameField {
		t.Errorf("expected search fields [name], got %v", settings.SearchFields)
	}
	if settings.DefaultLimit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, settings.DefaultLimit)
	}
	if settings.RecentCapacity != DefaultRecentCapacity {
		t.Errorf("expected recent capacity %d, got %d", DefaultRecentCapacity, settings.RecentCapacity)
	}
	if !settings.RecentEnabled() {
		t.Error("expected recent selections to default to enabled")
	}
	if settings.MinScore != 0 {
		t.Errorf("expected explicit min score to be preserved, got %d", settings.MinScore)
	}
	if settings.DatasetFields == nil {
		t.Error("expected dataset fields to be initialized")
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	disabled := false
	settings := CollectionSettings{
		SearchFields:   []string{"hebrew"},
		DefaultLimit:   3,
		MinScore:       40,
		IncludeRecent:  &disabled,
		RecentCapacity: 9,
	}
	settings.ApplyDefaults()

	if settings.SearchFields[0] != "hebrew" || settings.DefaultLimit != 3 || settings.MinScore != 40 || settings.RecentCapacity != 9 {
		t.Errorf("explicit values were overwritten: %+v", settings)
	}
	if settings.RecentEnabled() {
		t.Error("expected recent selections to stay disabled")
	}
}

func TestNewCollectionSettings(t *testing.T) {
	settings := NewCollectionSettings("breeds")
	if settings.Name != "breeds" {
		t.Errorf("expected name breeds, got %q", settings.Name)
	}
	if settings.MinScore != DefaultMinScore {
		t.Errorf("expected min score %d, got %d", DefaultMinScore, settings.MinScore)
	}
}
