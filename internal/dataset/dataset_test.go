package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-suggest/internal/errors"
)

const breedsJSON = `[
	{"id": "1", "name": "Labrador Retriever", "i18n": {"he": "לברדור רטריבר"}, "weight": 30},
	{"id": 2, "name": "Golden Retriever", "i18n": {"he": "גולדן רטריבר"}, "group": "sporting"},
	{"id": "3", "name": 7},
	{"name": "No id"},
	"not an object"
]`

const breedsYAML = `
candidates:
  - id: "1"
    name: Labrador Retriever
    i18n:
      he: לברדור רטריבר
  - id: 2
    name: Golden Retriever
    group: sporting
    tags: [gundog, family]
`

func TestParseJSON(t *testing.T) {
	candidates, err := Parse([]byte(breedsJSON), FormatJSON, []string{"i18n.he", "weight", "group"})
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "1", candidates[0].ID)
	assert.Equal(t, "Labrador Retriever", candidates[0].Name)
	assert.Equal(t, map[string]interface{}{"i18n.he": "לברדור רטריבר"}, candidates[0].Fields)

	assert.Equal(t, "2", candidates[1].ID, "numeric ids are kept as written")
	assert.Equal(t, "sporting", candidates[1].Fields["group"])
	_, hasWeight := candidates[1].Fields["weight"]
	assert.False(t, hasWeight)
}

func TestParseYAML(t *testing.T) {
	candidates, err := Parse([]byte(breedsYAML), FormatYAML, []string{"i18n.he", "group", "tags"})
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "לברדור רטריבר", candidates[0].Fields["i18n.he"])
	assert.Equal(t, "2", candidates[1].ID)
	assert.Equal(t, map[string]interface{}{"group": "sporting"}, candidates[1].Fields)
}

func TestParseYAMLNonStringKeys(t *testing.T) {
	doc := `
- id: a
  name: Akita
  1: numeric key
`
	candidates, err := Parse([]byte(doc), FormatYAML, []string{"1"})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "numeric key", candidates[0].Fields["1"])
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"broken json", `[{"id":`, FormatJSON},
		{"scalar root", `"breeds"`, FormatJSON},
		{"object without candidates", `{"items": []}`, FormatJSON},
		{"broken yaml", "- id: [", FormatYAML},
		{"unknown format", `[]`, Format("csv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format, nil)
			assert.Error(t, err)
		})
	}
}

func TestParseEmptyArray(t *testing.T) {
	candidates, err := Parse([]byte(`[]`), FormatJSON, nil)
	require.NoError(t, err)
	assert.NotNil(t, candidates)
	assert.Empty(t, candidates)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"breeds.json", FormatJSON, false},
		{"breeds.YAML", FormatYAML, false},
		{"dir/breeds.yml", FormatYAML, false},
		{"breeds.csv", "", true},
		{"breeds", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrUnsupportedDataset)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "breeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(breedsYAML), 0600))

	candidates, err := LoadFile(path, nil)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Nil(t, candidates[0].Fields)

	_, err = LoadFile(filepath.Join(dir, "missing.json"), nil)
	var dsErr *errors.DatasetError
	require.ErrorAs(t, err, &dsErr)
	assert.True(t, os.IsNotExist(dsErr.Err))
}
