// Package dataset reads candidate records from JSON and YAML files.
//
// A dataset is an array of objects, or an object holding that array under
// "candidates". Every record needs a string or numeric "id" and a string
// "name". Extra fields are selected with gjson paths; values that are not
// strings are skipped.
package dataset

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/gcbaptista/go-suggest/internal/errors"
	"github.com/gcbaptista/go-suggest/model"
)

// Format is a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// wrapperKey holds the record array when the document root is an object.
const wrapperKey = "candidates"

// FormatOf infers the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.NewDatasetError(path, errors.ErrUnsupportedDataset)
}

// LoadFile reads path and extracts candidates with the given field paths.
func LoadFile(path string, fields []string) ([]model.Candidate, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- dataset paths come from collection settings
	if err != nil {
		return nil, errors.NewDatasetError(path, err)
	}
	candidates, err := Parse(data, format, fields)
	if err != nil {
		return nil, errors.NewDatasetError(path, err)
	}
	return candidates, nil
}

// Parse decodes data in format and extracts candidates.
func Parse(data []byte, format Format, fields []string) ([]model.Candidate, error) {
	switch format {
	case FormatJSON:
	case FormatYAML:
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnsupportedDataset, format)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get(wrapperKey)
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("dataset must be an array of records or an object with a %q array", wrapperKey)
	}

	candidates := make([]model.Candidate, 0)
	index := 0
	root.ForEach(func(_, record gjson.Result) bool {
		c, ok := extract(record, fields)
		if !ok {
			log.Printf("Warning: skipping dataset record %d: missing string name or id", index)
		} else {
			candidates = append(candidates, c)
		}
		index++
		return true
	})
	return candidates, nil
}

func extract(record gjson.Result, fields []string) (model.Candidate, bool) {
	if !record.IsObject() {
		return model.Candidate{}, false
	}

	id := record.Get(model.FieldID)
	name := record.Get(model.FieldName)
	if name.Type != gjson.String {
		return model.Candidate{}, false
	}

	var c model.Candidate
	switch id.Type {
	case gjson.String:
		c.ID = id.Str
	case gjson.Number:
		c.ID = id.Raw
	default:
		return model.Candidate{}, false
	}
	if strings.TrimSpace(c.ID) == "" {
		return model.Candidate{}, false
	}
	c.Name = name.Str

	for _, path := range fields {
		v := record.Get(path)
		if v.Type != gjson.String {
			continue
		}
		if c.Fields == nil {
			c.Fields = make(map[string]interface{}, len(fields))
		}
		c.Fields[path] = v.Str
	}
	return c, true
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML document: %w", err)
	}
	out, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}
	return out, nil
}

// jsonCompatible turns map[interface{}]interface{} nodes, which yaml produces
// for non-string keys, into map[string]interface{}.
func jsonCompatible(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, child := range t {
			t[k] = jsonCompatible(child)
		}
		return t
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, child := range t {
			m[fmt.Sprint(k)] = jsonCompatible(child)
		}
		return m
	case []interface{}:
		for i, child := range t {
			t[i] = jsonCompatible(child)
		}
		return t
	}
	return v
}
