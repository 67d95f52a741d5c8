package model

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"sort"
)

// Reserved candidate keys. Every other key is an extra field.
const (
	FieldID   = "id"
	FieldName = "name"
)

func init() {
	// Extra field values travel through gob snapshots as interface{}.
	gob.Register(map[string]interface{}{})
	gob.Register([]interface{}{})
}

// Candidate is one selectable entry: a breed, a business, an audience.
// On the wire it is a flat JSON object, {"id": ..., "name": ..., <extra>...}.
type Candidate struct {
	ID     string
	Name   string
	Fields map[string]interface{}
}

// CandidateID implements match.Searchable.
func (c Candidate) CandidateID() string { return c.ID }

// DisplayName implements match.Searchable.
func (c Candidate) DisplayName() string { return c.Name }

// SearchField returns the string value of field. Missing and non-string
// values report false.
func (c Candidate) SearchField(field string) (string, bool) {
	switch field {
	case FieldName:
		return c.Name, true
	case FieldID:
		return c.ID, true
	}
	v, ok := c.Fields[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// FieldNames lists the extra field keys in sorted order.
func (c Candidate) FieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON flattens extra fields next to id and name.
func (c Candidate) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(c.Fields)+2)
	for k, v := range c.Fields {
		flat[k] = v
	}
	flat[FieldID] = c.ID
	flat[FieldName] = c.Name
	return json.Marshal(flat)
}

// UnmarshalJSON reads a flat object. id and name must be strings when present.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var flat map[string]interface{}
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if flat == nil {
		return fmt.Errorf("candidate must be a JSON object")
	}

	var out Candidate
	for k, v := range flat {
		switch k {
		case FieldID:
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("candidate %q must be a string, got %T", FieldID, v)
			}
			out.ID = s
		case FieldName:
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("candidate %q must be a string, got %T", FieldName, v)
			}
			out.Name = s
		default:
			if out.Fields == nil {
				out.Fields = make(map[string]interface{})
			}
			out.Fields[k] = v
		}
	}
	*c = out
	return nil
}
