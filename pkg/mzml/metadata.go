package mzml

import (
	"bytes"
	"encoding/json"
)

// Value is a single extracted metadata value, an ontology annotation
// and/or a plain value.
type Value struct {
	Accession string `json:"accession,omitempty"`
	Name      string `json:"name,omitempty"`
	Value     string `json:"value,omitempty"`
}

// Field is a named metadata field. It either holds a single Value or, for
// repeatable terms, a list of entries.
type Field struct {
	Value

	Entries []Value `json:"-"`
}

// MarshalJSON serializes a repeatable field as {"entry_list": [...]} and a
// single-value field as a flat object.
func (f *Field) MarshalJSON() ([]byte, error) {
	if f.Entries != nil {
		return json.Marshal(map[string][]Value{"entry_list": f.Entries})
	}

	return json.Marshal(f.Value)
}

// Metadata is an ordered collection of extracted metadata fields.
// Fields keep the order in which they were first set.
type Metadata struct {
	keys   []string
	fields map[string]*Field
}

func NewMetadata() *Metadata {
	return &Metadata{fields: map[string]*Field{}}
}

func (m *Metadata) field(key string) *Field {
	f, exist := m.fields[key]
	if !exist {
		f = &Field{}
		m.fields[key] = f
		m.keys = append(m.keys, key)
	}

	return f
}

// Set stores a single-value field, overwriting a previous value.
func (m *Metadata) Set(key string, val Value) {
	f := m.field(key)
	f.Value = val
	f.Entries = nil
}

// Append adds an entry to a repeatable field.
func (m *Metadata) Append(key string, val Value) {
	f := m.field(key)
	f.Entries = append(f.Entries, val)
}

// Get returns the field with the given name.
func (m *Metadata) Get(key string) (*Field, bool) {
	f, exist := m.fields[key]
	return f, exist
}

// Value returns the plain value of a single-value field or an empty string
// if the field does not exist.
func (m *Metadata) Value(key string) string {
	f, exist := m.fields[key]
	if !exist {
		return ""
	}

	return f.Value.Value
}

// Keys returns the field names in insertion order.
func (m *Metadata) Keys() []string {
	return m.keys
}

// Len returns the number of fields.
func (m *Metadata) Len() int {
	return len(m.keys)
}

// MarshalJSON serializes the metadata as a JSON object with the fields in
// insertion order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)

		buf.WriteByte(':')

		v, err := json.Marshal(m.fields[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// isaPlainKeys are field names that map to ISA-Tab columns directly, all
// other fields become "Parameter Value[...]" columns.
var isaPlainKeys = map[string]struct{}{
	"data transformation":                  {},
	"data transformation software":         {},
	"data transformation software version": {},
	"term_source":                          {},
	"Raw Spectral Data File":               {},
	"MS Assay Name":                        {},
	"Sample Name":                          {},
}

// ISA returns a copy of the metadata with the field names translated to
// ISA-Tab column labels.
func (m *Metadata) ISA() *Metadata {
	result := NewMetadata()

	for _, key := range m.keys {
		label := key
		if _, plain := isaPlainKeys[key]; !plain {
			label = "Parameter Value[" + key + "]"
		}

		f := m.fields[key]
		if f.Entries != nil {
			for _, e := range f.Entries {
				result.Append(label, e)
			}
		} else {
			result.Set(label, f.Value)
		}
	}

	return result
}
