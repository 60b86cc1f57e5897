// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared between the extraction and
// report generation pipelines, plus their configuration and error types.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

// AttributeMap is a string map that preserves the order in which keys first
// appear. Report columns derive from attribute keys in first-seen order, so
// decoding must not lose the input ordering the way a plain Go map would.
// The zero value is an empty map ready for use.
type AttributeMap struct {
	keys   []string
	values map[string]string
}

// Len returns the number of attributes.
func (m AttributeMap) Len() int { return len(m.keys) }

// Keys returns the attribute names in first-seen order.
func (m AttributeMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value for key and whether it is present.
func (m AttributeMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores a value, appending the key on first use and overwriting on
// repeat use.
func (m *AttributeMap) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Attributes builds an AttributeMap from alternating key, value strings.
// It panics on an odd argument count; intended for literals and tests.
func Attributes(kv ...string) AttributeMap {
	if len(kv)%2 != 0 {
		panic("types.Attributes: odd number of arguments")
	}
	var m AttributeMap
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

// UnmarshalJSON decodes a JSON object, preserving key order. Duplicate keys
// and non-scalar values are rejected as malformed attribute maps.
func (m *AttributeMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding attributes: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return &InvalidScheduleError{Reason: "attributes must be an object"}
	}

	m.keys = nil
	m.values = make(map[string]string)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding attribute key: %w", err)
		}
		key := keyTok.(string)
		if _, dup := m.values[key]; dup {
			return &InvalidScheduleError{Reason: fmt.Sprintf("duplicate attribute key %q", key)}
		}

		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding attribute %q: %w", key, err)
		}
		val, err := scalarString(key, valTok)
		if err != nil {
			return err
		}

		m.keys = append(m.keys, key)
		m.values[key] = val
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding attributes: %w", err)
	}
	return nil
}

// scalarString renders a decoded JSON token as a cell value.
func scalarString(key string, tok json.Token) (string, error) {
	switch v := tok.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return fmt.Sprintf("%t", v), nil
	case nil:
		return "", nil
	default:
		return "", &InvalidScheduleError{Reason: fmt.Sprintf("attribute %q: value must be a scalar", key)}
	}
}

// MarshalJSON encodes the map as a JSON object in first-seen key order.
func (m AttributeMap) MarshalJSON() ([]byte, error) {
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
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping, preserving key order.
func (m *AttributeMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &InvalidScheduleError{Reason: "attributes must be a mapping"}
	}

	m.keys = nil
	m.values = make(map[string]string)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if _, dup := m.values[keyNode.Value]; dup {
			return &InvalidScheduleError{Reason: fmt.Sprintf("duplicate attribute key %q", keyNode.Value)}
		}
		if len(valNode.Content) > 0 {
			return &InvalidScheduleError{Reason: fmt.Sprintf("attribute %q: value must be a scalar", keyNode.Value)}
		}
		m.keys = append(m.keys, keyNode.Value)
		m.values[keyNode.Value] = valNode.Value
	}
	return nil
}

// MarshalYAML encodes the map as a YAML mapping in first-seen key order.
func (m AttributeMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range m.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: m.values[key]},
		)
	}
	return node, nil
}

// PointEntry is one row of a points list: a named control or monitoring
// point with a type category and free-form attributes.
type PointEntry struct {
	// Name is the point descriptor (e.g. "Supply Air Temp"). Required.
	Name string `json:"name" yaml:"name"`

	// Type is the point category (e.g. "AI", "DO"). Required.
	Type string `json:"type" yaml:"type"`

	// Attributes holds implementation-specific columns, keyed by column name.
	Attributes AttributeMap `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// ScheduleTable is a named group of point entries, optionally nesting child
// tables. The tree is parent-owned; validation rejects cycles before any
// rendering happens.
type ScheduleTable struct {
	// Name labels the panel or system grouping. Required.
	Name string `json:"name" yaml:"name"`

	// Entries are the point rows of this table, in input order.
	Entries []PointEntry `json:"entries,omitempty" yaml:"entries,omitempty"`

	// Children are nested sub-tables rendered indented beneath this table.
	Children []*ScheduleTable `json:"children,omitempty" yaml:"children,omitempty"`
}

// ReportDocument is the input to one generation call: the ordered top-level
// schedule tables plus report metadata. It lives only for the duration of
// that call and is never persisted.
type ReportDocument struct {
	// Title is the report title printed on the first page.
	Title string `json:"title" yaml:"title"`

	// GeneratedAt is the declared generation timestamp. It is the only
	// nondeterministic input: rendering the same document with the same
	// timestamp and page config yields byte-identical output.
	GeneratedAt time.Time `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`

	// Tables are the top-level schedule tables in render order.
	Tables []*ScheduleTable `json:"tables" yaml:"tables"`
}
