// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"go.yaml.in/yaml/v3"
)

func TestAttributeMapJSONPreservesOrder(t *testing.T) {
	input := `{"setpoint":"21.5","units":"degC","alarm_high":"30","alarm_low":"10"}`

	var m AttributeMap
	if err := json.Unmarshal([]byte(input), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"setpoint", "units", "alarm_high", "alarm_low"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != input {
		t.Errorf("round trip = %s, want %s", out, input)
	}
}

func TestAttributeMapJSONScalars(t *testing.T) {
	var m AttributeMap
	err := json.Unmarshal([]byte(`{"count":3,"enabled":true,"note":null}`), &m)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"count", "3"},
		{"enabled", "true"},
		{"note", ""},
	}
	for _, tt := range tests {
		if got, _ := m.Get(tt.key); got != tt.want {
			t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestAttributeMapJSONRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"duplicate key", `{"units":"degC","units":"K"}`},
		{"nested value", `{"units":{"si":"K"}}`},
		{"array input", `["units"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m AttributeMap
			err := json.Unmarshal([]byte(tt.input), &m)
			var schedErr *InvalidScheduleError
			if !errors.As(err, &schedErr) {
				t.Errorf("error = %v, want InvalidScheduleError", err)
			}
		})
	}
}

func TestAttributeMapYAMLPreservesOrder(t *testing.T) {
	input := "units: degC\nsetpoint: \"21.5\"\nsensor: PT100\n"

	var m AttributeMap
	if err := yaml.Unmarshal([]byte(input), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"units", "setpoint", "sensor"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}

	out, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back AttributeMap
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}
	if got := back.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip keys = %v, want %v", got, want)
	}
}

func TestAttributeMapSetOverwritesWithoutReordering(t *testing.T) {
	m := Attributes("a", "1", "b", "2")
	m.Set("a", "9")

	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("keys = %v, want [a b]", got)
	}
	if v, _ := m.Get("a"); v != "9" {
		t.Errorf("Get(a) = %q, want 9", v)
	}
}

func TestScheduleDocumentDecode(t *testing.T) {
	input := `{
		"title": "AHU Points List",
		"tables": [
			{
				"name": "AHU-01",
				"entries": [
					{"name": "Supply Air Temp", "type": "AI", "attributes": {"units": "degC"}}
				],
				"children": [
					{"name": "AHU-01 Fans", "entries": [{"name": "Fan Run", "type": "DI"}]}
				]
			}
		]
	}`

	var doc ReportDocument
	if err := json.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Title != "AHU Points List" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Tables) != 1 || len(doc.Tables[0].Children) != 1 {
		t.Fatalf("unexpected tree shape: %+v", doc.Tables)
	}
	if got := doc.Tables[0].Children[0].Entries[0].Type; got != "DI" {
		t.Errorf("nested entry type = %q, want DI", got)
	}
}
