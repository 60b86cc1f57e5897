// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"testing"

	"github.com/pdiddy/points-engine/pkg/types"
)

func TestValidateConfig(t *testing.T) {
	base := types.DefaultPageConfig()

	tests := []struct {
		name      string
		mutate    func(*types.PageConfig)
		wantField string
	}{
		{"defaults pass", func(c *types.PageConfig) {}, ""},
		{"letter passes", func(c *types.PageConfig) { c.PageSize = "Letter" }, ""},
		{"unknown page size", func(c *types.PageConfig) { c.PageSize = "tabloid" }, "page_size"},
		{"zero max rows", func(c *types.PageConfig) { c.MaxRowsPerPage = 0 }, "max_rows_per_page"},
		{"negative font", func(c *types.PageConfig) { c.FontSize = -1 }, "font_size"},
		{"giant font", func(c *types.PageConfig) { c.FontSize = 100 }, "font_size"},
		{"negative margin", func(c *types.PageConfig) { c.MarginTop = -1 }, "margin_top"},
		{"negative indent", func(c *types.PageConfig) { c.Indent = -5 }, "indent"},
		{"margins consume width", func(c *types.PageConfig) { c.MarginLeft, c.MarginRight = 300, 300 }, "margins"},
		{"margins consume height", func(c *types.PageConfig) { c.MarginTop, c.MarginBottom = 500, 500 }, "margins"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := ValidateConfig(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateConfig: %v", err)
				}
				return
			}
			var cfgErr *types.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want ConfigurationError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateDocumentRejectsCycle(t *testing.T) {
	a := &types.ScheduleTable{Name: "A"}
	b := &types.ScheduleTable{Name: "B"}
	a.Children = []*types.ScheduleTable{b}
	b.Children = []*types.ScheduleTable{a}

	err := ValidateDocument(&types.ReportDocument{Title: "r", Tables: []*types.ScheduleTable{a}})
	var schedErr *types.InvalidScheduleError
	if !errors.As(err, &schedErr) {
		t.Fatalf("error = %v, want InvalidScheduleError", err)
	}
}

func TestValidateDocumentRejectsSharedTable(t *testing.T) {
	shared := &types.ScheduleTable{Name: "shared"}
	doc := &types.ReportDocument{
		Title:  "r",
		Tables: []*types.ScheduleTable{shared, shared},
	}

	var schedErr *types.InvalidScheduleError
	if !errors.As(ValidateDocument(doc), &schedErr) {
		t.Fatal("shared table accepted")
	}
}

func TestValidateDocumentFieldRules(t *testing.T) {
	tests := []struct {
		name string
		doc  *types.ReportDocument
		ok   bool
	}{
		{"nil document", nil, false},
		{
			"nil table in tree",
			&types.ReportDocument{Tables: []*types.ScheduleTable{nil}},
			false,
		},
		{
			"blank table name",
			&types.ReportDocument{Tables: []*types.ScheduleTable{{Name: "  "}}},
			false,
		},
		{
			"entry missing type",
			&types.ReportDocument{Tables: []*types.ScheduleTable{{
				Name:    "AHU-01",
				Entries: []types.PointEntry{{Name: "Fan Run"}},
			}}},
			false,
		},
		{
			"entry missing name",
			&types.ReportDocument{Tables: []*types.ScheduleTable{{
				Name:    "AHU-01",
				Entries: []types.PointEntry{{Type: "DI"}},
			}}},
			false,
		},
		{
			"empty table is valid",
			&types.ReportDocument{Tables: []*types.ScheduleTable{{Name: "AHU-01"}}},
			true,
		},
		{
			"nested valid document",
			&types.ReportDocument{Tables: []*types.ScheduleTable{{
				Name:    "AHU-01",
				Entries: []types.PointEntry{{Name: "Fan Run", Type: "DI"}},
				Children: []*types.ScheduleTable{{
					Name:    "AHU-01 Coils",
					Entries: []types.PointEntry{{Name: "Valve Cmd", Type: "AO"}},
				}},
			}}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.ok && err != nil {
				t.Errorf("ValidateDocument: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
