// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/points-engine/pkg/types"
)

// pageSizes maps supported page size names to their dimensions in points.
var pageSizes = map[string][2]float64{
	"a4":     {595.28, 841.89},
	"letter": {612, 792},
	"legal":  {612, 1008},
}

// ValidateConfig checks a page configuration against the supported ranges.
// Violations are reported as *types.ConfigurationError.
func ValidateConfig(cfg types.PageConfig) error {
	size, ok := pageSizes[strings.ToLower(cfg.PageSize)]
	if !ok {
		return &types.ConfigurationError{Field: "page_size", Reason: fmt.Sprintf("unsupported page size %q", cfg.PageSize)}
	}
	if cfg.MaxRowsPerPage <= 0 {
		return &types.ConfigurationError{Field: "max_rows_per_page", Reason: "must be positive"}
	}
	if cfg.FontSize <= 0 || cfg.FontSize > 72 {
		return &types.ConfigurationError{Field: "font_size", Reason: "must be in (0, 72]"}
	}
	for field, m := range map[string]float64{
		"margin_left":   cfg.MarginLeft,
		"margin_top":    cfg.MarginTop,
		"margin_right":  cfg.MarginRight,
		"margin_bottom": cfg.MarginBottom,
	} {
		if m < 0 {
			return &types.ConfigurationError{Field: field, Reason: "must not be negative"}
		}
	}
	if cfg.Indent < 0 {
		return &types.ConfigurationError{Field: "indent", Reason: "must not be negative"}
	}
	if cfg.MarginLeft+cfg.MarginRight >= size[0] {
		return &types.ConfigurationError{Field: "margins", Reason: "horizontal margins leave no printable width"}
	}
	if cfg.MarginTop+cfg.MarginBottom >= size[1] {
		return &types.ConfigurationError{Field: "margins", Reason: "vertical margins leave no printable height"}
	}
	return nil
}

// ValidateDocument checks a report document against the schedule data model:
// every table reachable exactly once (no cycles, no sharing), names present
// on tables and entries. Violations are reported as
// *types.InvalidScheduleError before any layout work begins.
func ValidateDocument(doc *types.ReportDocument) error {
	if doc == nil {
		return &types.InvalidScheduleError{Reason: "document is nil"}
	}

	seen := make(map[*types.ScheduleTable]bool)
	onPath := make(map[*types.ScheduleTable]bool)

	var walk func(t *types.ScheduleTable) error
	walk = func(t *types.ScheduleTable) error {
		if t == nil {
			return &types.InvalidScheduleError{Reason: "nil table in tree"}
		}
		if onPath[t] {
			return &types.InvalidScheduleError{Table: t.Name, Reason: "cycle in table tree"}
		}
		if seen[t] {
			return &types.InvalidScheduleError{Table: t.Name, Reason: "table appears more than once in tree"}
		}
		seen[t] = true
		onPath[t] = true
		defer delete(onPath, t)

		if strings.TrimSpace(t.Name) == "" {
			return &types.InvalidScheduleError{Reason: "table name is required"}
		}
		for i, e := range t.Entries {
			if strings.TrimSpace(e.Name) == "" {
				return &types.InvalidScheduleError{Table: t.Name, Reason: fmt.Sprintf("entry %d: point name is required", i)}
			}
			if strings.TrimSpace(e.Type) == "" {
				return &types.InvalidScheduleError{Table: t.Name, Reason: fmt.Sprintf("entry %d (%s): point type is required", i, e.Name)}
			}
		}
		for _, child := range t.Children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	for _, t := range doc.Tables {
		if err := walk(t); err != nil {
			return err
		}
	}
	return nil
}
