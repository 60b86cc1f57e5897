// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// MarkerKind selects how a marker spec matches a heading line.
type MarkerKind string

const (
	// MarkerLiteral matches lines beginning with a literal prefix.
	MarkerLiteral MarkerKind = "literal"

	// MarkerPattern matches lines against a regular expression.
	MarkerPattern MarkerKind = "pattern"

	// MarkerLineStart matches the first non-blank line of a page against a
	// literal prefix, for documents whose headings always open a page.
	MarkerLineStart MarkerKind = "line-start"
)

// MarkerSpec describes one section-boundary matcher. Specs are evaluated in
// priority order; when several match the same line, the one with the longest
// matched text wins.
type MarkerSpec struct {
	// Kind selects the matching rule.
	Kind MarkerKind `json:"kind" yaml:"kind"`

	// Value is the literal prefix or regular expression, per Kind.
	Value string `json:"value" yaml:"value"`

	// Priority breaks specificity ties; lower values win. Specs keep their
	// list order when priorities are equal.
	Priority int `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// ExtractionConfig holds settings for the extraction pipeline.
type ExtractionConfig struct {
	// Markers are the section-boundary matchers. Empty means the built-in
	// marker set (SECTION / POINTS LIST prefixes and numbered headings).
	Markers []MarkerSpec `json:"markers,omitempty" yaml:"markers,omitempty"`

	// RowTolerance is the vertical distance in points within which positioned
	// text fragments are grouped into one line (default 2.0).
	RowTolerance float64 `json:"row_tolerance,omitempty" yaml:"row_tolerance,omitempty"`
}

// PageConfig holds page and layout settings for report generation.
// All lengths are in typographic points.
type PageConfig struct {
	// PageSize is "A4", "Letter", or "Legal" (default "A4").
	PageSize string `json:"page_size" yaml:"page_size"`

	// MarginLeft, MarginTop, MarginRight and MarginBottom are the page
	// margins (default 40).
	MarginLeft   float64 `json:"margin_left" yaml:"margin_left"`
	MarginTop    float64 `json:"margin_top" yaml:"margin_top"`
	MarginRight  float64 `json:"margin_right" yaml:"margin_right"`
	MarginBottom float64 `json:"margin_bottom" yaml:"margin_bottom"`

	// FontSize is the body font size (default 9).
	FontSize float64 `json:"font_size" yaml:"font_size"`

	// MaxRowsPerPage forces a page break after this many point rows even if
	// more would physically fit (default 40). Must be positive.
	MaxRowsPerPage int `json:"max_rows_per_page" yaml:"max_rows_per_page"`

	// Indent is the horizontal offset applied per nesting level (default 14).
	Indent float64 `json:"indent" yaml:"indent"`
}

// DefaultPageConfig returns the page configuration used when the caller
// supplies a zero value.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		PageSize:       "A4",
		MarginLeft:     40,
		MarginTop:      40,
		MarginRight:    40,
		MarginBottom:   40,
		FontSize:       9,
		MaxRowsPerPage: 40,
		Indent:         14,
	}
}

// ConvertConfig holds settings for page-to-image conversion.
type ConvertConfig struct {
	// DPI is the render resolution (default 150).
	DPI int `json:"dpi" yaml:"dpi"`

	// Pages selects 1-based pages to convert. Empty means all pages.
	Pages []int `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// CacheConfig holds settings for the in-memory PDF session cache.
type CacheConfig struct {
	// TTL is how long an unused session survives (default 30m). Access
	// renews it.
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	// MaxBytes caps the total cached payload size; least recently used
	// sessions are evicted first (default 500 MiB).
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes"`

	// CleanupInterval is how often expired sessions are swept (default 1m).
	CleanupInterval time.Duration `json:"cleanup_interval" yaml:"cleanup_interval"`
}
