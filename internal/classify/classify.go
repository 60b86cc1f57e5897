// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify identifies what each page of a drawing set contains, so
// downstream processing can focus on schematic (P&ID) pages and skip plant
// layouts. Classification runs in three levels: a parsed drawing index, a
// per-page keyword scan, and a low-resolution colour analysis fallback for
// documents without a text layer.
package classify

import (
	"context"
	"image"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/points-engine/pkg/types"
)

// PageType labels what a page contains.
type PageType string

const (
	PagePID     PageType = "pid"
	PageLayout  PageType = "layout"
	PageIndex   PageType = "index"
	PageLegend  PageType = "legend"
	PageUnknown PageType = "unknown"
)

var pidKeywords = []string{
	"SCHEMATIC", "SCHEMATICS", "P&ID", "P&I",
	"PIPING AND INSTRUMENTATION", "FLOW DIAGRAM",
}

var layoutKeywords = []string{
	"LAYOUT", "PLAN", "ELEVATION", "SECTION", "DETAIL",
	"GA", "GENERAL ARRANGEMENT", "PLANTROOM",
}

var indexKeywords = []string{
	"DRAWING INDEX", "INDEX", "TABLE OF CONTENTS",
	"CONTENTS", "DRAWING LIST",
}

var legendKeywords = []string{
	"LEGEND", "SYMBOL", "STANDARD DETAIL", "KEY",
}

// classificationDPI keeps the visual fallback cheap.
const classificationDPI = 72

// indexSearchPages limits how deep into the document the index is sought.
const indexSearchPages = 5

// drawingEntryPattern matches index lines like "M602 MECHANICAL PIPEWORK
// SCHEMATICS": a short drawing code followed by a title.
var drawingEntryPattern = regexp.MustCompile(`^([A-Z]{1,2}\d{2,4})\s+(.{6,})$`)

// DrawingEntry is one row of a parsed drawing index.
type DrawingEntry struct {
	Number string   `json:"number" yaml:"number"`
	Name   string   `json:"name" yaml:"name"`
	Type   PageType `json:"type" yaml:"type"`
}

// Result is the classification of a whole document.
type Result struct {
	TotalPages int `json:"total_pages" yaml:"total_pages"`

	// IndexPage is the 1-based drawing index page, or 0 when none was found.
	IndexPage int `json:"index_page,omitempty" yaml:"index_page,omitempty"`

	PIDPages     []int `json:"pid_pages,omitempty" yaml:"pid_pages,omitempty"`
	LayoutPages  []int `json:"layout_pages,omitempty" yaml:"layout_pages,omitempty"`
	UnknownPages []int `json:"unknown_pages,omitempty" yaml:"unknown_pages,omitempty"`

	// Method records which classification level produced the result:
	// "index", "title", or "visual".
	Method string `json:"method" yaml:"method"`
}

// ClassifyDocument classifies every page of a PDF drawing set.
func ClassifyDocument(ctx context.Context, data []byte) (*Result, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, &types.UnreadablePDFError{Reason: "failed to open document", Err: err}
	}
	defer doc.Close()

	total := doc.NumPage()
	if total == 0 {
		return nil, &types.UnreadablePDFError{Reason: "document has no pages"}
	}

	texts := make([]string, total)
	for i := 0; i < total; i++ {
		text, err := doc.Text(i)
		if err != nil {
			text = ""
		}
		texts[i] = strings.ToUpper(text)
	}

	if indexPage, entries := findIndex(texts); indexPage > 0 && len(entries) > 0 {
		return classifyFromIndex(total, indexPage, entries), nil
	}

	result := classifyByTitles(texts)
	if len(result.PIDPages) > 0 || len(result.LayoutPages) > 0 {
		result.Method = "title"
		return result, nil
	}

	return classifyByColour(ctx, doc, total)
}

// findIndex looks for a drawing index within the leading pages and parses
// its entries.
func findIndex(texts []string) (int, []DrawingEntry) {
	limit := indexSearchPages
	if len(texts) < limit {
		limit = len(texts)
	}
	for p := 0; p < limit; p++ {
		if !containsAny(texts[p], indexKeywords) {
			continue
		}
		if entries := parseIndexPage(texts[p]); len(entries) > 0 {
			return p + 1, entries
		}
	}
	return 0, nil
}

// parseIndexPage extracts drawing entries from index page text.
func parseIndexPage(text string) []DrawingEntry {
	var entries []DrawingEntry
	for _, line := range strings.Split(text, "\n") {
		m := drawingEntryPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[2])
		entries = append(entries, DrawingEntry{
			Number: m[1],
			Name:   name,
			Type:   classifyName(name),
		})
	}
	return entries
}

// classifyName classifies a drawing by its index title. Schematic keywords
// take precedence over layout keywords.
func classifyName(name string) PageType {
	upper := strings.ToUpper(name)
	switch {
	case containsAny(upper, pidKeywords):
		return PagePID
	case containsAny(upper, legendKeywords):
		return PageLegend
	case containsAny(upper, layoutKeywords):
		return PageLayout
	default:
		return PageUnknown
	}
}

// classifyFromIndex maps index entries onto pages, assuming drawings follow
// the index in order.
func classifyFromIndex(total, indexPage int, entries []DrawingEntry) *Result {
	result := &Result{TotalPages: total, IndexPage: indexPage, Method: "index"}

	page := indexPage + 1
	for _, entry := range entries {
		if page > total {
			break
		}
		switch entry.Type {
		case PagePID:
			result.PIDPages = append(result.PIDPages, page)
		case PageLayout:
			result.LayoutPages = append(result.LayoutPages, page)
		case PageLegend:
			// Legend pages are neither analyzed nor flagged unknown.
		default:
			result.UnknownPages = append(result.UnknownPages, page)
		}
		page++
	}
	return result
}

// classifyByTitles scans each page's own text for type keywords.
func classifyByTitles(texts []string) *Result {
	result := &Result{TotalPages: len(texts)}
	for i, text := range texts {
		page := i + 1
		isPID := containsAny(text, pidKeywords)
		isLayout := containsAny(text, layoutKeywords)

		switch {
		case containsAny(text, indexKeywords):
			result.IndexPage = page
		case isPID:
			// Schematic keywords win when both appear.
			result.PIDPages = append(result.PIDPages, page)
		case isLayout:
			result.LayoutPages = append(result.LayoutPages, page)
		default:
			result.UnknownPages = append(result.UnknownPages, page)
		}
	}
	return result
}

// classifyByColour renders pages at low resolution and separates colourful
// plant layouts from monochrome schematics. Monochrome pages stay unknown
// rather than being asserted as schematics.
func classifyByColour(ctx context.Context, doc *fitz.Document, total int) (*Result, error) {
	result := &Result{TotalPages: total, Method: "visual"}
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page := i + 1
		img, err := doc.ImageDPI(i, classificationDPI)
		if err != nil {
			result.UnknownPages = append(result.UnknownPages, page)
			continue
		}
		if isColourful(img) {
			result.LayoutPages = append(result.LayoutPages, page)
		} else {
			result.UnknownPages = append(result.UnknownPages, page)
		}
	}
	return result, nil
}

// isColourful samples pixels and reports whether a meaningful share carries
// saturated colour. Thresholds follow the original classifier: saturation
// spread above 50/255 on mid-brightness pixels, colourful when over 15% of
// samples qualify.
func isColourful(img image.Image) bool {
	bounds := img.Bounds()
	const step = 8

	colourful, checked := 0, 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r, g, b := int(r16>>8), int(g16>>8), int(b16>>8)

			maxV := max(r, max(g, b))
			minV := min(r, min(g, b))
			if maxV-minV > 50 && maxV > 30 && maxV < 230 {
				colourful++
			}
			checked++
		}
	}
	if checked == 0 {
		return false
	}
	return float64(colourful)/float64(checked) > 0.15
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
