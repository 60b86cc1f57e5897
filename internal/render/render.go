// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render lays out a report document as a paginated PDF of nested
// point schedule tables.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/points-engine/pkg/types"
)

const fontFamily = "Helvetica"

// rgb is an 8-bit colour triple.
type rgb struct{ r, g, b int }

// Report colours follow the original points-list styling: dark blue bars with
// white text, and signal-type cells tinted per category.
var (
	titleBarFill  = rgb{31, 78, 121}
	headerRowFill = rgb{46, 117, 182}

	typeFills = map[string]rgb{
		"AI": {198, 239, 206},
		"AO": {255, 235, 156},
		"DI": {189, 215, 238},
		"DO": {248, 203, 173},
	}
	integrationFill = rgb{255, 192, 0}
)

// Render lays out doc as a PDF and returns its bytes. A zero cfg means
// DefaultPageConfig. The document is validated before any layout work; on
// failure no partial output is returned. Output is deterministic for a fixed
// doc.GeneratedAt.
func Render(doc *types.ReportDocument, cfg types.PageConfig) ([]byte, error) {
	r, err := layoutDocument(doc, cfg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// PageCount reports how many pages rendering doc with cfg produces, without
// returning the bytes.
func PageCount(doc *types.ReportDocument, cfg types.PageConfig) (int, error) {
	r, err := layoutDocument(doc, cfg)
	if err != nil {
		return 0, err
	}
	return r.pdf.PageCount(), nil
}

// layoutDocument validates inputs and performs the full layout pass.
func layoutDocument(doc *types.ReportDocument, cfg types.PageConfig) (*renderer, error) {
	if cfg == (types.PageConfig{}) {
		cfg = types.DefaultPageConfig()
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	r := newRenderer(doc, cfg)
	r.drawReportHeader(doc.Title)
	for _, b := range flatten(doc.Tables) {
		r.drawBlock(b)
	}
	if err := r.pdf.Error(); err != nil {
		return nil, fmt.Errorf("laying out PDF: %w", err)
	}
	return r, nil
}

// tableRun carries the geometry of one table block so continuation pages can
// repeat its title and header.
type tableRun struct {
	name   string
	cols   []string
	colW   float64
	width  float64
	indent float64
}

// renderer wraps an fpdf document with the page-break bookkeeping for
// schedule tables.
type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	cfg types.PageConfig

	generatedAt time.Time
	bottom      float64
	rowH        float64
	titleH      float64
	rowsOnPage  int
}

func newRenderer(doc *types.ReportDocument, cfg types.PageConfig) *renderer {
	pdf := fpdf.New("P", "pt", canonicalSize(cfg.PageSize), "")

	ts := doc.GeneratedAt
	if ts.IsZero() {
		ts = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(ts)
	pdf.SetModificationDate(ts)
	pdf.SetTitle(doc.Title, true)
	pdf.SetMargins(cfg.MarginLeft, cfg.MarginTop, cfg.MarginRight)
	pdf.SetAutoPageBreak(false, cfg.MarginBottom)

	_, pageH := pdf.GetPageSize()
	r := &renderer{
		pdf:         pdf,
		tr:          pdf.UnicodeTranslatorFromDescriptor(""),
		cfg:         cfg,
		generatedAt: ts,
		bottom:      pageH - cfg.MarginBottom,
		rowH:        cfg.FontSize + 6,
		titleH:      cfg.FontSize + 8,
	}
	pdf.AddPage()
	return r
}

// canonicalSize maps a validated page size name onto fpdf's spelling.
func canonicalSize(name string) string {
	switch strings.ToLower(name) {
	case "letter":
		return "Letter"
	case "legal":
		return "Legal"
	default:
		return "A4"
	}
}

func (r *renderer) drawReportHeader(title string) {
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.SetFont(fontFamily, "B", r.cfg.FontSize+5)
	r.pdf.CellFormat(0, r.titleH+4, r.tr(title), "", 1, "L", false, 0, "")

	r.pdf.SetFont(fontFamily, "", r.cfg.FontSize-1)
	r.pdf.SetTextColor(90, 90, 90)
	stamp := "Generated " + r.generatedAt.UTC().Format("2006-01-02 15:04 UTC")
	r.pdf.CellFormat(0, r.rowH, stamp, "", 1, "L", false, 0, "")
	r.pdf.Ln(6)
}

// drawBlock renders one table at its nesting depth, breaking pages so no
// point row is ever split and the header repeats after every break.
func (r *renderer) drawBlock(b block) {
	t := b.table
	indent := float64(b.depth) * r.cfg.Indent
	cols := tableColumns(t)

	usable := r.pageWidth() - r.cfg.MarginLeft - r.cfg.MarginRight - indent
	run := tableRun{
		name:   t.Name,
		cols:   cols,
		colW:   usable / float64(len(cols)),
		width:  usable,
		indent: indent,
	}

	// Keep the title bar, header row, and first point row together.
	r.ensureRoom(r.titleH + 2*r.rowH)
	r.drawTitleBar(run, false)
	r.drawHeaderRow(run)

	if len(t.Entries) == 0 && len(t.Children) == 0 {
		// Empty tables render as a labeled block with a placeholder row
		// rather than being rejected.
		r.drawPlaceholderRow(run)
		r.pdf.Ln(4)
		return
	}

	for _, e := range t.Entries {
		if r.rowsOnPage >= r.cfg.MaxRowsPerPage || r.pdf.GetY()+r.rowH > r.bottom {
			r.breakPage(run)
		}
		r.drawEntryRow(run, e)
		r.rowsOnPage++
	}
	r.pdf.Ln(4)
}

func (r *renderer) pageWidth() float64 {
	w, _ := r.pdf.GetPageSize()
	return w
}

// ensureRoom starts a fresh page when fewer than h points remain in the body.
func (r *renderer) ensureRoom(h float64) {
	if r.pdf.GetY()+h > r.bottom {
		r.pdf.AddPage()
		r.rowsOnPage = 0
	}
}

// breakPage starts a new page and repeats the running table's title and
// header row.
func (r *renderer) breakPage(run tableRun) {
	r.pdf.AddPage()
	r.rowsOnPage = 0
	r.drawTitleBar(run, true)
	r.drawHeaderRow(run)
}

func (r *renderer) drawTitleBar(run tableRun, continued bool) {
	label := run.name
	if continued {
		label += " (continued)"
	}
	r.pdf.SetX(r.cfg.MarginLeft + run.indent)
	r.pdf.SetFont(fontFamily, "B", r.cfg.FontSize+1)
	r.pdf.SetFillColor(titleBarFill.r, titleBarFill.g, titleBarFill.b)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.CellFormat(run.width, r.titleH, " "+r.truncate(label, run.width), "1", 0, "L", true, 0, "")
	r.pdf.Ln(r.titleH)
}

func (r *renderer) drawHeaderRow(run tableRun) {
	r.pdf.SetX(r.cfg.MarginLeft + run.indent)
	r.pdf.SetFont(fontFamily, "B", r.cfg.FontSize)
	r.pdf.SetFillColor(headerRowFill.r, headerRowFill.g, headerRowFill.b)
	r.pdf.SetTextColor(255, 255, 255)
	for _, col := range run.cols {
		r.pdf.CellFormat(run.colW, r.rowH, " "+r.truncate(col, run.colW), "1", 0, "L", true, 0, "")
	}
	r.pdf.Ln(r.rowH)
}

func (r *renderer) drawEntryRow(run tableRun, e types.PointEntry) {
	r.pdf.SetX(r.cfg.MarginLeft + run.indent)
	r.pdf.SetFont(fontFamily, "", r.cfg.FontSize)
	r.pdf.SetTextColor(0, 0, 0)
	for i, cell := range entryCells(e, run.cols) {
		fill, isFilled := rgb{}, false
		if i == 1 {
			fill, isFilled = typeFill(e.Type)
		}
		if isFilled {
			r.pdf.SetFillColor(fill.r, fill.g, fill.b)
		}
		r.pdf.CellFormat(run.colW, r.rowH, " "+r.truncate(cell, run.colW), "1", 0, "L", isFilled, 0, "")
	}
	r.pdf.Ln(r.rowH)
}

func (r *renderer) drawPlaceholderRow(run tableRun) {
	r.pdf.SetX(r.cfg.MarginLeft + run.indent)
	r.pdf.SetFont(fontFamily, "I", r.cfg.FontSize)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.CellFormat(run.width, r.rowH, " No points", "1", 0, "L", false, 0, "")
	r.pdf.Ln(r.rowH)
}

// typeFill returns the tint for a point type cell, if the type has one.
func typeFill(pointType string) (rgb, bool) {
	if fill, ok := typeFills[strings.ToUpper(strings.TrimSpace(pointType))]; ok {
		return fill, true
	}
	if strings.Contains(strings.ToLower(pointType), "integration") {
		return integrationFill, true
	}
	return rgb{}, false
}

// truncate shortens s with an ellipsis so it fits a cell of width w in the
// current font.
func (r *renderer) truncate(s string, w float64) string {
	s = r.tr(s)
	limit := w - 4
	if r.pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if r.pdf.GetStringWidth(candidate) <= limit {
			return candidate
		}
	}
	return ""
}
