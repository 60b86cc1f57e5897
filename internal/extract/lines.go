// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// wordGapFraction is the fraction of the font size a horizontal gap between
// two fragments must exceed to count as a word boundary.
const wordGapFraction = 0.25

// defaultRowTolerance groups positioned fragments whose baselines are within
// this many points into one line.
const defaultRowTolerance = 2.0

// pageLines rebuilds the text lines of a page from its positioned fragments.
// PDF text carries no reliable line structure, so fragments are grouped into
// rows by baseline (Y origin is the bottom of the page), ordered left to
// right, and joined with spaces where the glyph spacing indicates a word
// break. Output is NFC-normalized, top line first.
func pageLines(page pdf.Page, rowTolerance float64) []string {
	if rowTolerance <= 0 {
		rowTolerance = defaultRowTolerance
	}

	content := page.Content()
	texts := make([]pdf.Text, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		texts = append(texts, t)
	}
	if len(texts) == 0 {
		return nil
	}

	// Top of page first: PDF Y grows upward.
	sort.SliceStable(texts, func(i, j int) bool {
		return texts[i].Y > texts[j].Y
	})

	var rows [][]pdf.Text
	var current []pdf.Text
	rowY := texts[0].Y
	for _, t := range texts {
		if rowY-t.Y > rowTolerance {
			rows = append(rows, current)
			current = nil
			rowY = t.Y
		}
		current = append(current, t)
	}
	rows = append(rows, current)

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, joinRow(row))
	}
	return lines
}

// joinRow orders a row's fragments left to right and concatenates them,
// inserting a space wherever the gap to the previous fragment exceeds the
// word-break threshold for its font size.
func joinRow(row []pdf.Text) string {
	sort.SliceStable(row, func(i, j int) bool {
		return row[i].X < row[j].X
	})

	var sb strings.Builder
	prevEnd := 0.0
	for i, t := range row {
		if i > 0 {
			gap := t.X - prevEnd
			threshold := t.FontSize * wordGapFraction
			if threshold <= 0 {
				threshold = 1
			}
			if gap > threshold {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	return norm.NFC.String(strings.TrimSpace(sb.String()))
}
