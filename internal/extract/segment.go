// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/points-engine/pkg/types"
)

// docLine is one text line tagged with its 1-based page number.
type docLine struct {
	page        int
	text        string
	firstOfPage bool
}

// SegmentSections splits per-page text into ordered sections along marker
// boundaries. A section begins at a line the marker set recognizes and runs
// until the line before the next recognized marker, or the document end.
// Text before the first marker becomes an implicit Preamble section, as does
// the whole document when no marker matches at all.
//
// Page ranges partition the document: a section starts on its marker's page
// and ends on the page before the next section's start (the first section
// stretches back to page 1 when there is no preamble). When two sections
// start on the same page the earlier one collapses to that single page.
func SegmentSections(pages []string, set *MarkerSet) []types.Section {
	lastPage := len(pages)
	if lastPage == 0 {
		lastPage = 1
	}

	lines := splitLines(pages)

	// Locate marker lines.
	type boundary struct {
		lineIdx int
		page    int
		title   string
	}
	var bounds []boundary
	for i, ln := range lines {
		if title, ok := set.Match(ln.text, ln.firstOfPage); ok {
			bounds = append(bounds, boundary{lineIdx: i, page: ln.page, title: title})
		}
	}

	if len(bounds) == 0 {
		return []types.Section{{
			Title:     types.PreambleTitle,
			PageStart: 1,
			PageEnd:   lastPage,
			Text:      joinLines(lines),
		}}
	}

	var sections []types.Section

	preambleText := joinLines(lines[:bounds[0].lineIdx])
	hasPreamble := strings.TrimSpace(preambleText) != ""
	if hasPreamble {
		sections = append(sections, types.Section{
			Title:     types.PreambleTitle,
			PageStart: 1,
			Text:      preambleText,
		})
	}

	for i, b := range bounds {
		end := len(lines)
		if i+1 < len(bounds) {
			end = bounds[i+1].lineIdx
		}
		start := b.page
		if i == 0 && !hasPreamble {
			// No preamble: the first section covers the leading pages too.
			start = 1
		}
		sections = append(sections, types.Section{
			Title:     b.title,
			PageStart: start,
			Text:      joinLines(lines[b.lineIdx:end]),
		})
	}

	// Close page ranges against the following section's start.
	for i := range sections {
		if i+1 < len(sections) {
			sections[i].PageEnd = sections[i+1].PageStart - 1
		} else {
			sections[i].PageEnd = lastPage
		}
		if sections[i].PageEnd < sections[i].PageStart {
			sections[i].PageEnd = sections[i].PageStart
		}
	}

	return sections
}

// splitLines flattens per-page text into tagged lines, marking the first
// non-blank line of each page for positional markers.
func splitLines(pages []string) []docLine {
	var lines []docLine
	for p, pageText := range pages {
		seenContent := false
		for _, text := range strings.Split(pageText, "\n") {
			first := !seenContent && strings.TrimSpace(text) != ""
			if first {
				seenContent = true
			}
			lines = append(lines, docLine{page: p + 1, text: text, firstOfPage: first})
		}
	}
	return lines
}

// joinLines reassembles line text, trimming surrounding blank lines.
func joinLines(lines []docLine) string {
	parts := make([]string, 0, len(lines))
	for _, ln := range lines {
		parts = append(parts, ln.text)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
