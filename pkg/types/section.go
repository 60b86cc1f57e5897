// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PreambleTitle is the title assigned to the implicit section holding text
// that precedes the first recognized marker. A document with no recognized
// markers yields a single section with this title.
const PreambleTitle = "Preamble"

// Section is a titled span of a source document's extracted text, identified
// by heading markers during segmentation.
type Section struct {
	// Title is the matched heading line, or PreambleTitle for the implicit
	// leading section.
	Title string `json:"title" yaml:"title"`

	// PageStart is the 1-based page on which the section begins.
	PageStart int `json:"page_start" yaml:"page_start"`

	// PageEnd is the 1-based page on which the section ends, inclusive.
	// Always >= PageStart.
	PageEnd int `json:"page_end" yaml:"page_end"`

	// Text is the section body, including the heading line itself.
	Text string `json:"text" yaml:"text"`
}

// ExtractionResult holds the output of extracting one document: the full
// per-page text and the ordered section records segmented from it.
type ExtractionResult struct {
	// Pages contains the plain text of each page in order. A page without a
	// text layer is present as an empty string.
	Pages []string `json:"pages" yaml:"pages"`

	// Sections are the segmented sections in document order.
	Sections []Section `json:"sections" yaml:"sections"`
}
