// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns PDF bytes into per-page plain text and segments that
// text into titled sections along configurable heading markers.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/points-engine/pkg/types"
)

// ErrMarkerNotFound reports that a requested text marker does not occur in
// the document.
var ErrMarkerNotFound = errors.New("marker not found in document")

// ExtractText extracts the plain text of every page from a PDF byte stream.
// The result has one entry per page in order; a page without a text layer is
// an empty string. It returns *types.UnreadablePDFError when the bytes are
// not a valid PDF or no page carries any text at all.
func ExtractText(data []byte, cfg types.ExtractionConfig) (pages []string, err error) {
	if len(data) == 0 {
		return nil, &types.UnreadablePDFError{Reason: "empty input"}
	}

	conf := model.NewDefaultConfiguration()
	if _, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf); err != nil {
		return nil, &types.UnreadablePDFError{Reason: "failed PDF validation", Err: err}
	}

	// The text-layer reader panics on some malformed content streams that
	// survive validation; convert that to a typed error.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &types.UnreadablePDFError{Reason: fmt.Sprintf("text layer parse failure: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &types.UnreadablePDFError{Reason: "failed to open text layer", Err: err}
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, &types.UnreadablePDFError{Reason: "document has no pages"}
	}

	pages = make([]string, 0, numPages)
	hasText := false
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		lines := pageLines(page, cfg.RowTolerance)
		if len(lines) > 0 {
			hasText = true
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}

	if !hasText {
		return nil, &types.UnreadablePDFError{Reason: "no recoverable text layer"}
	}
	return pages, nil
}

// ExtractSections extracts per-page text and segments it into sections using
// the configured markers (the built-in set when cfg.Markers is empty).
func ExtractSections(data []byte, cfg types.ExtractionConfig) (*types.ExtractionResult, error) {
	pages, err := ExtractText(data, cfg)
	if err != nil {
		return nil, err
	}

	set := DefaultMarkers()
	if len(cfg.Markers) > 0 {
		set, err = CompileMarkers(cfg.Markers)
		if err != nil {
			return nil, err
		}
	}

	return &types.ExtractionResult{
		Pages:    pages,
		Sections: SegmentSections(pages, set),
	}, nil
}

// ExtractBetween returns the document text from the first occurrence of
// startMarker up to (but excluding) the first subsequent occurrence of
// endMarker. An empty endMarker, or one that never occurs after the start,
// extends the slice to the end of the document. A missing startMarker is
// reported via ErrMarkerNotFound.
func ExtractBetween(data []byte, startMarker, endMarker string, cfg types.ExtractionConfig) (string, error) {
	pages, err := ExtractText(data, cfg)
	if err != nil {
		return "", err
	}

	full := strings.Join(pages, "\n")
	start := strings.Index(full, startMarker)
	if start < 0 {
		return "", fmt.Errorf("start marker %q: %w", startMarker, ErrMarkerNotFound)
	}

	section := full[start:]
	if endMarker != "" {
		rest := full[start+len(startMarker):]
		if end := strings.Index(rest, endMarker); end >= 0 {
			section = full[start : start+len(startMarker)+end]
		}
	}
	return section, nil
}
