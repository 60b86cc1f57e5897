// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert rasterizes PDF pages to PNG images, whole documents or
// marker-bounded sections at a time.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/points-engine/internal/extract"
	"github.com/pdiddy/points-engine/pkg/types"
)

// DefaultDPI is the render resolution used when the config leaves it unset.
const DefaultDPI = 150

// PageImage is one rendered page.
type PageImage struct {
	// PageNumber is 1-based.
	PageNumber int `json:"page_number" yaml:"page_number"`

	// PNG holds the encoded image bytes.
	PNG []byte `json:"png" yaml:"png"`

	// Width and Height are the pixel dimensions.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// PagesToImages renders the selected pages (all pages when cfg.Pages is
// empty) as PNGs. Page numbers outside the document are skipped. The context
// is checked between pages so a caller can abandon a long conversion.
func PagesToImages(ctx context.Context, data []byte, cfg types.ConvertConfig) ([]PageImage, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, &types.UnreadablePDFError{Reason: "failed to open document", Err: err}
	}
	defer doc.Close()

	total := doc.NumPage()
	if total == 0 {
		return nil, &types.UnreadablePDFError{Reason: "document has no pages"}
	}

	pages := cfg.Pages
	if len(pages) == 0 {
		pages = make([]int, 0, total)
		for p := 1; p <= total; p++ {
			pages = append(pages, p)
		}
	}

	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	images := make([]PageImage, 0, len(pages))
	for _, p := range pages {
		if p < 1 || p > total {
			continue
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := renderPage(doc, p, dpi)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// SectionToImages renders the pages spanning the text between startMarker and
// endMarker. The section's page range comes from the extracted text layer;
// an empty endMarker extends the range to the last page.
func SectionToImages(ctx context.Context, data []byte, startMarker, endMarker string, cfg types.ConvertConfig) ([]PageImage, error) {
	start, end, err := findSectionPages(data, startMarker, endMarker)
	if err != nil {
		return nil, err
	}

	cfg.Pages = nil
	for p := start; p <= end; p++ {
		cfg.Pages = append(cfg.Pages, p)
	}
	return PagesToImages(ctx, data, cfg)
}

// findSectionPages locates the 1-based page range holding the text between
// the markers.
func findSectionPages(data []byte, startMarker, endMarker string) (int, int, error) {
	pages, err := extract.ExtractText(data, types.ExtractionConfig{})
	if err != nil {
		return 0, 0, err
	}

	start := 0
	for i, text := range pages {
		if strings.Contains(text, startMarker) {
			start = i + 1
			break
		}
	}
	if start == 0 {
		return 0, 0, fmt.Errorf("start marker %q: %w", startMarker, extract.ErrMarkerNotFound)
	}

	end := len(pages)
	if endMarker != "" {
		for p := start; p <= len(pages); p++ {
			if strings.Contains(pages[p-1], endMarker) {
				end = p
				break
			}
		}
	}
	return start, end, nil
}

func renderPage(doc *fitz.Document, page, dpi int) (PageImage, error) {
	img, err := doc.ImageDPI(page-1, float64(dpi))
	if err != nil {
		return PageImage{}, fmt.Errorf("rendering page %d: %w", page, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return PageImage{}, fmt.Errorf("encoding page %d: %w", page, err)
	}

	bounds := img.Bounds()
	return PageImage{
		PageNumber: page,
		PNG:        buf.Bytes(),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
	}, nil
}
