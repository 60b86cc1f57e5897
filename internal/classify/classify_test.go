// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

func TestClassifyName(t *testing.T) {
	tests := []struct {
		name string
		want PageType
	}{
		{"MECHANICAL PIPEWORK SCHEMATICS", PagePID},
		{"Chilled Water Flow Diagram", PagePID},
		{"PLANTROOM LAYOUT LEVEL 2", PageLayout},
		{"GENERAL ARRANGEMENT", PageLayout},
		{"SYMBOLS AND ABBREVIATIONS", PageLegend},
		{"STANDARD DETAILS SHEET", PageLegend},
		{"UNTITLED SHEET 7", PageUnknown},
	}
	for _, tt := range tests {
		if got := classifyName(tt.name); got != tt.want {
			t.Errorf("classifyName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseIndexPage(t *testing.T) {
	text := `DRAWING INDEX
M601 MECHANICAL PIPEWORK SCHEMATICS SHEET 1
M602 MECHANICAL PIPEWORK SCHEMATICS SHEET 2
M701 PLANTROOM LAYOUT
REV B ISSUED FOR CONSTRUCTION
M1 X`

	entries := parseIndexPage(text)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3: %+v", len(entries), entries)
	}

	wantNumbers := []string{"M601", "M602", "M701"}
	wantTypes := []PageType{PagePID, PagePID, PageLayout}
	for i, e := range entries {
		if e.Number != wantNumbers[i] || e.Type != wantTypes[i] {
			t.Errorf("entry %d = %+v, want number %s type %s", i, e, wantNumbers[i], wantTypes[i])
		}
	}
}

func TestClassifyFromIndex(t *testing.T) {
	entries := []DrawingEntry{
		{Number: "M601", Name: "SCHEMATICS", Type: PagePID},
		{Number: "M000", Name: "LEGEND", Type: PageLegend},
		{Number: "M701", Name: "LAYOUT", Type: PageLayout},
		{Number: "M900", Name: "MISC", Type: PageUnknown},
	}

	result := classifyFromIndex(6, 1, entries)

	if result.Method != "index" || result.IndexPage != 1 {
		t.Errorf("result header = %+v", result)
	}
	if !reflect.DeepEqual(result.PIDPages, []int{2}) {
		t.Errorf("pid pages = %v, want [2]", result.PIDPages)
	}
	if !reflect.DeepEqual(result.LayoutPages, []int{4}) {
		t.Errorf("layout pages = %v, want [4]", result.LayoutPages)
	}
	if !reflect.DeepEqual(result.UnknownPages, []int{5}) {
		t.Errorf("unknown pages = %v, want [5]", result.UnknownPages)
	}
}

func TestClassifyFromIndexStopsAtDocumentEnd(t *testing.T) {
	entries := []DrawingEntry{
		{Number: "M601", Type: PagePID},
		{Number: "M602", Type: PagePID},
		{Number: "M603", Type: PagePID},
	}

	// Index on page 1 of a 3-page document: only two drawing pages exist.
	result := classifyFromIndex(3, 1, entries)
	if !reflect.DeepEqual(result.PIDPages, []int{2, 3}) {
		t.Errorf("pid pages = %v, want [2 3]", result.PIDPages)
	}
}

func TestClassifyByTitles(t *testing.T) {
	texts := []string{
		"DRAWING INDEX AND CONTENTS",
		"CHILLED WATER SCHEMATIC CH-01",
		"PLANTROOM LAYOUT LEVEL 1",
		"UNLABELLED SHEET",
	}

	result := classifyByTitles(texts)

	if result.IndexPage != 1 {
		t.Errorf("index page = %d, want 1", result.IndexPage)
	}
	if !reflect.DeepEqual(result.PIDPages, []int{2}) {
		t.Errorf("pid pages = %v, want [2]", result.PIDPages)
	}
	if !reflect.DeepEqual(result.LayoutPages, []int{3}) {
		t.Errorf("layout pages = %v, want [3]", result.LayoutPages)
	}
	if !reflect.DeepEqual(result.UnknownPages, []int{4}) {
		t.Errorf("unknown pages = %v, want [4]", result.UnknownPages)
	}
}

func TestClassifyByTitlesSchematicBeatsLayout(t *testing.T) {
	// A page mentioning both reads as a schematic.
	result := classifyByTitles([]string{"PIPEWORK SCHEMATIC SECTION A-A"})
	if !reflect.DeepEqual(result.PIDPages, []int{1}) {
		t.Errorf("pid pages = %v, want [1]", result.PIDPages)
	}
}

func TestFindIndexOnlySearchesLeadingPages(t *testing.T) {
	indexText := "DRAWING INDEX\nM601 MECHANICAL SCHEMATICS"
	blank := "CONTENT PAGE"

	page, entries := findIndex([]string{blank, indexText, blank})
	if page != 2 || len(entries) != 1 {
		t.Errorf("findIndex = (%d, %v)", page, entries)
	}

	// Past the search window the index is ignored.
	deep := []string{blank, blank, blank, blank, blank, indexText}
	if page, _ := findIndex(deep); page != 0 {
		t.Errorf("found index at page %d beyond the search window", page)
	}
}

func TestIsColourful(t *testing.T) {
	fill := func(c color.Color) image.Image {
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				img.Set(x, y, c)
			}
		}
		return img
	}

	tests := []struct {
		name string
		img  image.Image
		want bool
	}{
		{"saturated green", fill(color.RGBA{40, 180, 60, 255}), true},
		{"white page", fill(color.RGBA{255, 255, 255, 255}), false},
		{"black linework", fill(color.RGBA{0, 0, 0, 255}), false},
		{"grey wash", fill(color.RGBA{128, 128, 128, 255}), false},
		{"empty image", image.NewRGBA(image.Rect(0, 0, 0, 0)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isColourful(tt.img); got != tt.want {
				t.Errorf("isColourful = %v, want %v", got, tt.want)
			}
		})
	}
}
