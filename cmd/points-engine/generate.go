// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/points-engine/internal/render"
	"github.com/pdiddy/points-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate <schedule.yaml|schedule.json>",
	Short: "Render a points list schedule as a PDF report",
	Long: `Generate reads a schedule document (YAML or JSON), validates its table
tree, and renders each schedule table as a titled block with one row per
point. Nested tables render indented beneath their parent; long tables
break across pages with the header row repeated.

Output is deterministic: rendering the same document with the same page
configuration and --generated-at timestamp yields byte-identical PDFs.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "output PDF path (default: input name with .pdf)")
	generateCmd.Flags().String("page-size", "A4", "page size: A4, Letter, or Legal")
	generateCmd.Flags().Float64("margin", 40, "page margin in points, applied on all sides")
	generateCmd.Flags().Float64("font-size", 9, "body font size in points")
	generateCmd.Flags().Int("max-rows", 40, "maximum point rows per page before a forced break")
	generateCmd.Flags().Float64("indent", 14, "indent per nesting level in points")
	generateCmd.Flags().String("generated-at", "", "RFC 3339 timestamp recorded in the report (default: now)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	doc, err := loadScheduleDocument(args[0])
	if err != nil {
		return err
	}

	if stamp, _ := cmd.Flags().GetString("generated-at"); stamp != "" {
		ts, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			return fmt.Errorf("parsing --generated-at: %w", err)
		}
		doc.GeneratedAt = ts
	} else if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now().UTC()
	}

	pdfBytes, err := render.Render(doc, pageConfig(cmd))
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
		outPath = base + ".pdf"
	}
	if err := os.WriteFile(outPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", outPath, len(pdfBytes))
	return nil
}

// loadScheduleDocument decodes a schedule file by extension: JSON for .json,
// YAML otherwise.
func loadScheduleDocument(path string) (*types.ReportDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc types.ReportDocument
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return &doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &doc, nil
}

// pageConfig builds the page configuration from flags.
func pageConfig(cmd *cobra.Command) types.PageConfig {
	cfg := types.DefaultPageConfig()
	cfg.PageSize, _ = cmd.Flags().GetString("page-size")

	margin, _ := cmd.Flags().GetFloat64("margin")
	cfg.MarginLeft, cfg.MarginTop, cfg.MarginRight, cfg.MarginBottom = margin, margin, margin, margin

	cfg.FontSize, _ = cmd.Flags().GetFloat64("font-size")
	cfg.MaxRowsPerPage, _ = cmd.Flags().GetInt("max-rows")
	cfg.Indent, _ = cmd.Flags().GetFloat64("indent")
	return cfg
}
