// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/points-engine/internal/convert"
	"github.com/pdiddy/points-engine/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.pdf>",
	Short: "Rasterize PDF pages to PNG images",
	Long: `Convert renders PDF pages as PNG images, either selected pages or the
page span holding the text between two markers (--from/--to).`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Int("dpi", convert.DefaultDPI, "render resolution")
	convertCmd.Flags().String("pages", "", "comma-separated 1-based page numbers (default: all)")
	convertCmd.Flags().String("from", "", "render the section starting at this literal marker")
	convertCmd.Flags().String("to", "", "end marker for --from (default: document end)")
	convertCmd.Flags().String("out-dir", "images", "directory for the PNG files")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	cfg := types.ConvertConfig{}
	cfg.DPI, _ = cmd.Flags().GetInt("dpi")
	if pagesFlag, _ := cmd.Flags().GetString("pages"); pagesFlag != "" {
		cfg.Pages, err = parsePageList(pagesFlag)
		if err != nil {
			return err
		}
	}

	ctx := context.Background()

	var images []convert.PageImage
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		to, _ := cmd.Flags().GetString("to")
		images, err = convert.SectionToImages(ctx, data, from, to, cfg)
	} else {
		images, err = convert.PagesToImages(ctx, data, cfg)
	}
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	for _, img := range images {
		path := filepath.Join(outDir, fmt.Sprintf("page_%03d.png", img.PageNumber))
		if err := os.WriteFile(path, img.PNG, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%dx%d)\n", path, img.Width, img.Height)
	}
	return nil
}

// parsePageList parses a comma-separated list of 1-based page numbers.
func parsePageList(s string) ([]int, error) {
	var pages []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page number %q", part)
		}
		pages = append(pages, n)
	}
	return pages, nil
}
