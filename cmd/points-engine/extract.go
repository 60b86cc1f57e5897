// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/points-engine/internal/extract"
	"github.com/pdiddy/points-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract per-page text and section records from a PDF",
	Long: `Extract reads a specification PDF, rebuilds its per-page text layer,
and segments the text into titled sections along heading markers. Text
before the first recognized marker lands in an implicit Preamble section.

The built-in markers recognize SECTION and POINTS LIST label prefixes plus
numbered headings; supply --markers to override them.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("json", false, "emit JSON instead of YAML")
	extractCmd.Flags().String("markers", "", "YAML file with a markers: list overriding the built-in set")
	extractCmd.Flags().Float64("row-tolerance", 0, "vertical tolerance in points for grouping text into lines")
	extractCmd.Flags().String("from", "", "return raw text starting at this literal marker instead of sections")
	extractCmd.Flags().String("to", "", "end marker for --from (default: document end)")
	extractCmd.Flags().StringP("output", "o", "", "write output to a file instead of stdout")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	cfg, err := extractionConfig(cmd)
	if err != nil {
		return err
	}

	out, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	defer out.close()

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		to, _ := cmd.Flags().GetString("to")
		text, err := extract.ExtractBetween(data, from, to, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}

	result, err := extract.ExtractSections(data, cfg)
	if err != nil {
		return err
	}
	return emit(cmd, out, result)
}

// extractionConfig resolves extraction settings from flags and an optional
// markers file.
func extractionConfig(cmd *cobra.Command) (types.ExtractionConfig, error) {
	var cfg types.ExtractionConfig
	cfg.RowTolerance, _ = cmd.Flags().GetFloat64("row-tolerance")

	markersPath, _ := cmd.Flags().GetString("markers")
	if markersPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(markersPath)
	if err != nil {
		return cfg, fmt.Errorf("reading markers file: %w", err)
	}
	var file struct {
		Markers []types.MarkerSpec `yaml:"markers"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parsing markers file: %w", err)
	}
	if len(file.Markers) == 0 {
		return cfg, fmt.Errorf("markers file %s defines no markers", markersPath)
	}
	cfg.Markers = file.Markers
	return cfg, nil
}

// closableWriter pairs an output stream with its close behavior; stdout is
// left open.
type closableWriter struct {
	*os.File
	owned bool
}

func (w closableWriter) close() {
	if w.owned {
		w.File.Close()
	}
}

func outputWriter(cmd *cobra.Command) (closableWriter, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return closableWriter{File: os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return closableWriter{}, fmt.Errorf("creating %s: %w", path, err)
	}
	return closableWriter{File: f, owned: true}, nil
}

// emit writes v as YAML, or JSON when --json is set.
func emit(cmd *cobra.Command, out closableWriter, v any) error {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(out)
	defer enc.Close()
	return enc.Encode(v)
}
