// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/points-engine/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <file.pdf>",
	Short: "Sort drawing-set pages into schematics, layouts, and index pages",
	Long: `Classify identifies which pages of a drawing set are P&ID schematics and
which are plant layouts, using the drawing index when one exists, page
keywords otherwise, and a colour analysis fallback for scanned sets.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().Bool("json", false, "emit JSON instead of a summary")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	result, err := classify.ClassifyDocument(context.Background(), data)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Pages: %d (method: %s)\n", result.TotalPages, result.Method)
	if result.IndexPage > 0 {
		fmt.Printf("Index page: %d\n", result.IndexPage)
	}
	fmt.Printf("Schematics: %v\n", result.PIDPages)
	fmt.Printf("Layouts:    %v\n", result.LayoutPages)
	fmt.Printf("Unknown:    %v\n", result.UnknownPages)
	return nil
}
