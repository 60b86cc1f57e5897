// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the points-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the points-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "points-engine",
	Short: "Points list schedule extraction and report generation",
	Long: `points-engine transforms building-services specification PDFs into
structured points list data and renders structured schedules back into
formatted PDF reports.

Each pipeline is a subcommand: extract segments a specification PDF into
titled sections, generate renders a schedule document as a nested-table
report, convert rasterizes pages to images, and classify sorts drawing-set
pages into schematics and layouts.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./points-engine.yaml or ~/.config/points-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("points-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "points-engine"))
		}
	}

	viper.SetEnvPrefix("POINTS_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
