package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "collectarr",
	Short: "Rule-driven smart collections for Jellyfin",
	Long: `collectarr - rule-driven smart collections for Jellyfin

Collections are defined as filter queries over your libraries.
Each sync evaluates the filters against the live catalog and
reconciles collection membership to match: missing items are
added, stale ones removed.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (discovered when empty)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("collectarr {{.Version}}\n")
}
