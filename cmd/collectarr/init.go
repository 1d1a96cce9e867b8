package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/collectarr/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a starter config file",
	Long: `Create a starter config file with example collections.

Examples:
  collectarr init                        # Write ./collectarr.toml
  collectarr init ~/.config/collectarr/config.toml
  collectarr init --force                # Overwrite an existing file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInitCmd,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := "collectarr.toml"
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Set JELLYFIN_URL, JELLYFIN_USER and JELLYFIN_API_KEY,")
	fmt.Println("     or edit the file and put the values inline.")
	fmt.Println("  2. Adjust the example collections to taste.")
	fmt.Printf("  3. Run: collectarr check --config %s\n", path)
	return nil
}
