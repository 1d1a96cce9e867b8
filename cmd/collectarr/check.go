package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/collectarr/internal/collections"
	"github.com/vmunix/collectarr/internal/config"
	"github.com/vmunix/collectarr/internal/jellyfin"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and filters",
	Long: `Validate the config file: TOML syntax, required fields, environment
variable substitution, and every collection's filter query.

With --remote, also connect to the server and verify that the user and
the configured libraries exist.

Examples:
  collectarr check
  collectarr check --remote
  collectarr check --config ./collectarr.toml`,
	RunE: runCheckCmd,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("remote", false, "Also verify against the live server")
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	remote, _ := cmd.Flags().GetBool("remote")

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			printConfigErrors(cfgErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	specs := collections.BuildSpecs(definitions(cfg))
	bad := printSpecChecks(specs)

	if remote {
		remoteBad, err := checkRemote(cmd.Context(), cfg, specs)
		if err != nil {
			return err
		}
		bad += remoteBad
	}

	if bad > 0 {
		return fmt.Errorf("%d problems found", bad)
	}
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	if len(e.Errors) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range e.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
	}
}

// printSpecChecks reports each collection's compiled filter, or why it
// failed to compile. Returns the failure count.
func printSpecChecks(specs []collections.Spec) int {
	fmt.Printf("Collections (%d):\n", len(specs))
	bad := 0
	for _, spec := range specs {
		if spec.Err != nil {
			bad++
			fmt.Printf("  FAIL  %-28s %v\n", spec.Name, spec.Err)
			continue
		}
		fmt.Printf("  ok    %-28s %s\n", spec.Name, spec.Query)
	}
	return bad
}

// checkRemote verifies server reachability, the configured user, and
// every valid spec's library resolution.
func checkRemote(ctx context.Context, cfg *config.Config, specs []collections.Spec) (int, error) {
	client := jellyfin.NewClient(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, nil)

	info, err := client.ServerInfo(ctx)
	if err != nil {
		return 0, fmt.Errorf("server unreachable: %w", err)
	}
	user, err := client.UserByName(ctx, cfg.Jellyfin.User)
	if err != nil {
		return 0, err
	}
	fmt.Printf("\nServer %q (%s), user %q\n", info.Name, info.Version, user.Name)

	gateway := jellyfin.NewGateway(client, user.ID, nil)

	fmt.Println("Libraries:")
	bad := 0
	for _, spec := range specs {
		if spec.Err != nil {
			continue
		}
		name, scope, err := gateway.ResolveLibrary(ctx, spec.From, spec.Scope)
		if err != nil {
			bad++
			fmt.Printf("  FAIL  %-28s %v\n", spec.Name, err)
			continue
		}
		fmt.Printf("  ok    %-28s %s (%s)\n", spec.Name, name, scope)
	}
	return bad, nil
}
