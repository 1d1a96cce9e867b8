package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/collectarr/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show sync run history",
	Long: `Show past sync runs recorded in the history database.

Examples:
  collectarr history           # Recent runs
  collectarr history -n 50     # More of them
  collectarr history show 12   # One run in detail
  collectarr history prune     # Drop runs older than 90 days`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old runs",
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)
	historyPruneCmd.Flags().Duration("older-than", 90*24*time.Hour, "Drop runs older than this")
}

func openHistoryFromConfig() (*history.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return openHistory(cfg)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, closeDB, err := openHistoryFromConfig()
	if err != nil {
		return err
	}
	defer closeDB()

	runs, err := store.Runs(limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if jsonOutput {
		printJSON(runs)
		return nil
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	fmt.Printf("Recent runs (%d):\n\n", len(runs))
	fmt.Printf("  %-5s %-12s %-10s %-12s %-7s %s\n", "ID", "WHEN", "DURATION", "COLLECTIONS", "FAILED", "MODE")
	fmt.Println("  " + strings.Repeat("-", 58))

	for _, r := range runs {
		mode := ""
		if r.DryRun {
			mode = "dry-run"
		}
		fmt.Printf("  %-5d %-12s %-10s %-12d %-7d %s\n",
			r.ID,
			formatTimeAgo(r.StartedAt),
			formatDuration(r.FinishedAt.Sub(r.StartedAt)),
			r.Collections,
			r.Failed,
			mode,
		)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run ID: %s", args[0])
	}

	store, closeDB, err := openHistoryFromConfig()
	if err != nil {
		return err
	}
	defer closeDB()

	run, err := store.Run(id)
	if errors.Is(err, history.ErrNotFound) {
		return fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	results, err := store.RunCollections(id)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]any{"run": run, "collections": results})
		return nil
	}

	mode := ""
	if run.DryRun {
		mode = " (dry run)"
	}
	fmt.Printf("Run %d%s\n", run.ID, mode)
	fmt.Printf("  Started:  %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Printf("  Duration: %s\n", formatDuration(run.FinishedAt.Sub(run.StartedAt)))
	fmt.Printf("  Failed:   %d of %d\n\n", run.Failed, run.Collections)

	for _, rc := range results {
		line := fmt.Sprintf("  %-10s %-30s", rc.Status, rc.Name)
		if rc.Error != "" {
			fmt.Printf("%s %s\n", line, rc.Error)
			continue
		}
		line += fmt.Sprintf(" +%d -%d", rc.Adds, rc.Removes)
		if rc.Created {
			line += " (created)"
		}
		fmt.Println(line)
	}
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	olderThan, _ := cmd.Flags().GetDuration("older-than")

	store, closeDB, err := openHistoryFromConfig()
	if err != nil {
		return err
	}
	defer closeDB()

	pruned, err := store.Prune(olderThan)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}
	fmt.Printf("Pruned %d runs\n", pruned)
	return nil
}
