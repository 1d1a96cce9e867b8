package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/collectarr/internal/collections"
	"github.com/vmunix/collectarr/internal/config"
	"github.com/vmunix/collectarr/internal/history"
	"github.com/vmunix/collectarr/internal/jellyfin"
)

// The reconciler only sees the Gateway interface; keep the Jellyfin
// implementation satisfying it.
var _ collections.Gateway = (*jellyfin.Gateway)(nil)

const defaultWatchInterval = 15 * time.Minute

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile collections against the server",
	Long: `Evaluate every configured filter and reconcile collection
membership on the server. Collections that do not exist yet are created.

Examples:
  collectarr sync                            # Sync everything once
  collectarr sync --dry-run                  # Show the plan without applying it
  collectarr sync --collection "90s Movies"  # Sync a single collection
  collectarr sync --watch                    # Keep syncing every sync.interval
  collectarr sync --interval 1h              # Keep syncing hourly`,
	RunE: runSyncCmd,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().Bool("dry-run", false, "Plan changes without applying them")
	syncCmd.Flags().StringArray("collection", nil, "Sync only the named collection (repeatable)")
	syncCmd.Flags().Bool("watch", false, "Keep running, syncing every sync.interval")
	syncCmd.Flags().Duration("interval", 0, "Keep running, syncing at this cadence (overrides sync.interval)")
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	only, _ := cmd.Flags().GetStringArray("collection")
	watch, _ := cmd.Flags().GetBool("watch")
	intervalFlag, _ := cmd.Flags().GetDuration("interval")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	defs, err := selectDefinitions(cfg, only)
	if err != nil {
		return err
	}
	specs := collections.BuildSpecs(defs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, finishing up", "signal", sig.String())
		cancel()
	}()

	gateway, err := buildGateway(ctx, cfg, logger)
	if err != nil {
		return err
	}

	manager := collections.NewManager(gateway, collections.Config{
		DryRun:      dryRun || cfg.Sync.DryRun,
		Concurrency: cfg.Sync.Concurrency,
	}, logger)

	var store *history.Store
	if cfg.History.RecordingEnabled() {
		s, closeDB, err := openHistory(cfg)
		if err != nil {
			logger.Warn("run history disabled", "error", err)
		} else {
			store = s
			defer closeDB()
		}
	}

	if watch || intervalFlag > 0 {
		interval := intervalFlag
		if interval <= 0 {
			interval = cfg.Sync.Interval.Duration
		}
		if interval <= 0 {
			interval = defaultWatchInterval
		}
		return watchLoop(ctx, manager, specs, store, interval, logger)
	}

	report := manager.Run(ctx, specs)
	recordRun(store, report, logger)
	printReportOutput(report)

	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d collections failed", failed, len(report.Results))
	}
	return nil
}

// watchLoop reconciles immediately and then on every tick until the
// context is cancelled. Failures are reported but do not stop the loop.
func watchLoop(ctx context.Context, manager *collections.Manager, specs []collections.Spec, store *history.Store, interval time.Duration, log *slog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("watch started", "interval", interval.String())

	for {
		report := manager.Run(ctx, specs)
		recordRun(store, report, log)
		printReportOutput(report)

		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func recordRun(store *history.Store, report *collections.Report, log *slog.Logger) {
	if store == nil {
		return
	}
	if _, err := store.RecordRun(report); err != nil {
		log.Warn("failed to record run", "error", err)
	}
}

// definitions converts configured collections into reconciler input,
// keeping file order.
func definitions(cfg *config.Config) []collections.Definition {
	defs := make([]collections.Definition, 0, len(cfg.CollectionOrder))
	for _, name := range cfg.CollectionOrder {
		col := cfg.Collections[name]
		defs = append(defs, collections.Definition{
			Name:  name,
			From:  col.From,
			Query: col.Query,
			Scope: col.Scope,
		})
	}
	return defs
}

// selectDefinitions narrows the configured collections to the requested
// names, in the requested order.
func selectDefinitions(cfg *config.Config, only []string) ([]collections.Definition, error) {
	defs := definitions(cfg)
	if len(only) == 0 {
		return defs, nil
	}

	byName := make(map[string]collections.Definition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}

	selected := make([]collections.Definition, 0, len(only))
	for _, name := range only {
		d, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("collection %q is not configured", name)
		}
		selected = append(selected, d)
	}
	return selected, nil
}

func printReportOutput(report *collections.Report) {
	if jsonOutput {
		printJSON(reportToJSON(report))
		return
	}
	printReport(report)
}

func printReport(r *collections.Report) {
	header := fmt.Sprintf("Reconciled %d collections in %s", len(r.Results), formatDuration(r.Duration()))
	if r.DryRun {
		header += " (dry run)"
	}
	fmt.Println(header)
	fmt.Println()

	for _, res := range r.Results {
		fmt.Println(resultLine(res))
	}

	if failed := r.Failed(); failed > 0 {
		fmt.Printf("\n%d collections failed.\n", failed)
	}
}

// resultLine renders one collection outcome as a fixed-width row.
func resultLine(res collections.Result) string {
	line := fmt.Sprintf("  %-10s %-30s", res.Status, res.Name)
	if res.Err != nil {
		return fmt.Sprintf("%s %v", line, res.Err)
	}
	line += fmt.Sprintf(" +%d -%d", res.Adds, res.Removes)
	if res.Created {
		line += " (created)"
	}
	return line
}

// ReportJSON is the JSON-friendly representation of a sync report.
type ReportJSON struct {
	Started    time.Time    `json:"started"`
	Finished   time.Time    `json:"finished"`
	DurationMS int64        `json:"duration_ms"`
	DryRun     bool         `json:"dry_run,omitempty"`
	Failed     int          `json:"failed"`
	Results    []ResultJSON `json:"results"`
}

// ResultJSON is one collection's outcome.
type ResultJSON struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Created  bool   `json:"created,omitempty"`
	Desired  int    `json:"desired"`
	Observed int    `json:"observed"`
	Adds     int    `json:"adds"`
	Removes  int    `json:"removes"`
	Error    string `json:"error,omitempty"`
}

func reportToJSON(r *collections.Report) ReportJSON {
	out := ReportJSON{
		Started:    r.Started,
		Finished:   r.Finished,
		DurationMS: r.Duration().Milliseconds(),
		DryRun:     r.DryRun,
		Failed:     r.Failed(),
		Results:    make([]ResultJSON, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		rj := ResultJSON{
			Name:     res.Name,
			Status:   string(res.Status),
			Created:  res.Created,
			Desired:  res.Desired,
			Observed: res.Observed,
			Adds:     res.Adds,
			Removes:  res.Removes,
		}
		if res.Err != nil {
			rj.Error = res.Err.Error()
		}
		out.Results = append(out.Results, rj)
	}
	return out
}
