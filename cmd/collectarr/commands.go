package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/collectarr/internal/config"
	"github.com/vmunix/collectarr/internal/history"
	"github.com/vmunix/collectarr/internal/jellyfin"
	"github.com/vmunix/collectarr/internal/migrations"
)

// resolveConfigPath honors --config when given, otherwise searches the
// standard locations.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.Discover()
}

// loadConfig resolves the config path and loads it with full validation.
func loadConfig() (*config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the process logger. Logs go to stderr so reports on
// stdout stay machine-readable.
func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
}

// buildGateway connects to the server and binds the configured user.
func buildGateway(ctx context.Context, cfg *config.Config, log *slog.Logger) (*jellyfin.Gateway, error) {
	client := jellyfin.NewClient(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, log)
	user, err := client.UserByName(ctx, cfg.Jellyfin.User)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return jellyfin.NewGateway(client, user.ID, log), nil
}

// openHistory opens the run history database, creating and migrating it
// if needed. The returned func closes the database.
func openHistory(cfg *config.Config) (*history.Store, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.History.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate history db: %w", err)
	}
	return history.NewStore(db), func() { _ = db.Close() }, nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// formatDuration renders a duration coarsely enough for report headers.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}

// formatTimeAgo renders a timestamp as a relative age.
func formatTimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
