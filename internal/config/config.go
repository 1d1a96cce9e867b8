// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Jellyfin    JellyfinConfig              `toml:"jellyfin"`
	Sync        SyncConfig                  `toml:"sync"`
	Log         LogConfig                   `toml:"log"`
	History     HistoryConfig               `toml:"history"`
	Collections map[string]CollectionConfig `toml:"collections"`

	// CollectionOrder lists collection names in the order their tables
	// appear in the file. TOML maps lose that order on decode; sync runs
	// and reports should follow the file.
	CollectionOrder []string `toml:"-"`
}

type JellyfinConfig struct {
	URL    string `toml:"url"`
	User   string `toml:"user"`
	APIKey string `toml:"api_key"`
}

type SyncConfig struct {
	DryRun      bool     `toml:"dry_run"`
	Concurrency int      `toml:"concurrency"`
	Interval    Duration `toml:"interval"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type HistoryConfig struct {
	Enabled *bool  `toml:"enabled"`
	Path    string `toml:"path"`
}

// RecordingEnabled reports whether sync runs should be written to the
// history database. Defaults to true.
func (h HistoryConfig) RecordingEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

type CollectionConfig struct {
	From  string `toml:"from"`
	Query string `toml:"query"`
	Scope string `toml:"scope"`
}

// Duration wraps time.Duration so TOML values like "15m" decode.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Load reads and parses the configuration file, then validates it.
// Unresolved environment variables and validation failures come back
// together as a *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file but skips
// validation. Tooling that only needs part of the file uses this.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	meta, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.CollectionOrder = collectionOrder(meta)

	// Apply defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Sync.Concurrency == 0 {
		cfg.Sync.Concurrency = 4
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DataPath()
	}

	return &cfg, missing, nil
}

// collectionOrder recovers the file order of [collections."Name"] tables
// from the decode metadata.
func collectionOrder(meta toml.MetaData) []string {
	var order []string
	for _, key := range meta.Keys() {
		if len(key) == 2 && key[0] == "collections" {
			order = append(order, key[1])
		}
	}
	return order
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// ${VAR:-fallback} substitutes fallback when VAR is unset or empty, and
// ${VAR:?message} marks VAR as required. References that cannot be
// resolved are left in place and returned as missing.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1] // Strip ${ and }

		if name, fallback, ok := strings.Cut(expr, ":-"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			return fallback
		}

		if name, message, ok := strings.Cut(expr, ":?"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			missing = append(missing, name+": "+message)
			return match
		}

		if value, ok := os.LookupEnv(expr); ok {
			return value
		}
		missing = append(missing, expr)
		return match // Leave unchanged if not found
	})
	return result, missing
}
