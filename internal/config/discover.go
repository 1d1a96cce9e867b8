// internal/config/discover.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./collectarr.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "collectarr", "config.toml")
}

// DataPath returns the XDG-compliant default history database path.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./collectarr.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "collectarr", "history.db")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. COLLECTARR_CONFIG environment variable
//  2. ./collectarr.toml (current directory)
//  3. $XDG_CONFIG_HOME/collectarr/config.toml
//  4. /etc/collectarr/config.toml
func Discover() (string, error) {
	// 1. Check COLLECTARR_CONFIG env var
	if envPath := os.Getenv("COLLECTARR_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("COLLECTARR_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	// Build search paths
	paths := []string{
		"./collectarr.toml",
		DefaultPath(),
		"/etc/collectarr/config.toml",
	}

	// 2-4. Check each path
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("config not found, checked: %s", strings.Join(paths, ", "))
}
