// internal/config/validate.go
package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// validScopes lists the accepted spellings for a collection scope. The
// library package owns the parse; this map only front-loads the error.
var validScopes = map[string]bool{
	"": true, "movie": true, "movies": true,
	"episode": true, "episodes": true,
	"series": true, "show": true, "shows": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Jellyfin connection
	if c.Jellyfin.URL == "" {
		errs = append(errs, "jellyfin.url: required")
	}
	if c.Jellyfin.User == "" {
		errs = append(errs, "jellyfin.user: required")
	}
	if c.Jellyfin.APIKey == "" {
		errs = append(errs, "jellyfin.api_key: required")
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	// Sync validation
	if c.Sync.Concurrency < 0 {
		errs = append(errs, fmt.Sprintf("sync.concurrency: must not be negative, got %d", c.Sync.Concurrency))
	}
	if c.Sync.Interval.Duration < 0 {
		errs = append(errs, fmt.Sprintf("sync.interval: must not be negative, got %s", c.Sync.Interval))
	}

	// Collections validation
	if len(c.Collections) == 0 {
		errs = append(errs, "collections: at least one collection must be configured")
	}
	for name, col := range c.Collections {
		if col.From == "" {
			errs = append(errs, fmt.Sprintf("collections.%q.from: required", name))
		}
		if col.Query == "" {
			errs = append(errs, fmt.Sprintf("collections.%q.query: required", name))
		}
		if !validScopes[col.Scope] {
			errs = append(errs, fmt.Sprintf("collections.%q.scope: must be movies, episodes, or series; got %q", name, col.Scope))
		}
	}

	return errs
}
