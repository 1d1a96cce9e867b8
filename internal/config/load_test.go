// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Valid(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[jellyfin]
url = "http://localhost:8096"
user = "admin"
api_key = "secret"

[collections."Unwatched"]
from = "Movies"
query = 'Played = false'
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Jellyfin.URL != "http://localhost:8096" {
		t.Errorf("expected jellyfin url, got %q", cfg.Jellyfin.URL)
	}
	if cfg.Collections["Unwatched"].From != "Movies" {
		t.Errorf("expected collection from Movies, got %q", cfg.Collections["Unwatched"].From)
	}
}

func TestLoad_MissingEnvVar(t *testing.T) {
	os.Unsetenv("MISSING_KEY")
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[jellyfin]
url = "http://localhost:8096"
user = "admin"
api_key = "${MISSING_KEY}"

[collections."Unwatched"]
from = "Movies"
query = 'Played = false'
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("expected error for missing env var")
	}
	if !strings.Contains(err.Error(), "MISSING_KEY") {
		t.Errorf("expected MISSING_KEY in error, got %v", err)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[jellyfin]
url = "http://localhost:8096"
user = "admin"
api_key = "secret"

[log]
level = "noisy"

[collections."Unwatched"]
from = "Movies"
query = 'Played = false'
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "log.level") {
		t.Errorf("expected log.level in error, got %v", err)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[jellyfin]
url = "http://localhost:8096"
user = "admin"
api_key = "secret"

[collections."Unwatched"]
from = "Movies"
query = 'Played = false'
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default level info, got %s", cfg.Log.Level)
	}
	if cfg.Sync.Concurrency != 4 {
		t.Errorf("expected default concurrency 4, got %d", cfg.Sync.Concurrency)
	}
	if cfg.History.Path == "" {
		t.Error("expected default history path, got empty")
	}
}

func TestLoadWithoutValidation(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[log]
level = "noisy"
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	cfg, err := LoadWithoutValidation(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "noisy" {
		t.Errorf("expected level noisy, got %q", cfg.Log.Level)
	}
}

func TestLoad_EnvVarDefault(t *testing.T) {
	os.Unsetenv("OPTIONAL_VAR")
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	content := `
[jellyfin]
url = "http://localhost:8096"
user = "${OPTIONAL_VAR:-admin}"
api_key = "secret"

[collections."Unwatched"]
from = "Movies"
query = 'Played = false'
`
	os.WriteFile(cfgPath, []byte(content), 0644)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Jellyfin.User != "admin" {
		t.Errorf("expected user admin, got %s", cfg.Jellyfin.User)
	}
}
