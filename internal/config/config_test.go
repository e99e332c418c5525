package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crossfade/internal/config"
)

func TestDefaultNormalizesAndValidates(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.APIToken = "test-token"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Pairing.MaxCachedPairs != 1000 {
		t.Fatalf("expected default max_cached_pairs 1000, got %d", cfg.Pairing.MaxCachedPairs)
	}
	if !cfg.Playback.ResumeSeek {
		t.Fatal("expected resume_seek to default on")
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[catalog]
base_url = "https://catalog.test/api/"
api_token = "tok"
search_limit = 5

[pairing]
max_cached_pairs = 10
probe_limit = 2

[playback]
resume_seek = false
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as existing")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %s, got %s", path, resolved)
	}
	if cfg.Catalog.BaseURL != "https://catalog.test/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.SearchLimit != 5 {
		t.Fatalf("expected search_limit 5, got %d", cfg.Catalog.SearchLimit)
	}
	if cfg.Playback.ResumeSeek {
		t.Fatal("expected resume_seek disabled")
	}
}

func TestLoadRejectsMissingToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[catalog]\nbase_url = \"https://catalog.test\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CROSSFADE_CATALOG_TOKEN", "")

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for missing api token")
	}
	if !strings.Contains(err.Error(), "catalog.api_token") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsBadPairingBounds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := "[catalog]\napi_token = \"tok\"\n\n[pairing]\nmax_cached_pairs = 1\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for max_cached_pairs below minimum")
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	written, err := config.WriteSample(path)
	if err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if written != path {
		t.Fatalf("expected %s, got %s", path, written)
	}
	if _, err := config.WriteSample(path); err == nil {
		t.Fatal("expected error overwriting existing config")
	}
}
