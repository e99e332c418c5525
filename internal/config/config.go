package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	LogDir   string `toml:"log_dir"`
	APIBind  string `toml:"api_bind"`
	APIToken string `toml:"api_token"`
}

// Catalog contains configuration for the remote catalog search API.
type Catalog struct {
	BaseURL        string `toml:"base_url"`
	APIToken       string `toml:"api_token"`
	SearchLimit    int    `toml:"search_limit"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Pairing contains tuning knobs for the pairing-resolution engine.
type Pairing struct {
	// MaxCachedPairs is the high-water mark for the in-memory pairing and
	// negative caches. When exceeded, each cache is pruned to half this
	// count, dropping the oldest-inserted entries first.
	MaxCachedPairs int `toml:"max_cached_pairs"`
	// ProbeLimit caps how many top-scored candidates are checked for
	// existence before the lookup is abandoned.
	ProbeLimit int `toml:"probe_limit"`
}

// Playback contains behavior toggles for the switch operation.
type Playback struct {
	// ResumeSeek carries the current playback position over to the
	// counterpart rendition when switching.
	ResumeSeek bool `toml:"resume_seek"`
}

// PairStore contains configuration for the persistent pairing store.
type PairStore struct {
	Enabled bool   `toml:"enabled"` // Default: false
	Path    string `toml:"path"`    // Default: ~/.cache/crossfade/pairings.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Crossfade.
//
// Configuration sections by subsystem:
//   - Paths: log directory and API bind address/token
//   - Catalog: remote catalog search endpoint and credentials
//   - Pairing: engine cache bounds and candidate probe limits
//   - Playback: resume-seek toggle for the switch operation
//   - PairStore: optional SQLite persistence of confirmed pairings
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Catalog   Catalog   `toml:"catalog"`
	Pairing   Pairing   `toml:"pairing"`
	Playback  Playback  `toml:"playback"`
	PairStore PairStore `toml:"pair_store"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/crossfade/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("crossfade.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates directories required for daemon operation.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.PairStore.Enabled && c.PairStore.Path != "" {
		dirs = append(dirs, filepath.Dir(c.PairStore.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SampleConfig returns the annotated sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// WriteSample writes the sample configuration to the given path, refusing to
// overwrite an existing file. An empty path targets the default location.
func WriteSample(path string) (string, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return "", err
	}
	if expanded == "" {
		expanded, err = DefaultConfigPath()
		if err != nil {
			return "", err
		}
	}
	if _, err := os.Stat(expanded); err == nil {
		return "", fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return "", fmt.Errorf("write sample config: %w", err)
	}
	return expanded, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Abs(trimmed)
}
