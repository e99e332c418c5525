package testsupport

import (
	"path/filepath"
	"testing"

	"crossfade/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Catalog.APIToken = "test"
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.PairStore.Path = filepath.Join(base, "pairings.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithCatalogToken sets the catalog API token on the test config.
func WithCatalogToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.APIToken = token
	}
}

// WithAPIToken sets the control API bearer token on the test config.
func WithAPIToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.APIToken = token
	}
}

// WithoutAPI disables the control API listener on the test config.
func WithoutAPI() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.APIBind = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
