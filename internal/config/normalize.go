package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	c.normalizePairing()
	if err := c.normalizePairStore(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeCatalog() error {
	if c.Catalog.APIToken == "" {
		if value, ok := os.LookupEnv("CROSSFADE_CATALOG_TOKEN"); ok {
			c.Catalog.APIToken = strings.TrimSpace(value)
		}
	}
	c.Catalog.BaseURL = strings.TrimSpace(c.Catalog.BaseURL)
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = defaultCatalogBaseURL
	}
	c.Catalog.BaseURL = strings.TrimRight(c.Catalog.BaseURL, "/")
	if c.Catalog.SearchLimit <= 0 {
		c.Catalog.SearchLimit = defaultCatalogSearchLimit
	}
	if c.Catalog.RequestTimeout <= 0 {
		c.Catalog.RequestTimeout = defaultCatalogRequestTimeout
	}
	return nil
}

func (c *Config) normalizePairing() {
	if c.Pairing.MaxCachedPairs <= 0 {
		c.Pairing.MaxCachedPairs = defaultMaxCachedPairs
	}
	if c.Pairing.ProbeLimit <= 0 {
		c.Pairing.ProbeLimit = defaultProbeLimit
	}
}

func (c *Config) normalizePairStore() error {
	var err error
	if strings.TrimSpace(c.PairStore.Path) == "" {
		c.PairStore.Path = defaultPairStorePath
	}
	if c.PairStore.Path, err = expandPath(c.PairStore.Path); err != nil {
		return fmt.Errorf("pair_store.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
