package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validatePairing(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.APIToken == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/crossfade/config.toml"
		}
		return fmt.Errorf("catalog.api_token is required. Set CROSSFADE_CATALOG_TOKEN env var or edit %s (create with 'crossfade config init')", defaultPath)
	}
	parsed, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("catalog.base_url %q is not a valid URL", c.Catalog.BaseURL)
	}
	return nil
}

func (c *Config) validatePairing() error {
	if c.Pairing.MaxCachedPairs < 2 {
		return errors.New("pairing.max_cached_pairs must be at least 2")
	}
	if c.Pairing.ProbeLimit < 1 {
		return errors.New("pairing.probe_limit must be at least 1")
	}
	return nil
}
