// Package config loads, normalizes, and validates Crossfade configuration.
//
// Configuration is a single TOML file (default ~/.config/crossfade/config.toml,
// with a crossfade.toml in the working directory as a fallback). Load applies
// defaults first, then the file contents, then normalization (path expansion,
// trimming, env-var fallbacks) and validation, so the rest of the system only
// ever sees a usable Config.
package config
