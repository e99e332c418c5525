package config

const (
	defaultLogDir                = "~/.local/share/crossfade/logs"
	defaultAPIBind               = "127.0.0.1:7319"
	defaultCatalogBaseURL        = "https://api.listen.example.com/v1"
	defaultCatalogSearchLimit    = 25
	defaultCatalogRequestTimeout = 10
	defaultMaxCachedPairs        = 1000
	defaultProbeLimit            = 3
	defaultPairStorePath         = "~/.cache/crossfade/pairings.db"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Catalog: Catalog{
			BaseURL:        defaultCatalogBaseURL,
			SearchLimit:    defaultCatalogSearchLimit,
			RequestTimeout: defaultCatalogRequestTimeout,
		},
		Pairing: Pairing{
			MaxCachedPairs: defaultMaxCachedPairs,
			ProbeLimit:     defaultProbeLimit,
		},
		Playback: Playback{
			ResumeSeek: true,
		},
		PairStore: PairStore{
			Enabled: false,
			Path:    defaultPairStorePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
