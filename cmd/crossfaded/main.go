package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"crossfade/internal/catalog"
	"crossfade/internal/config"
	"crossfade/internal/daemon"
	"crossfade/internal/logging"
	"crossfade/internal/pairing"
	"crossfade/internal/pairstore"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	client, err := catalog.New(cfg.Catalog.APIToken, cfg.Catalog.BaseURL,
		catalog.WithTimeout(time.Duration(cfg.Catalog.RequestTimeout)*time.Second))
	if err != nil {
		logger.Error("init catalog client", logging.Error(err))
		return
	}

	opts := []pairing.Option{
		pairing.WithSearchLimit(cfg.Catalog.SearchLimit),
		pairing.WithProbeLimit(cfg.Pairing.ProbeLimit),
		pairing.WithCacheBounds(cfg.Pairing.MaxCachedPairs),
	}
	var store *pairstore.Store
	if cfg.PairStore.Enabled {
		store, err = pairstore.Open(cfg.PairStore.Path)
		if err != nil {
			logger.Error("open pair store", logging.Error(err))
			return
		}
		opts = append(opts, pairing.WithPersister(store))
	}

	engine := pairing.NewEngine(logger, catalog.NewCachedSearcher(client), opts...)

	d, err := daemon.New(cfg, engine, store, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
	d.Stop()
}
