package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"crossfade/internal/config"
	"crossfade/internal/logging"
	"crossfade/internal/pairing"
	"crossfade/internal/pairstore"
)

// Daemon hosts the pairing engine behind the control API and enforces
// single-instance execution via a lock file.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	engine    *pairing.Engine
	store     *pairstore.Store
	sessionID string
	logPath   string

	lockPath string
	lock     *flock.Flock

	api *apiServer

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	SessionID    string
	PairDBPath   string
	LockFilePath string
	Engine       pairing.Stats
}

// New constructs a daemon around an initialized engine. The pair store may
// be nil when persistence is disabled.
func New(cfg *config.Config, engine *pairing.Engine, store *pairstore.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || engine == nil || logger == nil {
		return nil, errors.New("daemon requires config, engine, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "crossfaded.lock")
	d := &Daemon{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "daemon"),
		engine:    engine,
		store:     store,
		sessionID: uuid.NewString(),
		logPath:   filepath.Join(cfg.Paths.LogDir, "crossfade.log"),
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the daemon lock and brings the control API up.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another crossfade daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.api.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("crossfade daemon started",
		logging.String("session_id", d.sessionID),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts the control API down, clears the engine caches, and releases
// the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	d.engine.Clear()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("crossfade daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// ClearCaches empties the in-memory caches and, when persistence is
// enabled, the durable pairing rows as well.
func (d *Daemon) ClearCaches(ctx context.Context) (int64, error) {
	d.engine.Clear()
	if d.store == nil {
		return 0, nil
	}
	return d.store.Clear(ctx)
}

// APIAddr returns the bound control API address, empty before Start.
func (d *Daemon) APIAddr() string {
	if d.api == nil {
		return ""
	}
	return d.api.addr()
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	pairDBPath := ""
	if d.store != nil {
		pairDBPath = d.store.Path()
	}
	return Status{
		Running:      d.running.Load(),
		SessionID:    d.sessionID,
		PairDBPath:   pairDBPath,
		LockFilePath: d.lockPath,
		Engine:       d.engine.Stats(),
	}
}
