package pairing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"crossfade/internal/catalog"
	"crossfade/internal/logging"
	"crossfade/internal/match"
)

// Persister is the optional durable layer behind the in-memory caches.
// Implementations must tolerate concurrent calls.
type Persister interface {
	Save(ctx context.Context, trackID, videoID int64, title, artist string) error
	FindByMediaID(ctx context.Context, id int64) (trackID, videoID int64, found bool, err error)
}

// Engine resolves track and video counterparts for songs and caches the
// outcome in both directions. All methods are safe for concurrent use.
type Engine struct {
	logger      *slog.Logger
	searcher    catalog.Searcher
	store       Persister
	searchLimit int
	probeLimit  int

	pairs     *pairCache
	negatives *negativeCache
	seeks     *seekRegistry

	flight   singleflight.Group
	mu       sync.Mutex
	inflight map[string]struct{}
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithPersister attaches a durable pairing store consulted on cache misses
// and written on successful resolution.
func WithPersister(store Persister) Option {
	return func(e *Engine) { e.store = store }
}

// WithCacheBounds overrides the high-water mark shared by the pairing and
// negative caches. Values below 2 fall back to the default.
func WithCacheBounds(high int) Option {
	return func(e *Engine) {
		e.pairs = newPairCache(high)
		e.negatives = newNegativeCache(high)
	}
}

// WithSearchLimit caps how many candidates each catalog search returns.
func WithSearchLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.searchLimit = limit
		}
	}
}

// WithProbeLimit caps how many candidates are probed for existence per
// resolution attempt.
func WithProbeLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.probeLimit = limit
		}
	}
}

// NewEngine builds an engine backed by the given catalog searcher.
func NewEngine(logger *slog.Logger, searcher catalog.Searcher, opts ...Option) *Engine {
	engine := &Engine{
		logger:      logging.NewComponentLogger(logger, "pairing"),
		searcher:    searcher,
		searchLimit: 25,
		probeLimit:  match.DefaultProbeLimit,
		pairs:       newPairCache(DefaultCacheHigh),
		negatives:   newNegativeCache(DefaultCacheHigh),
		seeks:       newSeekRegistry(),
		inflight:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// LookupByID returns the cached pairing containing the given media id, if
// any. On a memory miss the persistent store is consulted and a hit is
// promoted back into the cache.
func (e *Engine) LookupByID(ctx context.Context, id int64) (Pairing, bool) {
	if p, ok := e.pairs.Get(id); ok {
		return p, true
	}
	if e.store == nil {
		return Pairing{}, false
	}
	trackID, videoID, found, err := e.store.FindByMediaID(ctx, id)
	if err != nil {
		e.logger.Warn("pair store lookup failed",
			logging.Int64("media_id", id),
			logging.Error(err))
		return Pairing{}, false
	}
	if !found {
		return Pairing{}, false
	}
	p := Pairing{TrackID: trackID, VideoID: videoID}
	e.pairs.Put(p)
	return p, true
}

// CounterpartID resolves the id on the other side of a cached pairing.
func (e *Engine) CounterpartID(ctx context.Context, ref MediaRef) (int64, bool) {
	p, ok := e.LookupByID(ctx, ref.ID)
	if !ok {
		return 0, false
	}
	return p.IDForKind(ref.Kind.Counterpart()), true
}

// RememberSeek records the resume position to apply when playback of the
// given media id next starts.
func (e *Engine) RememberSeek(id int64, position time.Duration) {
	e.seeks.Remember(id, position)
}

// TakeSeek consumes the pending resume position for a media id, if any.
func (e *Engine) TakeSeek(id int64) (time.Duration, bool) {
	return e.seeks.Take(id)
}

// Stats reports current cache occupancy.
type Stats struct {
	Pairings     int
	Negatives    int
	PendingSeeks int
	InFlight     int
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	inflight := len(e.inflight)
	e.mu.Unlock()
	return Stats{
		Pairings:     e.pairs.Len(),
		Negatives:    e.negatives.Len(),
		PendingSeeks: e.seeks.Len(),
		InFlight:     inflight,
	}
}

// Pairings returns the cached pairings ordered oldest first.
func (e *Engine) Pairings() []Pairing {
	return e.pairs.Snapshot()
}

// Clear drops every cached pairing, negative entry, pending seek, and
// in-flight registration. Resolutions already running complete normally but
// later callers for the same key start fresh work.
func (e *Engine) Clear() {
	e.pairs.Clear()
	e.negatives.Clear()
	e.seeks.Clear()
	e.mu.Lock()
	for key := range e.inflight {
		e.flight.Forget(key)
	}
	e.inflight = make(map[string]struct{})
	e.mu.Unlock()
	e.logger.Info("caches cleared", logging.String(logging.FieldEventType, "cache_clear"))
}
