package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	searchCacheSize = 256
	searchCacheTTL  = 10 * time.Minute
	searchRateLimit = 250 * time.Millisecond
)

// CachedSearcher wraps a Searcher with a short-lived search response cache and
// a simple rate limit, so repeated lookups for the same query within a session
// do not hammer the remote endpoint.
type CachedSearcher struct {
	inner Searcher
	cache *expirable.LRU[string, []Candidate]

	mu         sync.Mutex
	lastLookup time.Time
}

var _ Searcher = (*CachedSearcher)(nil)

// NewCachedSearcher wraps inner with response caching. A nil inner is allowed
// and yields a searcher whose calls fail.
func NewCachedSearcher(inner Searcher) *CachedSearcher {
	return &CachedSearcher{
		inner: inner,
		cache: expirable.NewLRU[string, []Candidate](searchCacheSize, nil, searchCacheTTL),
	}
}

func (s *CachedSearcher) Search(ctx context.Context, query string, kind Kind, limit int) ([]Candidate, error) {
	if s == nil || s.inner == nil {
		return nil, fmt.Errorf("catalog searcher unavailable")
	}

	key := fmt.Sprintf("%s|%s|%d", kind, strings.ToLower(strings.TrimSpace(query)), limit)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	if err := s.throttle(ctx); err != nil {
		return nil, err
	}

	results, err := s.inner.Search(ctx, query, kind, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, results)
	return results, nil
}

func (s *CachedSearcher) Exists(ctx context.Context, id int64, kind Kind) (bool, error) {
	if s == nil || s.inner == nil {
		return false, fmt.Errorf("catalog searcher unavailable")
	}
	return s.inner.Exists(ctx, id, kind)
}

func (s *CachedSearcher) throttle(ctx context.Context) error {
	s.mu.Lock()
	wait := searchRateLimit - time.Since(s.lastLookup)
	if wait > 0 {
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		s.mu.Lock()
	}
	s.lastLookup = time.Now()
	s.mu.Unlock()
	return nil
}
