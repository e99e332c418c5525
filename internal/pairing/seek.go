package pairing

import (
	"sync"
	"time"
)

// seekRegistry holds per-media resume positions recorded when a playback
// switch is about to land on the counterpart item. Each intent is consumed
// by exactly one take.
type seekRegistry struct {
	mu      sync.Mutex
	intents map[int64]time.Duration
}

func newSeekRegistry() *seekRegistry {
	return &seekRegistry{intents: make(map[int64]time.Duration)}
}

func (r *seekRegistry) Remember(id int64, position time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents[id] = position
}

func (r *seekRegistry) Take(id int64) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	position, ok := r.intents[id]
	if ok {
		delete(r.intents, id)
	}
	return position, ok
}

func (r *seekRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.intents)
}

func (r *seekRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = make(map[int64]time.Duration)
}
