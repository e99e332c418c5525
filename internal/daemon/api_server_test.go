package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"crossfade/internal/catalog"
	"crossfade/internal/logging"
	"crossfade/internal/pairing"
	"crossfade/internal/testsupport"
)

type searcherStub struct {
	tracks []catalog.Candidate
	videos []catalog.Candidate
}

func (s *searcherStub) Search(_ context.Context, _ string, kind catalog.Kind, _ int) ([]catalog.Candidate, error) {
	if kind == catalog.KindVideo {
		return s.videos, nil
	}
	return s.tracks, nil
}

func (s *searcherStub) Exists(context.Context, int64, catalog.Kind) (bool, error) {
	return true, nil
}

func newTestDaemon(t *testing.T, searcher catalog.Searcher) *Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	engine := pairing.NewEngine(logging.NewNop(), searcher)
	d, err := New(cfg, engine, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestAPIServerHandleStatus(t *testing.T) {
	d := newTestDaemon(t, &searcherStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	d.api.handleStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp statusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Running {
		t.Fatal("daemon should not report running before Start")
	}
	if resp.SessionID == "" {
		t.Fatal("session id missing from status")
	}
}

func TestAPIServerHandleResolve(t *testing.T) {
	d := newTestDaemon(t, &searcherStub{
		tracks: []catalog.Candidate{{ID: 2, Title: "Song"}},
		videos: []catalog.Candidate{{ID: 10, Title: "Song (Official Video)"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/resolve?title=Song&artist=Artist", nil)
	w := httptest.NewRecorder()
	d.api.handleResolve(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp pairingPayload
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TrackID != 2 || resp.VideoID != 10 {
		t.Fatalf("unexpected pairing %+v", resp)
	}
}

func TestAPIServerHandleResolveRequiresParams(t *testing.T) {
	d := newTestDaemon(t, &searcherStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/resolve?title=Song", nil)
	w := httptest.NewRecorder()
	d.api.handleResolve(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAPIServerHandleResolveNotFound(t *testing.T) {
	d := newTestDaemon(t, &searcherStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/resolve?title=Song&artist=Artist", nil)
	w := httptest.NewRecorder()
	d.api.handleResolve(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAPIServerHandlePairingsByID(t *testing.T) {
	d := newTestDaemon(t, &searcherStub{
		tracks: []catalog.Candidate{{ID: 2, Title: "Song"}},
		videos: []catalog.Candidate{{ID: 10, Title: "Song (Official Video)"}},
	})
	if resolved := d.engine.Resolve(context.Background(), "Song", "Artist"); resolved == nil {
		t.Fatal("seed resolve failed")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/pairings?id=10", nil)
	w := httptest.NewRecorder()
	d.api.handlePairings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp pairingPayload
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TrackID != 2 {
		t.Fatalf("unexpected pairing %+v", resp)
	}
}

func TestAPIServerHandleCacheClears(t *testing.T) {
	d := newTestDaemon(t, &searcherStub{
		tracks: []catalog.Candidate{{ID: 2, Title: "Song"}},
		videos: []catalog.Candidate{{ID: 10, Title: "Song (Official Video)"}},
	})
	d.engine.Resolve(context.Background(), "Song", "Artist")

	req := httptest.NewRequest(http.MethodDelete, "/api/cache", nil)
	w := httptest.NewRecorder()
	d.api.handleCache(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if stats := d.engine.Stats(); stats.Pairings != 0 {
		t.Fatalf("pairings after clear = %d, want 0", stats.Pairings)
	}
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	called := false
	handler := authMiddleware("secret", func(http.ResponseWriter, *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusUnauthorized || called {
		t.Fatalf("missing token: code %d, called %v", w.Code, called)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	handler(w, req)
	if !called {
		t.Fatal("valid token should reach the handler")
	}
}
