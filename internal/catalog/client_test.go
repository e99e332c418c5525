package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"crossfade/internal/catalog"
)

func TestNewRequiresToken(t *testing.T) {
	if _, err := catalog.New("", "https://example.com"); err == nil {
		t.Fatal("expected error when token missing")
	}
}

func TestSearchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/tracks" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("expected bearer auth, got %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "Blinding Lights" {
			t.Fatalf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":10,"title":"Blinding Lights"},{"id":11,"title":"Blinding Lights (Official Music Video)"}],"total":2}`))
	}))
	t.Cleanup(server.Close)

	client, err := catalog.New("tok", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	results, err := client.Search(context.Background(), "Blinding Lights", catalog.KindTrack, 25)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 2 || results[0].ID != 10 || results[1].Title != "Blinding Lights (Official Music Video)" {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestSearchDropsMalformedItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":0,"title":"No ID"},{"id":5,"title":"   "},{"id":7,"title":"Keeper"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := catalog.New("tok", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	results, err := client.Search(context.Background(), "anything", catalog.KindVideo, 10)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 1 || results[0].ID != 7 {
		t.Fatalf("expected only the valid item, got %#v", results)
	}
}

func TestSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client, err := catalog.New("tok", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Search(context.Background(), "fail", catalog.KindTrack, 10); err == nil {
		t.Fatal("expected error when catalog returns non-200")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client, err := catalog.New("tok", "https://example.com")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Search(context.Background(), "  ", catalog.KindTrack, 10); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestExistsStatusMapping(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos/42" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	client, err := catalog.New("tok", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ok, err := client.Exists(context.Background(), 42, catalog.KindVideo)
	if err != nil || !ok {
		t.Fatalf("expected exists for 200, got ok=%v err=%v", ok, err)
	}

	status = http.StatusNotFound
	ok, err = client.Exists(context.Background(), 42, catalog.KindVideo)
	if err != nil || ok {
		t.Fatalf("expected missing without error for 404, got ok=%v err=%v", ok, err)
	}

	status = http.StatusInternalServerError
	if _, err = client.Exists(context.Background(), 42, catalog.KindVideo); err == nil {
		t.Fatal("expected error for 500")
	}
}

func TestParseKind(t *testing.T) {
	if kind, ok := catalog.ParseKind(" Track "); !ok || kind != catalog.KindTrack {
		t.Fatalf("unexpected parse result %q %v", kind, ok)
	}
	if _, ok := catalog.ParseKind("episode"); ok {
		t.Fatal("expected unknown kind to fail")
	}
	if catalog.KindTrack.Counterpart() != catalog.KindVideo {
		t.Fatal("expected video counterpart for track")
	}
}
