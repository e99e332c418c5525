package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath string
	baseDir    string
	daemonAddr string
}

func setupCLITestEnv(t *testing.T, daemonHandler http.Handler) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{baseDir: base}

	if daemonHandler != nil {
		server := httptest.NewServer(daemonHandler)
		t.Cleanup(server.Close)
		env.daemonAddr = strings.TrimPrefix(server.URL, "http://")
	}

	env.configPath = filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
log_dir = %q
api_bind = %q

[catalog]
api_token = "test"

[pair_store]
enabled = false
`, filepath.Join(base, "logs"), env.daemonAddr)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()

	full := append([]string{"--config", env.configPath}, args...)
	cmd := newRootCommand()
	cmd.SetArgs(full)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, nil)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init against the same path must refuse to overwrite.
	if _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected config init to refuse overwrite")
	}
}

func TestStatusRendersDaemonState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"running":true,"session_id":"abc","pairings":2,"negatives":1}`))
	})
	env := setupCLITestEnv(t, mux)

	out, err := runCLI(t, env, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "session abc")
	requireContains(t, out, "Pairings")
}

func TestPairReportsMiss(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/pairings", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"pairing not found"}`, http.StatusNotFound)
	})
	env := setupCLITestEnv(t, mux)

	out, err := runCLI(t, env, "pair", "42")
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	requireContains(t, out, "No pairing contains media id 42")
}

func TestPairPrintsPairing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/pairings", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "10" {
			t.Fatalf("unexpected id %q", r.URL.Query().Get("id"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"track_id":2,"video_id":10}`))
	})
	env := setupCLITestEnv(t, mux)

	out, err := runCLI(t, env, "pair", "10")
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	requireContains(t, out, "Track ID: 2")
	requireContains(t, out, "Video ID: 10")
}

func TestPairRejectsBadID(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	if _, err := runCLI(t, env, "pair", "abc"); err == nil {
		t.Fatal("expected invalid id error")
	}
}

func TestDisplayTitle(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"hello world":  "Hello World",
		"MiXeD CaSe":   "MiXeD CaSe",
		"  padded  ":   "Padded",
		"ALL CAPS":     "ALL CAPS",
		"lower artist": "Lower Artist",
	}
	for input, want := range cases {
		if got := displayTitle(input); got != want {
			t.Fatalf("displayTitle(%q) = %q, want %q", input, got, want)
		}
	}
}
