package daemonctl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound indicates the daemon has no pairing for the request.
var ErrNotFound = errors.New("pairing not found")

// Status mirrors the daemon's /api/status payload.
type Status struct {
	Running      bool   `json:"running"`
	SessionID    string `json:"session_id"`
	PairDBPath   string `json:"pair_db_path"`
	LockFilePath string `json:"lock_file_path"`
	Pairings     int    `json:"pairings"`
	Negatives    int    `json:"negatives"`
	PendingSeeks int    `json:"pending_seeks"`
	InFlight     int    `json:"in_flight"`
}

// Pairing mirrors the daemon's pairing payload.
type Pairing struct {
	TrackID int64 `json:"track_id"`
	VideoID int64 `json:"video_id"`
}

// ClearResult mirrors the daemon's cache clear payload.
type ClearResult struct {
	Cleared       bool  `json:"cleared"`
	RemovedStored int64 `json:"removed_stored"`
}

// Client talks to a running crossfade daemon over its control API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New builds a client for the control API bound at addr (host:port).
func New(addr, token string) *Client {
	base := strings.TrimSpace(addr)
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Status fetches daemon runtime information.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var status Status
	if err := c.get(ctx, "/api/status", nil, &status); err != nil {
		return Status{}, err
	}
	return status, nil
}

// Resolve asks the daemon to resolve the pairing for a song.
func (c *Client) Resolve(ctx context.Context, title, artist string) (Pairing, error) {
	params := url.Values{}
	params.Set("title", title)
	params.Set("artist", artist)
	var pairing Pairing
	if err := c.get(ctx, "/api/resolve", params, &pairing); err != nil {
		return Pairing{}, err
	}
	return pairing, nil
}

// PairingByID fetches the cached pairing containing the given media id.
func (c *Client) PairingByID(ctx context.Context, id int64) (Pairing, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(id, 10))
	var pairing Pairing
	if err := c.get(ctx, "/api/pairings", params, &pairing); err != nil {
		return Pairing{}, err
	}
	return pairing, nil
}

// Pairings lists the daemon's cached pairings, oldest first.
func (c *Client) Pairings(ctx context.Context) ([]Pairing, error) {
	var payload struct {
		Pairings []Pairing `json:"pairings"`
	}
	if err := c.get(ctx, "/api/pairings", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Pairings, nil
}

// ClearCache drops the daemon's caches and persisted pairings.
func (c *Client) ClearCache(ctx context.Context) (ClearResult, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/cache", nil)
	if err != nil {
		return ClearResult{}, err
	}
	var result ClearResult
	if err := c.do(req, &result); err != nil {
		return ClearResult{}, err
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, params)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, params url.Values) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connect to daemon at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		var payload struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil && payload.Error != "" {
			return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, payload.Error)
		}
		return fmt.Errorf("daemon returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode daemon response: %w", err)
	}
	return nil
}
