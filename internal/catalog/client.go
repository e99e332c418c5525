package catalog

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

// Client provides access to the remote catalog search API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a catalog client.
func New(token, baseURL string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("catalog api token required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	client := &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type searchResponse struct {
	Items []searchItem `json:"items"`
	Total int          `json:"total"`
}

type searchItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Search queries the catalog for tracks or videos matching the query. Results
// are returned in the remote relevance order; entries with a missing id or
// blank title are dropped at the boundary.
func (c *Client) Search(ctx context.Context, query string, kind Kind, limit int) ([]Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown catalog kind %q", kind)
	}
	if limit <= 0 {
		limit = 25
	}

	endpoint, err := url.Parse(c.baseURL + "/search/" + string(kind) + "s")
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog %s search returned %d (latency=%v)", kind, resp.StatusCode, latency)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	candidates := make([]Candidate, 0, len(payload.Items))
	for _, item := range payload.Items {
		title := strings.TrimSpace(item.Title)
		if item.ID <= 0 || title == "" {
			continue
		}
		candidates = append(candidates, Candidate{ID: item.ID, Title: title})
	}
	return candidates, nil
}

// Exists reports whether the item with the given id still resolves in the
// catalog. A 404 means the item is gone (geo-restriction, takedown) and is
// not an error.
func (c *Client) Exists(ctx context.Context, id int64, kind Kind) (bool, error) {
	if id <= 0 {
		return false, errors.New("item id must be positive")
	}
	if !kind.Valid() {
		return false, fmt.Errorf("unknown catalog kind %q", kind)
	}

	endpoint := fmt.Sprintf("%s/%ss/%d", c.baseURL, kind, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound, http.StatusGone:
		return false, nil
	default:
		return false, fmt.Errorf("catalog %s lookup returned %d", kind, resp.StatusCode)
	}
}
