// Package upstream is the REST client for the TamkeenAI career backend.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tamkeenai/careerd/internal/core/domain"
	"github.com/tamkeenai/careerd/internal/metrics"
)

// StatusError is a non-2xx response from the career backend.
type StatusError struct {
	Code int
	Body string
}

// Error returns the status line and trimmed body.
func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

// StatusCode returns the HTTP status code.
func (e *StatusError) StatusCode() int {
	return e.Code
}

// Config holds upstream connection configuration.
type Config struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Client talks to the career backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an upstream client with a pooled transport and fixed
// request timeout.
func NewClient(cfg Config) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Get performs a GET against path with the query parameters and decodes the
// JSON body. Non-200 responses come back as *StatusError.
func (c *Client) Get(ctx context.Context, path string, q domain.Query) (any, error) {
	start := time.Now()

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream url: %w", err)
	}

	vals := url.Values{}
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	if q.Location != "" {
		vals.Set("location", q.Location)
	}
	if q.Page > 0 {
		vals.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		vals.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	u.RawQuery = vals.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(path, "transport").Inc()
		return nil, fmt.Errorf("career api call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(path, "read").Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}

	metrics.UpstreamLatency.WithLabelValues(path).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamErrors.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	metrics.UpstreamRequests.WithLabelValues(path).Inc()

	if len(body) == 0 {
		return nil, nil
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.UpstreamErrors.WithLabelValues(path, "parse").Inc()
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return payload, nil
}
