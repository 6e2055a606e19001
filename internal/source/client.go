// Package source is the HTTP client behind the admin CLI. It speaks the
// backend's JSON API, keeps the session cookie in a jar, maps API failures
// onto a small error taxonomy, and parks user creates in a local pending
// queue while the backend is unreachable.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/simp-lee/adminboard/internal/module/dashboard"
)

const defaultTimeout = 15 * time.Second

// Config configures a Client. BaseURL points at the API root, e.g.
// "http://localhost:8080/api/v1". PendingPath names the JSON file that
// carries the pending user-create queue across client lifetimes; leave it
// empty to keep the queue in memory only.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	PendingPath string
}

// Client is a session-holding client for the admin API. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	pending *pendingQueue
}

// New builds a Client with a fresh cookie jar. The session cookie issued by
// Login is carried on every subsequent request automatically. When
// cfg.PendingPath is set, records queued by earlier clients sharing that
// file are loaded back into the pending queue.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("source: base URL is required")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("source: create cookie jar: %w", err)
	}
	pending, err := newPendingQueue(cfg.PendingPath)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
		pending: pending,
	}, nil
}

// envelope mirrors the API's response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// callOpts tweaks per-call error mapping.
type callOpts struct {
	// login marks the authentication call itself, where a 401 means bad
	// credentials rather than an expired session.
	login bool
}

// do performs one API call, decoding the envelope's data into out when out
// is non-nil. Transport failures come back wrapped (the backend was never
// reached); HTTP failures become *RequestError or ErrSessionExpired.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, opts callOpts) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("source: encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("source: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("source: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("source: read response: %w", err)
	}

	var env envelope
	decodable := json.Unmarshal(raw, &env) == nil

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && !opts.login {
			return ErrSessionExpired
		}
		msg := "unexpected error"
		if decodable && env.Message != "" {
			msg = env.Message
		}
		return &RequestError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if !decodable {
		return fmt.Errorf("source: decode response envelope")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("source: decode response data: %w", err)
	}
	return nil
}

// Stats fetches the dashboard overview numbers.
func (c *Client) Stats(ctx context.Context) (*dashboard.Stats, error) {
	var stats dashboard.Stats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &stats, callOpts{}); err != nil {
		return nil, err
	}
	return &stats, nil
}

// pageQuery builds the common list query parameters.
func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	return q
}

// ListOptions narrows a server-side listing. Zero values are omitted from
// the request so the backend applies its defaults.
type ListOptions struct {
	Page        int
	PageSize    int
	Sort        string
	SearchField string
	Query       string
}

func (o ListOptions) values() url.Values {
	q := pageQuery(o.Page, o.PageSize)
	if o.Sort != "" {
		q.Set("sort", o.Sort)
	}
	if o.SearchField != "" {
		q.Set("search_field", o.SearchField)
	}
	if o.Query != "" {
		q.Set("q", o.Query)
	}
	return q
}
