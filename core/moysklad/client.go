package moysklad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client fetches pages from the MoySklad JSON API.
type Client struct {
	baseURL    *url.URL
	token      string
	pageLimit  int
	httpClient *http.Client
}

// NewClient creates a client from the configuration.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid moysklad base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid moysklad base url: %q", cfg.BaseURL)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &Client{
		baseURL:    base,
		token:      cfg.Token,
		pageLimit:  cfg.PageLimit,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}, nil
}

// Pages walks a collection page by page, following meta.nextHref until the
// API stops returning one. The query is applied to the first request only;
// every later cursor already carries its own query string.
//
// Iteration stops at the first error, which is yielded once. A cursor seen
// earlier in the same walk ends it with ErrCursorCycle.
func (c *Client) Pages(ctx context.Context, collection string, query url.Values) iter.Seq2[*Page, error] {
	return func(yield func(*Page, error) bool) {
		next := c.collectionURL(collection, query)
		seen := make(map[string]struct{})

		for next != "" {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if _, ok := seen[next]; ok {
				yield(nil, &FetchError{URL: next, Err: ErrCursorCycle})
				return
			}
			seen[next] = struct{}{}

			page, err := c.FetchPage(ctx, next)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(page, nil) {
				return
			}
			next = page.Meta.NextHref
		}
	}
}

// FetchPage performs a single GET against an absolute page URL.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("Accept", "application/json;charset=utf-8")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			URL:        pageURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", body),
		}
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, classify(pageURL, fmt.Errorf("failed to decode page: %w", err))
	}
	return &page, nil
}

func (c *Client) collectionURL(collection string, query url.Values) string {
	u := c.baseURL.JoinPath(collection)

	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	if c.pageLimit > 0 && q.Get("limit") == "" {
		q.Set("limit", strconv.Itoa(c.pageLimit))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func classify(pageURL string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{URL: pageURL, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{URL: pageURL, Err: err}
	}
	return &FetchError{URL: pageURL, Err: err}
}
