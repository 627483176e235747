// Package spotify is a thin client for the handful of Spotify Web API
// endpoints this tool needs: artist search, related artists, album and track
// listings, and playlist creation. Paginated listings are exposed as Pagers.
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the production Web API root.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// MaxTracksPerRequest is the service limit on items per playlist append.
	MaxTracksPerRequest = 100

	// pageLimit is the page size requested from paginated listings.
	pageLimit = 50

	maxRetries = 5
)

// Client issues authorized requests against the Spotify Web API. It is an
// explicit handle: acquire one at startup and pass it to each phase.
type Client struct {
	// BaseURL may be pointed at a test server.
	BaseURL string

	http *http.Client
}

// NewClient wraps an OAuth-authorized HTTP client.
func NewClient(h *http.Client) *Client {
	return &Client{BaseURL: DefaultBaseURL, http: h}
}

// StatusError is a non-2xx API response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spotify: status %d: %s", e.Status, e.Body)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.roundTrip(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.roundTrip(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body []byte, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	respBody, status, err := c.doWithRetry(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		msg := string(respBody)
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return &StatusError{Status: status, Body: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// doWithRetry retries transport errors, 429s and 5xx responses with capped
// exponential backoff. A 4xx response is returned to the caller as-is.
func (c *Client) doWithRetry(ctx context.Context, method, endpoint string, body []byte) ([]byte, int, error) {
	var lastErr error
	var status int

	for attempt := 0; attempt <= maxRetries; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, 0, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if sleepErr := sleep(ctx, backoff(attempt)); sleepErr != nil {
				return nil, 0, sleepErr
			}
			continue
		}

		status = resp.StatusCode
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case status >= 200 && status < 300:
			return respBody, status, nil
		case status == http.StatusTooManyRequests:
			if err := sleep(ctx, retryAfter(resp)); err != nil {
				return nil, status, err
			}
		case status >= 500:
			if err := sleep(ctx, backoff(attempt)); err != nil {
				return nil, status, err
			}
		default:
			// 4xx: not retryable
			return respBody, status, nil
		}
		lastErr = fmt.Errorf("spotify: status %d after %d attempts", status, attempt+1)
	}

	return nil, status, lastErr
}

func retryAfter(resp *http.Response) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Second
}

func backoff(attempt int) time.Duration {
	base := 20 * time.Millisecond
	f := math.Pow(2, float64(attempt))
	jitter := time.Duration(rand.Intn(200)) * time.Millisecond
	return time.Duration(float64(base)*f) + jitter
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
