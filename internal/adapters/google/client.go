package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api"

// Client talks to the Google Maps Platform web services
// (Geocoding, Places Nearby Search, Place Details, Directions).
//
// It implements ReverseGeocoder, NearbySearcher, PlaceDetailsProvider and
// DirectionsProvider. Calls are never retried; the only repeated request is
// the page-token warm-up described on NextPage.
//
// The client is safe for concurrent use.
type Client struct {
	session        *http.Client
	apiKey         string
	baseURL        string
	limiter        *rate.Limiter
	pageTokenDelay time.Duration
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.session = h }
}

// WithQPS limits outbound requests per second across all endpoints.
func WithQPS(qps float64) Option {
	return func(c *Client) {
		if qps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		burst := int(qps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(qps), burst)
	}
}

// WithPageTokenDelay sets how long a fresh next_page_token is left to warm up
// before it is used.
func WithPageTokenDelay(d time.Duration) Option {
	return func(c *Client) { c.pageTokenDelay = d }
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("google api key is empty")
	}

	c := &Client{
		session:        &http.Client{Timeout: 10 * time.Second},
		apiKey:         apiKey,
		baseURL:        DefaultBaseURL,
		limiter:        rate.NewLimiter(rate.Limit(10), 10),
		pageTokenDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *Client) newRequest(ctx context.Context, path string, q url.Values) (*http.Request, error) {
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// getJSON issues a GET against path and decodes the JSON body into out.
// Google reports API-level failures in a "status" field with HTTP 200,
// so callers still inspect the decoded status.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := c.newRequest(ctx, path, q)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
