// Package adminclient provides a typed Go client for the admin console
// API. It wraps HTTP transport, retries, session handling, and response
// decoding, and layers a query-keyed response cache with invalidation so
// callers see fresh data after their own writes without refetching
// everything by hand.
package adminclient

import (
	"net"
	"net/http"
	"time"
)

// Logger is an optional hook for request/response events.
type Logger func(event string, metadata map[string]any)

// Client contains shared configuration and HTTP plumbing for the SDK.
type Client struct {
	// BaseURL is the API origin (for example: http://localhost:8080).
	BaseURL string

	// SessionToken authenticates requests. It is captured automatically
	// by Auth().Login and can also be set directly.
	SessionToken string

	// HTTPClient is the underlying HTTP client. A tuned default is
	// provided and can be replaced via WithHTTPClient.
	HTTPClient *http.Client

	// UserAgent is added to each request.
	UserAgent string

	// Retry configuration for read requests. Writes are never retried.
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	Logger Logger

	cache *queryCache
}

// New constructs a Client with safe defaults. Options override defaults.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: trimBaseURL(baseURL),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		UserAgent:      "adminclient-go/1.0",
		MaxRetries:     1,
		InitialBackoff: 300 * time.Millisecond,
		MaxBackoff:     3 * time.Second,
		cache:          newQueryCache(),
	}
	for _, f := range opts {
		f(c)
	}
	return c
}

// Invalidate drops every cached response whose endpoint starts with one
// of the given prefixes and notifies subscribers. Mutations call this
// automatically through their InvalidateKeys.
func (c *Client) Invalidate(prefixes ...string) {
	c.cache.Invalidate(prefixes...)
}

// Subscribe registers fn to run whenever a cached endpoint matching the
// prefix is invalidated. The returned function cancels the subscription.
func (c *Client) Subscribe(prefix string, fn func()) (unsubscribe func()) {
	return c.cache.Subscribe(prefix, fn)
}
