package adminclient

import (
	"net/http"
	"strings"
	"time"
)

// Option customizes a Client at construction time.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTPClient = h } }
func WithUserAgent(ua string) Option       { return func(c *Client) { c.UserAgent = ua } }
func WithSessionToken(token string) Option { return func(c *Client) { c.SessionToken = token } }
func WithRetries(max int) Option           { return func(c *Client) { c.MaxRetries = max } }
func WithLogger(l Logger) Option           { return func(c *Client) { c.Logger = l } }
func WithBackoff(initial, max time.Duration) Option {
	return func(c *Client) {
		c.InitialBackoff = initial
		c.MaxBackoff = max
	}
}

func trimBaseURL(u string) string {
	return strings.TrimRight(u, "/")
}
