package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

func (c *Client) newRequest(ctx context.Context, method, path string, rawQuery string, body []byte) (*http.Request, error) {
	u := c.BaseURL + path
	if rawQuery != "" {
		u += "?" + rawQuery
	}
	var rc io.Reader
	if body != nil {
		rc = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rc)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.SessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.SessionToken)
	}
	return req, nil
}

// doJSON sends one request and decodes a JSON response. When retriable
// is true, connection errors, 429s, and 5xx responses are retried with
// jittered backoff up to MaxRetries extra attempts. Writes pass
// retriable=false and run exactly once.
func (c *Client) doJSON(ctx context.Context, method, path string, rawQuery string, in, out any, retriable bool) error {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = b
	}

	retries := 0
	if retriable && c.MaxRetries > 0 {
		retries = c.MaxRetries
	}
	backoff := c.InitialBackoff
	if backoff <= 0 {
		backoff = 300 * time.Millisecond
	}
	maxBack := c.MaxBackoff
	if maxBack < backoff {
		maxBack = backoff
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		req, err := c.newRequest(ctx, method, path, rawQuery, body)
		if err != nil {
			return err
		}
		if c.Logger != nil {
			c.Logger("request", map[string]any{"method": method, "path": path, "attempt": attempt})
		}

		res, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%s %s: %w", method, path, err)
		} else {
			resBody, readErr := io.ReadAll(res.Body)
			res.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%s %s: reading response: %w", method, path, readErr)
			} else if res.StatusCode/100 == 2 {
				if out != nil && len(resBody) > 0 {
					if err := json.Unmarshal(resBody, out); err != nil {
						return fmt.Errorf("decode response: %w", err)
					}
				}
				return nil
			} else {
				apiErr := parseAPIError(res.StatusCode, resBody)
				if !retriableStatus(res.StatusCode) {
					return apiErr
				}
				lastErr = apiErr
			}
		}

		if attempt < retries {
			jitterSleep(ctx, backoff)
			backoff *= 2
			if backoff > maxBack {
				backoff = maxBack
			}
		}
	}
	return lastErr
}

// doRaw sends one request and returns the raw body, for binary payloads
// such as PDF exports.
func (c *Client) doRaw(ctx context.Context, method, path string, rawQuery string) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, rawQuery, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode/100 != 2 {
		return nil, parseAPIError(res.StatusCode, body)
	}
	return body, nil
}

func jitterSleep(ctx context.Context, d time.Duration) {
	d = d/2 + time.Duration(rand.Int63n(int64(d/2)+1))
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
