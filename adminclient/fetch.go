package adminclient

import (
	"context"
	"encoding/json"
	"net/http"

	"adminconsole/internal/query"
)

// FetchOptions tunes one read against the cache.
type FetchOptions[T any] struct {
	// Disabled skips the request entirely; callers get the zero value
	// and Skipped=true. Mirrors gating a read on a precondition.
	Disabled bool

	// Retries overrides the client's retry count for this read.
	Retries *int

	// Normalizer reshapes the decoded response before it is returned.
	// It runs on cached hits too, so the caller always sees the same
	// shape regardless of where the bytes came from.
	Normalizer func(T) T

	// Refresh forces a network round trip even on a cache hit.
	Refresh bool
}

// Result carries the outcome of a cached read.
type Result[T any] struct {
	Data      T
	FromCache bool
	Skipped   bool
}

// Fetch performs a cached GET of endpoint with the given query state.
//
// A cache hit returns immediately and kicks off a background refresh;
// the stored value is only replaced if no newer request has written the
// key in the meantime. A miss fetches synchronously with retries. On a
// fetch error the last cached value, when present, is returned alongside
// the error so callers can keep rendering stale data.
func Fetch[T any](ctx context.Context, c *Client, endpoint string, q query.State, opts FetchOptions[T]) (Result[T], error) {
	if opts.Disabled {
		return Result[T]{Skipped: true}, nil
	}

	rawQuery := q.Encode()
	key := cacheKey(endpoint, rawQuery)

	if !opts.Refresh {
		if raw, ok := c.cache.get(key); ok {
			var data T
			if err := json.Unmarshal(raw, &data); err == nil {
				go c.refresh(context.WithoutCancel(ctx), endpoint, rawQuery, key)
				if opts.Normalizer != nil {
					data = opts.Normalizer(data)
				}
				return Result[T]{Data: data, FromCache: true}, nil
			}
		}
	}

	if opts.Retries != nil {
		shallow := *c
		shallow.MaxRetries = *opts.Retries
		c = &shallow
	}

	gen := c.cache.nextGen()
	var raw json.RawMessage
	err := c.doJSON(ctx, http.MethodGet, endpoint, rawQuery, nil, &raw, true)
	if err != nil {
		// Keep showing the last good value when we have one.
		if prev, ok := c.cache.get(key); ok {
			var data T
			if decodeErr := json.Unmarshal(prev, &data); decodeErr == nil {
				if opts.Normalizer != nil {
					data = opts.Normalizer(data)
				}
				return Result[T]{Data: data, FromCache: true}, err
			}
		}
		var zero T
		return Result[T]{Data: zero}, err
	}

	c.cache.store(key, gen, raw)

	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		var zero T
		return Result[T]{Data: zero}, err
	}
	if opts.Normalizer != nil {
		data = opts.Normalizer(data)
	}
	return Result[T]{Data: data}, nil
}

// refresh revalidates one cache key in the background.
func (c *Client) refresh(ctx context.Context, endpoint, rawQuery, key string) {
	gen := c.cache.nextGen()
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, endpoint, rawQuery, nil, &raw, true); err != nil {
		if c.Logger != nil {
			c.Logger("refresh_failed", map[string]any{"endpoint": endpoint, "error": err.Error()})
		}
		return
	}
	c.cache.store(key, gen, raw)
}
