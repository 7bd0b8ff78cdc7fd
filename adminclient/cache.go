package adminclient

import (
	"encoding/json"
	"strings"
	"sync"
)

// queryCache stores raw JSON responses keyed by endpoint and encoded
// query string. Each stored value carries the generation of the request
// that produced it; a response from an older request never overwrites a
// newer one, so out-of-order completions cannot roll the cache back.
type queryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	gen     uint64

	subs    map[int]subscription
	nextSub int
}

type cacheEntry struct {
	data json.RawMessage
	gen  uint64
}

type subscription struct {
	prefix string
	fn     func()
}

func newQueryCache() *queryCache {
	return &queryCache{
		entries: map[string]cacheEntry{},
		subs:    map[int]subscription{},
	}
}

func cacheKey(endpoint, rawQuery string) string {
	if rawQuery == "" {
		return endpoint
	}
	return endpoint + "|" + rawQuery
}

// nextGen hands out a generation number for a request about to start.
func (qc *queryCache) nextGen() uint64 {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.gen++
	return qc.gen
}

func (qc *queryCache) get(key string) (json.RawMessage, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	e, ok := qc.entries[key]
	if !ok {
		return nil, false
	}
	return e.data, true
}

// store keeps data only if no newer request already wrote this key.
func (qc *queryCache) store(key string, gen uint64, data json.RawMessage) bool {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	if e, ok := qc.entries[key]; ok && e.gen > gen {
		return false
	}
	qc.entries[key] = cacheEntry{data: data, gen: gen}
	return true
}

// Invalidate drops entries whose endpoint starts with any prefix and
// fires matching subscriptions outside the lock.
func (qc *queryCache) Invalidate(prefixes ...string) {
	qc.mu.Lock()
	for key := range qc.entries {
		endpoint := key
		if i := strings.IndexByte(key, '|'); i >= 0 {
			endpoint = key[:i]
		}
		for _, p := range prefixes {
			if strings.HasPrefix(endpoint, p) {
				delete(qc.entries, key)
				break
			}
		}
	}
	var fire []func()
	for _, s := range qc.subs {
		for _, p := range prefixes {
			if strings.HasPrefix(s.prefix, p) || strings.HasPrefix(p, s.prefix) {
				fire = append(fire, s.fn)
				break
			}
		}
	}
	qc.mu.Unlock()

	for _, fn := range fire {
		fn()
	}
}

func (qc *queryCache) Subscribe(prefix string, fn func()) func() {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	id := qc.nextSub
	qc.nextSub++
	qc.subs[id] = subscription{prefix: prefix, fn: fn}
	return func() {
		qc.mu.Lock()
		defer qc.mu.Unlock()
		delete(qc.subs, id)
	}
}
