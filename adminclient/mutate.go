package adminclient

import "context"

// Mutation describes one write operation. Writes run exactly once; a
// failed write is never retried automatically. On success OnSuccess runs
// first, then the configured cache prefixes are invalidated so the next
// read refetches.
type Mutation[Req, Resp any] struct {
	Client *Client
	Method string

	// Path builds the request path from the input, so one Mutation can
	// serve parameterized routes like /app/roles/:id.
	Path func(Req) string

	// InvalidateKeys are endpoint prefixes dropped from the cache after
	// a successful write.
	InvalidateKeys []string

	OnSuccess func(Resp)
	OnError   func(error)
}

// Do executes the mutation.
func (m Mutation[Req, Resp]) Do(ctx context.Context, req Req) (Resp, error) {
	var resp Resp
	var body any = req
	if isEmptyBody(req) {
		body = nil
	}
	err := m.Client.doJSON(ctx, m.Method, m.Path(req), "", body, &resp, false)
	if err != nil {
		if m.OnError != nil {
			m.OnError(err)
		}
		return resp, err
	}

	if m.OnSuccess != nil {
		m.OnSuccess(resp)
	}
	if len(m.InvalidateKeys) > 0 {
		m.Client.Invalidate(m.InvalidateKeys...)
	}
	return resp, nil
}

func isEmptyBody(v any) bool {
	switch v.(type) {
	case nil, struct{}, *struct{}:
		return true
	}
	return false
}
