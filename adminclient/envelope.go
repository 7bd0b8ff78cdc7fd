package adminclient

import "adminconsole/internal/query"

// Page is the standard list envelope returned by collection endpoints.
type Page[T any] struct {
	Items      []T              `json:"items"`
	Pagination query.Pagination `json:"pagination"`
}

// withFlag returns a copy of q with a boolean option set, leaving the
// caller's state and page selection untouched.
func withFlag(q query.State, key string) query.State {
	filters := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	q.Filters = filters
	page := q.Page
	q.SetFilter(key, "true")
	q.Page = page
	return q
}
