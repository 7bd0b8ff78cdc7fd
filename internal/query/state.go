// Package query owns the canonical shape of list-view query state and its
// two-way binding to a URL query string. The query string is the source of
// truth: callers re-derive State from it rather than the other way around,
// so filtered views stay shareable and browser-style navigation works.
package query

import (
	"net/url"
	"strconv"
)

// Defaults applied when a parameter is absent or unparseable.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// Reserved parameter names. Anything else parses into Filters.
const (
	ParamPage      = "page"
	ParamPerPage   = "per_page"
	ParamSearch    = "search"
	ParamSortBy    = "sort_by"
	ParamSortOrder = "sort_order"
)

// Sort directions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// State is the canonical list-view query state.
type State struct {
	Search    string
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
	Filters   map[string]string
}

// New returns a State holding only defaults.
func New() State {
	return State{Page: DefaultPage, PerPage: DefaultPerPage}
}

// Parse derives a State from URL query values. Unparseable or
// non-positive numerics fall back to defaults. Unknown sort fields pass
// through opaquely; validating them is the backend's concern.
func Parse(v url.Values) State {
	s := New()
	if v == nil {
		return s
	}
	if n, err := strconv.Atoi(v.Get(ParamPage)); err == nil && n >= 1 {
		s.Page = n
	}
	if n, err := strconv.Atoi(v.Get(ParamPerPage)); err == nil && n > 0 {
		s.PerPage = n
	}
	s.Search = v.Get(ParamSearch)
	s.SortBy = v.Get(ParamSortBy)
	if o := v.Get(ParamSortOrder); o == OrderAsc || o == OrderDesc {
		s.SortOrder = o
	}
	for key, vals := range v {
		switch key {
		case ParamPage, ParamPerPage, ParamSearch, ParamSortBy, ParamSortOrder:
			continue
		}
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		if s.Filters == nil {
			s.Filters = map[string]string{}
		}
		s.Filters[key] = vals[0]
	}
	return s
}

// ParseQuery is Parse over a raw query string. A malformed string yields
// the default State.
func ParseQuery(raw string) State {
	v, err := url.ParseQuery(raw)
	if err != nil {
		return New()
	}
	return Parse(v)
}

// Values serializes the State, omitting empty keys. Page and per_page are
// always present so a copied URL pins the view it came from.
func (s State) Values() url.Values {
	v := url.Values{}
	v.Set(ParamPage, strconv.Itoa(s.normPage()))
	v.Set(ParamPerPage, strconv.Itoa(s.normPerPage()))
	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}
	if s.SortBy != "" {
		v.Set(ParamSortBy, s.SortBy)
	}
	if s.SortOrder != "" {
		v.Set(ParamSortOrder, s.SortOrder)
	}
	for key, val := range s.Filters {
		if val != "" {
			v.Set(key, val)
		}
	}
	return v
}

// Encode returns the deterministic (key-sorted) query-string form.
func (s State) Encode() string {
	return s.Values().Encode()
}

func (s State) normPage() int {
	if s.Page < 1 {
		return DefaultPage
	}
	return s.Page
}

func (s State) normPerPage() int {
	if s.PerPage <= 0 {
		return DefaultPerPage
	}
	return s.PerPage
}

// SetPage moves to page n. Values below 1 clamp to 1.
func (s *State) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.Page = n
}

// SetPerPage changes the page size and resets to the first page.
func (s *State) SetPerPage(n int) {
	if n <= 0 {
		n = DefaultPerPage
	}
	s.PerPage = n
	s.Page = 1
}

// SetSearch replaces the search text and resets to the first page.
func (s *State) SetSearch(text string) {
	s.Search = text
	s.Page = 1
}

// SetSort replaces the sort field/direction and resets to the first page.
func (s *State) SetSort(field, order string) {
	s.SortBy = field
	if order != OrderAsc && order != OrderDesc {
		order = ""
	}
	s.SortOrder = order
	s.Page = 1
}

// SetFilter sets a free-form filter and resets to the first page. An empty
// value removes the filter.
func (s *State) SetFilter(key, value string) {
	if value == "" {
		delete(s.Filters, key)
	} else {
		if s.Filters == nil {
			s.Filters = map[string]string{}
		}
		s.Filters[key] = value
	}
	s.Page = 1
}

// Filter returns the named free-form filter value, or "".
func (s State) Filter(key string) string {
	return s.Filters[key]
}

// Reset restores all defaults, dropping search, sort, and filters.
func (s *State) Reset() {
	*s = New()
}

// Offset is the zero-based row offset for the current page.
func (s State) Offset() int {
	return (s.normPage() - 1) * s.normPerPage()
}

// Limit is the effective page size.
func (s State) Limit() int {
	return s.normPerPage()
}
