package query

// Pagination is the metadata block attached to every list response.
// Pages are 1-indexed and current_page never exceeds max(total_pages, 1).
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
	NextNum     *int  `json:"next_num"`
	PrevNum     *int  `json:"prev_num"`
}

// NewPagination computes the metadata for a list of totalItems rows viewed
// at the given page and page size. Out-of-range pages clamp into the valid
// window.
func NewPagination(totalItems int64, page, perPage int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}
	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}
	p := Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1 && totalPages > 0,
	}
	if p.HasNext {
		n := page + 1
		p.NextNum = &n
	}
	if p.HasPrev {
		n := page - 1
		p.PrevNum = &n
	}
	return p
}

// Window returns the 1-indexed display range for a page holding rowsOnPage
// rows: "Showing {start} to {end} of {TotalItems}". An empty result set
// yields (0, 0).
func (p Pagination) Window(rowsOnPage int) (start, end int64) {
	if p.TotalItems == 0 || rowsOnPage <= 0 {
		return 0, 0
	}
	start = int64(p.CurrentPage-1)*int64(p.PerPage) + 1
	end = start + int64(rowsOnPage) - 1
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return start, end
}
