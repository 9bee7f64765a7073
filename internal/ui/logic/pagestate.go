package logic

import (
	"net/url"
	"strconv"
	"strings"

	"bookcat/internal/domain"
)

const (
	DefaultPageSize = 10
	DefaultWindow   = 2
)

// QueryParam is one key/value pair of a list request
type QueryParam struct {
	Key   string
	Value string
}

// Query is an ordered list of request parameters
type Query []QueryParam

// Encode renders the query in order. Values are escaped like
// encodeURIComponent, so spaces become %20.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(p.Key))
		b.WriteByte('=')
		b.WriteString(escape(p.Value))
	}
	return b.String()
}

// Get returns the value for key and whether it is present
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Keys returns the parameter names in order
func (q Query) Keys() []string {
	keys := make([]string, len(q))
	for i, p := range q {
		keys[i] = p.Key
	}
	return keys
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ComputeQuery builds the list request for a page: page and limit always,
// then each filter that is present. An empty search term is left out.
func ComputeQuery(page, pageSize int, filters FilterState) Query {
	q := Query{
		{Key: "page", Value: strconv.Itoa(page)},
		{Key: "limit", Value: strconv.Itoa(pageSize)},
	}
	if filters.SearchTerm != nil && *filters.SearchTerm != "" {
		q = append(q, QueryParam{Key: string(FilterSearchTerm), Value: *filters.SearchTerm})
	}
	if filters.StartYear != nil {
		q = append(q, QueryParam{Key: string(FilterStartYear), Value: strconv.Itoa(*filters.StartYear)})
	}
	if filters.EndYear != nil {
		q = append(q, QueryParam{Key: string(FilterEndYear), Value: strconv.Itoa(*filters.EndYear)})
	}
	return q
}

// ComputePageRange returns the page numbers to show as buttons:
// max(1, current-window) through min(totalPages, current+window).
// A single page needs no buttons, so totalPages <= 1 yields an empty range.
func ComputePageRange(currentPage, totalPages, window int) []int {
	if totalPages <= 1 {
		return []int{}
	}
	if window < 0 {
		window = 0
	}
	lo := max(1, currentPage-window)
	hi := min(totalPages, currentPage+window)
	if lo > hi {
		return []int{}
	}
	pages := make([]int, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		pages = append(pages, p)
	}
	return pages
}

// TotalPages is ceil(total/pageSize), never less than 1
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// PageStateOptions configures a PageState. Zero values select the defaults.
type PageStateOptions struct {
	PageSize int
	Window   int
	Filters  FilterState
}

// PageState tracks the page window and filters of one list.
// The current page always lies in [1, TotalPages()].
type PageState struct {
	page     int
	pageSize int
	total    int
	window   int
	filters  FilterState
}

// NewPageState creates a page state on page 1
func NewPageState(opts PageStateOptions) *PageState {
	ps := &PageState{
		page:     1,
		pageSize: opts.PageSize,
		window:   opts.Window,
		filters:  opts.Filters.Clone(),
	}
	if ps.pageSize <= 0 {
		ps.pageSize = DefaultPageSize
	}
	if ps.window <= 0 {
		ps.window = DefaultWindow
	}
	return ps
}

func (p *PageState) Page() int     { return p.page }
func (p *PageState) PageSize() int { return p.pageSize }
func (p *PageState) Total() int    { return p.total }
func (p *PageState) Window() int   { return p.window }

// TotalPages derives the page count from the total and the page size
func (p *PageState) TotalPages() int {
	return TotalPages(p.total, p.pageSize)
}

// Filters returns a copy of the active filters
func (p *PageState) Filters() FilterState {
	return p.filters.Clone()
}

// SetFilters merges the fields present in update into the active filters and
// returns to page 1. Fields left nil in update keep their current value.
func (p *PageState) SetFilters(update FilterState) {
	update = update.Clone()
	if update.SearchTerm != nil {
		p.filters.SearchTerm = update.SearchTerm
	}
	if update.StartYear != nil {
		p.filters.StartYear = update.StartYear
	}
	if update.EndYear != nil {
		p.filters.EndYear = update.EndYear
	}
	p.page = 1
}

// ClearFilters removes the named filters and returns to page 1.
// Calling it without keys changes nothing.
func (p *PageState) ClearFilters(keys ...FilterKey) {
	if len(keys) == 0 {
		return
	}
	for _, k := range keys {
		switch k {
		case FilterSearchTerm:
			p.filters.SearchTerm = nil
		case FilterStartYear:
			p.filters.StartYear = nil
		case FilterEndYear:
			p.filters.EndYear = nil
		}
	}
	p.page = 1
}

// ClearAllFilters removes every filter and returns to page 1
func (p *PageState) ClearAllFilters() {
	p.ClearFilters(FilterSearchTerm, FilterStartYear, FilterEndYear)
}

// Query builds the request for the current page
func (p *PageState) Query() Query {
	return ComputeQuery(p.page, p.pageSize, p.filters)
}

// QueryFor builds the request for page n, clamped into the known range
func (p *PageState) QueryFor(n int) Query {
	return ComputeQuery(p.ClampPage(n), p.pageSize, p.filters)
}

// PageRange returns the page buttons around the current page
func (p *PageState) PageRange() []int {
	return ComputePageRange(p.page, p.TotalPages(), p.window)
}

// ApplyPageResult adopts the pagination the server reported.
// The last result applied wins, whatever order the requests were sent in.
func (p *PageState) ApplyPageResult(meta domain.PageMeta) {
	p.total = max(0, meta.Total)
	if meta.Limit > 0 {
		p.pageSize = meta.Limit
	}
	p.page = p.ClampPage(meta.Page)
}

// ClampPage moves n into [1, TotalPages()]
func (p *PageState) ClampPage(n int) int {
	return min(max(n, 1), p.TotalPages())
}

// HasPrev reports whether a previous page exists
func (p *PageState) HasPrev() bool { return p.page > 1 }

// HasNext reports whether a next page exists
func (p *PageState) HasNext() bool { return p.page < p.TotalPages() }

// The navigation helpers return the page to request. They do not move the
// current page; that happens when the result is applied.

func (p *PageState) NextPage() int  { return p.ClampPage(p.page + 1) }
func (p *PageState) PrevPage() int  { return p.ClampPage(p.page - 1) }
func (p *PageState) FirstPage() int { return 1 }
func (p *PageState) LastPage() int  { return p.TotalPages() }

// GoToPage moves the current page to n, clamped, and returns it.
// Lists paginated client-side use it directly; remote lists request
// QueryFor(n) and apply the result instead.
func (p *PageState) GoToPage(n int) int {
	p.page = p.ClampPage(n)
	return p.page
}

// SetPageSize changes the page size and returns to page 1.
// Non-positive sizes are ignored and reported as false.
func (p *PageState) SetPageSize(n int) bool {
	if n <= 0 {
		return false
	}
	p.pageSize = n
	p.page = 1
	return true
}

// Bounds returns the slice bounds of the current page within n items
func (p *PageState) Bounds(n int) (from, to int) {
	from = min((p.page-1)*p.pageSize, n)
	to = min(from+p.pageSize, n)
	return from, to
}

// SynthesizeMeta builds pagination for a response that carried none.
// A full page suggests that another may follow, so the total is
// stretched by one item to keep the next page reachable.
func SynthesizeMeta(page, limit, itemCount int) domain.PageMeta {
	total := (page-1)*limit + itemCount
	if limit > 0 && itemCount == limit {
		total++
	}
	return domain.PageMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}
}
