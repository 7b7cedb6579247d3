package dashboard

// TicketsPerPage is the fixed number of tickets shown on one dashboard page.
const TicketsPerPage = 6

// Pager tracks the current page over a fixed-size-paged collection.
//
// Pages are 1-based. The pager never lands on a page that has no items:
// when the collection shrinks under the current page, the page is clamped
// down to the last page that still exists (page 1 when the collection is
// empty). Navigation past either end is ignored.
type Pager struct {
	pageSize int
	page     int
	total    int
}

// NewPager creates a pager positioned on page 1 of an empty collection.
func NewPager(pageSize int) Pager {
	return Pager{pageSize: pageSize, page: 1}
}

// SetTotal records a new collection size and clamps the current page.
func (p *Pager) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	if p.page > p.TotalPages() {
		p.page = p.TotalPages()
	}
}

// Reset moves back to page 1. Called after a fresh repository load.
func (p *Pager) Reset() {
	p.page = 1
}

// Page returns the current 1-based page number.
func (p Pager) Page() int {
	return p.page
}

// Total returns the collection size.
func (p Pager) Total() int {
	return p.total
}

// TotalPages returns the number of pages, always at least 1 so an empty
// collection still renders as "page 1 of 1".
func (p Pager) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

// Next advances one page, ignoring the request on the last page.
func (p *Pager) Next() {
	if p.page < p.TotalPages() {
		p.page++
	}
}

// Prev moves back one page, ignoring the request on page 1.
func (p *Pager) Prev() {
	if p.page > 1 {
		p.page--
	}
}

// GoTo jumps to the given page, ignoring out-of-range targets.
func (p *Pager) GoTo(page int) {
	if page >= 1 && page <= p.TotalPages() {
		p.page = page
	}
}

// Bounds returns the half-open index range [start, end) of the current
// page within the collection. Both are 0 when the collection is empty.
func (p Pager) Bounds() (start, end int) {
	start = (p.page - 1) * p.pageSize
	if start > p.total {
		start = p.total
	}
	end = start + p.pageSize
	if end > p.total {
		end = p.total
	}
	return start, end
}
