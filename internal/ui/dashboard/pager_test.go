package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagerStartsOnPageOne(t *testing.T) {
	p := NewPager(TicketsPerPage)

	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 1, p.TotalPages())

	start, end := p.Bounds()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPagerTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		want  int
	}{
		{name: "empty", total: 0, want: 1},
		{name: "partial single page", total: 5, want: 1},
		{name: "exact single page", total: 6, want: 1},
		{name: "one over", total: 7, want: 2},
		{name: "exact multiple", total: 18, want: 3},
		{name: "partial last page", total: 20, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPager(TicketsPerPage)
			p.SetTotal(tt.total)
			assert.Equal(t, tt.want, p.TotalPages())
		})
	}
}

func TestPagerNavigationStaysInRange(t *testing.T) {
	p := NewPager(TicketsPerPage)
	p.SetTotal(20) // 4 pages

	p.Prev()
	assert.Equal(t, 1, p.Page(), "Prev on page 1 should be ignored")

	p.Next()
	p.Next()
	p.Next()
	assert.Equal(t, 4, p.Page())

	p.Next()
	assert.Equal(t, 4, p.Page(), "Next on the last page should be ignored")

	p.GoTo(0)
	assert.Equal(t, 4, p.Page())
	p.GoTo(5)
	assert.Equal(t, 4, p.Page())
	p.GoTo(2)
	assert.Equal(t, 2, p.Page())
}

func TestPagerClampsWhenCollectionShrinks(t *testing.T) {
	p := NewPager(TicketsPerPage)
	p.SetTotal(20)
	p.GoTo(4)

	p.SetTotal(13) // 3 pages now
	assert.Equal(t, 3, p.Page())

	p.SetTotal(3) // single page
	assert.Equal(t, 1, p.Page())

	p.SetTotal(0)
	assert.Equal(t, 1, p.Page())

	start, end := p.Bounds()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPagerBoundsOnPartialLastPage(t *testing.T) {
	p := NewPager(TicketsPerPage)
	p.SetTotal(20)
	p.GoTo(4)

	start, end := p.Bounds()
	assert.Equal(t, 18, start)
	assert.Equal(t, 20, end)
}

func TestPagerBoundsCoverCollectionExactlyOnce(t *testing.T) {
	for _, total := range []int{0, 1, 5, 6, 7, 12, 13, 20, 100} {
		p := NewPager(TicketsPerPage)
		p.SetTotal(total)

		covered := 0
		prevEnd := 0
		for page := 1; page <= p.TotalPages(); page++ {
			p.GoTo(page)
			start, end := p.Bounds()
			assert.Equal(t, prevEnd, start, "total=%d page=%d", total, page)
			assert.GreaterOrEqual(t, end, start)
			covered += end - start
			prevEnd = end
		}
		assert.Equal(t, total, covered, "pages should cover all %d items", total)
	}
}

func TestPagerResetReturnsToFirstPage(t *testing.T) {
	p := NewPager(TicketsPerPage)
	p.SetTotal(20)
	p.GoTo(3)

	p.Reset()
	assert.Equal(t, 1, p.Page())
}
