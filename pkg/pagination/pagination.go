package pagination

import (
	"errors"
	"strconv"
	"strings"
)

// PageSize is the fixed number of products per catalog page.
const PageSize = 12

// FirstPage is the lowest page number.
const FirstPage = 1

// MaxPage is the highest addressable page. Offsets stay far inside int range.
const MaxPage = 10000

// Page is a 1-based page number paired with the size it was requested with.
type Page struct {
	Number int
	Size   int
}

// NewPage normalizes number to at least FirstPage and uses the catalog PageSize.
func NewPage(number int) Page {
	return Page{Number: NormalizePage(number), Size: PageSize}
}

// NormalizePage clamps page numbers into [FirstPage, MaxPage].
func NormalizePage(page int) int {
	switch {
	case page < FirstPage:
		return FirstPage
	case page > MaxPage:
		return MaxPage
	}
	return page
}

// ParsePage reads a page query value; blank or malformed values mean the first page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		// n holds the saturated value, so its sign picks the bound
		return NormalizePage(n)
	}
	if err != nil {
		return FirstPage
	}
	return NormalizePage(n)
}

// Offset is the number of rows to skip: (page-1) * size.
func (p Page) Offset() int {
	return (NormalizePage(p.Number) - 1) * p.Limit()
}

// Limit is the page size, defaulting to PageSize.
func (p Page) Limit() int {
	if p.Size <= 0 {
		return PageSize
	}
	return p.Size
}

// Next returns the following page. The last page is its own successor.
func (p Page) Next() Page {
	return Page{Number: NormalizePage(NormalizePage(p.Number) + 1), Size: p.Size}
}

// IsLast reports whether no page follows p.
func (p Page) IsLast() bool {
	return NormalizePage(p.Number) >= MaxPage
}
