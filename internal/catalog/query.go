package catalog

import (
	"strings"

	"github.com/exclusivefashions/storefront/pkg/enums"
	"github.com/exclusivefashions/storefront/pkg/pagination"
)

// ListInput is the listing request as read from the query string.
type ListInput struct {
	Page     int
	Category string
	OnSale   bool
	IsNew    bool
	Sort     enums.SortKey
}

// Query is the resolved, storage-agnostic description of one catalog page.
type Query struct {
	CategorySlug string
	OnSaleOnly   bool
	NewOnly      bool
	Order        enums.SortOrder
	Limit        int
	Offset       int
}

// BuildQuery resolves input into a page query. Pages below one read as the first
// page and unknown sort keys order by newest.
func BuildQuery(input ListInput) Query {
	page := pagination.NewPage(input.Page)
	return Query{
		CategorySlug: strings.TrimSpace(input.Category),
		OnSaleOnly:   input.OnSale,
		NewOnly:      input.IsNew,
		Order:        input.Sort.Order(),
		Limit:        page.Limit(),
		Offset:       page.Offset(),
	}
}

// PageNumber reports the 1-based page the query addresses.
func (q Query) PageNumber() int {
	if q.Limit <= 0 {
		return pagination.FirstPage
	}
	return q.Offset/q.Limit + 1
}
