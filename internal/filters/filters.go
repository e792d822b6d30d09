// Package filters maps the product listing query string to a filter state and back.
//
// The URL is the source of truth: every mutation returns new query values and
// the caller navigates to them. Unknown parameters are carried through untouched.
package filters

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/exclusivefashions/storefront/pkg/enums"
	"github.com/exclusivefashions/storefront/pkg/pagination"
)

// Query parameter names.
const (
	ParamCategory = "category"
	ParamOnSale   = "on_sale"
	ParamIsNew    = "is_new"
	ParamSort     = "sort"
	ParamPage     = "page"
)

// flagOn is the only literal that enables a boolean filter.
const flagOn = "true"

// Flag names an independent boolean filter.
type Flag string

const (
	FlagOnSale Flag = ParamOnSale
	FlagIsNew  Flag = ParamIsNew
)

// State is the typed view of the listing query string.
type State struct {
	Category string
	OnSale   bool
	IsNew    bool
	Sort     enums.SortKey
	Page     int
}

// Signature identifies the filter combination a grid is accumulating for.
// Page is not part of it.
type Signature struct {
	Category string
	OnSale   bool
	IsNew    bool
	Sort     enums.SortKey
}

// String renders the signature for logs and cache keys.
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Category)
	b.WriteByte('|')
	if s.OnSale {
		b.WriteString("on_sale")
	}
	b.WriteByte('|')
	if s.IsNew {
		b.WriteString("is_new")
	}
	b.WriteByte('|')
	b.WriteString(s.Sort.String())
	return b.String()
}

// Parse reads the filter state from query values. Unknown sort values read as the default.
func Parse(q url.Values) State {
	return State{
		Category: strings.TrimSpace(q.Get(ParamCategory)),
		OnSale:   q.Get(ParamOnSale) == flagOn,
		IsNew:    q.Get(ParamIsNew) == flagOn,
		Sort:     enums.NormalizeSortKey(q.Get(ParamSort)),
		Page:     pagination.ParsePage(q.Get(ParamPage)),
	}
}

// Signature drops the page from the state.
func (s State) Signature() Signature {
	sort := s.Sort
	if !sort.IsValid() {
		sort = enums.DefaultSortKey
	}
	return Signature{Category: s.Category, OnSale: s.OnSale, IsNew: s.IsNew, Sort: sort}
}

// Values renders the canonical query for the state. Defaults are omitted.
func (s State) Values() url.Values {
	q := url.Values{}
	if s.Category != "" {
		q.Set(ParamCategory, s.Category)
	}
	if s.OnSale {
		q.Set(ParamOnSale, flagOn)
	}
	if s.IsNew {
		q.Set(ParamIsNew, flagOn)
	}
	if s.Sort.IsValid() && s.Sort != enums.DefaultSortKey {
		q.Set(ParamSort, s.Sort.String())
	}
	if s.Page > pagination.FirstPage {
		q.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return q
}

// HasActiveFilters reports whether any narrowing filter is set.
func (s State) HasActiveFilters() bool {
	return s.Category != "" || s.OnSale || s.IsNew
}

// ToggleCategory selects slug, or clears the category when slug is already selected.
// The page parameter is always removed.
func ToggleCategory(q url.Values, slug string) url.Values {
	out := clone(q)
	if strings.TrimSpace(out.Get(ParamCategory)) == strings.TrimSpace(slug) {
		out.Del(ParamCategory)
	} else {
		out.Set(ParamCategory, slug)
	}
	out.Del(ParamPage)
	return out
}

// ToggleFlag flips an independent boolean filter between "true" and absent.
// The page parameter is always removed.
func ToggleFlag(q url.Values, flag Flag) url.Values {
	out := clone(q)
	name := string(flag)
	if out.Get(name) == flagOn {
		out.Del(name)
	} else {
		out.Set(name, flagOn)
	}
	out.Del(ParamPage)
	return out
}

// SetSort writes one of the closed sort keys and removes the page parameter.
func SetSort(q url.Values, key enums.SortKey) url.Values {
	out := clone(q)
	if !key.IsValid() {
		key = enums.DefaultSortKey
	}
	out.Set(ParamSort, key.String())
	out.Del(ParamPage)
	return out
}

// ClearFilters removes category and boolean filters, keeping the sort.
func ClearFilters(q url.Values) url.Values {
	out := clone(q)
	out.Del(ParamCategory)
	out.Del(ParamOnSale)
	out.Del(ParamIsNew)
	out.Del(ParamPage)
	return out
}

// WithPage returns q pointing at page.
func WithPage(q url.Values, page int) url.Values {
	out := clone(q)
	out.Set(ParamPage, strconv.Itoa(pagination.NormalizePage(page)))
	return out
}

// Href joins path and the encoded query.
func Href(path string, q url.Values) string {
	encoded := q.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

func clone(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
