package enums

import "fmt"

// SortKey is the closed set of listing orderings exposed in the `sort` query parameter.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// DefaultSortKey applies when the parameter is absent or unrecognised.
const DefaultSortKey = SortNewest

var validSortKeys = []SortKey{
	SortNewest,
	SortPriceAsc,
	SortPriceDesc,
}

// SortDirection is the SQL ordering direction.
type SortDirection string

const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// SortOrder pairs a products column with its direction.
type SortOrder struct {
	Field     string
	Direction SortDirection
}

var sortOrders = map[SortKey]SortOrder{
	SortNewest:    {Field: "created_at", Direction: SortDescending},
	SortPriceAsc:  {Field: "price_ttd", Direction: SortAscending},
	SortPriceDesc: {Field: "price_ttd", Direction: SortDescending},
}

// SortKeys lists the keys in display order.
func SortKeys() []SortKey {
	out := make([]SortKey, len(validSortKeys))
	copy(out, validSortKeys)
	return out
}

func (s SortKey) String() string {
	return string(s)
}

// Label is the human readable option text.
func (s SortKey) Label() string {
	switch s {
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	default:
		return "Newest"
	}
}

func (s SortKey) IsValid() bool {
	_, ok := sortOrders[s]
	return ok
}

// Order maps every key, valid or not, to a concrete ordering. Unknown keys order as newest.
func (s SortKey) Order() SortOrder {
	if order, ok := sortOrders[s]; ok {
		return order
	}
	return sortOrders[DefaultSortKey]
}

// ParseSortKey converts raw input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// NormalizeSortKey returns the matching key or the default.
func NormalizeSortKey(value string) SortKey {
	if key, err := ParseSortKey(value); err == nil {
		return key
	}
	return DefaultSortKey
}
