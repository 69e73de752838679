package filter

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
)

// ParseSortKey maps unknown or empty keys to SortFeatured.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case SortPriceAsc, SortPriceDesc, SortRating:
		return k
	default:
		return SortFeatured
	}
}

// PriceRange is an inclusive price interval; a nil bound is open.
type PriceRange struct {
	Lo *decimal.Decimal
	Hi *decimal.Decimal
}

func (r PriceRange) Contains(price decimal.Decimal) bool {
	if r.Lo != nil && price.LessThan(*r.Lo) {
		return false
	}
	if r.Hi != nil && price.GreaterThan(*r.Hi) {
		return false
	}
	return true
}

func (r PriceRange) IsZero() bool {
	return r.Lo == nil && r.Hi == nil
}

// ParsePriceRange reads "lo-hi", "lo-", "-hi" or a lone "lo". A bound that
// does not parse as a finite number is left open.
func ParsePriceRange(s string) PriceRange {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriceRange{}
	}

	lo, hi, _ := strings.Cut(s, "-")

	return PriceRange{
		Lo: parseBound(lo),
		Hi: parseBound(hi),
	}
}

func parseBound(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

type Criteria struct {
	// Category must match exactly; empty means every category.
	Category string
	// Query is matched case-insensitively against name and category.
	Query string
	Price PriceRange
	Sort  SortKey
}

// FromValues reads criteria from URL query parameters cat, q, price and sort.
func FromValues(v url.Values) Criteria {
	return Criteria{
		Category: strings.TrimSpace(v.Get("cat")),
		Query:    strings.TrimSpace(v.Get("q")),
		Price:    ParsePriceRange(v.Get("price")),
		Sort:     ParseSortKey(v.Get("sort")),
	}
}
