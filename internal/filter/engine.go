package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/nikolayk812/storefront-demo/internal/domain"
)

// Apply returns the products matching c in the order c asks for. The input
// is not modified and equal sort keys keep their catalog order.
func Apply(products []domain.Product, c Criteria) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(c.Query))
	category := strings.TrimSpace(c.Category)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if !c.Price.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}

	if cmpFn := comparator(c.Sort); cmpFn != nil {
		slices.SortStableFunc(out, cmpFn)
	}

	return out
}

func matchesQuery(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

func comparator(key SortKey) func(a, b domain.Product) int {
	switch key {
	case SortPriceAsc:
		return func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		}
	case SortPriceDesc:
		return func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		}
	case SortRating:
		return func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		}
	default:
		return nil
	}
}
