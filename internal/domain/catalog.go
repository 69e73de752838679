package domain

import (
	"fmt"
	"slices"

	"golang.org/x/text/currency"
)

// Catalog is the immutable product list of a session.
type Catalog struct {
	Currency currency.Unit

	products []Product
	index    map[ProductID]int
}

func NewCatalog(cur currency.Unit, products []Product) (Catalog, error) {
	index := make(map[ProductID]int, len(products))

	for i, p := range products {
		if p.ID == "" {
			return Catalog{}, fmt.Errorf("product[%d]: %w", i, ErrProductIDRequired)
		}
		if p.Price.IsNegative() {
			return Catalog{}, fmt.Errorf("product[%s]: %w", p.ID, ErrPriceNegative)
		}
		if _, ok := index[p.ID]; ok {
			return Catalog{}, fmt.Errorf("product[%s]: %w", p.ID, ErrDuplicateProductID)
		}
		index[p.ID] = i
	}

	return Catalog{
		Currency: cur,
		products: slices.Clone(products),
		index:    index,
	}, nil
}

// Products returns the catalog in its original order. The slice is a copy.
func (c Catalog) Products() []Product {
	return slices.Clone(c.products)
}

func (c Catalog) Len() int {
	return len(c.products)
}

func (c Catalog) Lookup(id ProductID) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Categories returns the distinct product categories in ascending order.
func (c Catalog) Categories() []string {
	seen := make(map[string]struct{}, len(c.products))
	out := []string{}

	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}

	slices.Sort(out)
	return out
}
