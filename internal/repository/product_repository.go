package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-demo/internal/db"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/port"
)

// PlaceholderImage is used for remote products stored without an image.
const PlaceholderImage = "./assets/product-tee.svg"

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	return mapListProductsRowsToDomain(rows), nil
}

func mapListProductsRowToDomain(row db.ListProductsRow) domain.Product {
	p := domain.Product{
		ID:          domain.ProductID(row.ID),
		Name:        row.Name,
		Category:    row.Category,
		Price:       row.Price,
		Rating:      row.Rating,
		ReviewCount: int(row.Reviews),
		Badge:       row.Badge,
		Image:       row.Image,
		Description: row.Description,
	}

	if p.Image == "" {
		p.Image = PlaceholderImage
	}
	if row.DiscountPct.Valid && row.DiscountPct.Decimal.IsPositive() {
		p.DiscountPercent = row.DiscountPct
	}

	return p
}

func mapListProductsRowsToDomain(rows []db.ListProductsRow) []domain.Product {
	items := make([]domain.Product, 0, len(rows))

	for _, row := range rows {
		items = append(items, mapListProductsRowToDomain(row))
	}

	return items
}
