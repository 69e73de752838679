package port

import (
	"context"

	"github.com/nikolayk812/storefront-demo/internal/domain"
)

type ProductRepository interface {
	// ListProducts returns every product ordered by name ascending.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type ConsultationRepository interface {
	Submit(ctx context.Context, c domain.Consultation) (domain.Consultation, error)
}
