package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/nikolayk812/storefront-demo/internal/filter"
	log "github.com/sirupsen/logrus"
)

const catalogUnavailableMessage = "Failed to load products. Please refresh."

// CatalogLoader is satisfied by *catalog.Store.
type CatalogLoader interface {
	Load(ctx context.Context) (domain.Catalog, error)
}

// ProductHandler serves the product grid.
type ProductHandler struct {
	catalog  CatalogLoader
	discount domain.DiscountPolicy
	logger   *log.Entry
}

func NewProductHandler(catalog CatalogLoader, discount domain.DiscountPolicy, logger *log.Entry) *ProductHandler {
	return &ProductHandler{catalog: catalog, discount: discount, logger: logger}
}

type productResponse struct {
	ID          domain.ProductID `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Currency    string           `json:"currency"`
	Price       string           `json:"price"`
	DiscountPct string           `json:"discountPct"`
	CompareAt   string           `json:"compareAt,omitempty"`
	Savings     string           `json:"savings"`
	Rating      float64          `json:"rating"`
	Reviews     int              `json:"reviews"`
	Badge       string           `json:"badge,omitempty"`
	Image       string           `json:"image,omitempty"`
	Description string           `json:"description,omitempty"`
}

type productListResponse struct {
	Items []productResponse `json:"items"`
	Total int               `json:"total"`
	// Filters echoes the raw parameters so a page can restore its controls.
	Filters filtersResponse `json:"filters"`
}

type filtersResponse struct {
	Category string `json:"cat"`
	Sort     string `json:"sort"`
	Price    string `json:"price"`
	Query    string `json:"q"`
}

// ListProducts handles GET /api/v1/products?cat=&sort=&price=&q=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	catalog, ok := h.loadCatalog(c)
	if !ok {
		return
	}

	criteria := filter.FromValues(c.Request.URL.Query())
	products := filter.Apply(catalog.Products(), criteria)

	items := make([]productResponse, 0, len(products))
	for _, p := range products {
		items = append(items, h.toResponse(p, catalog))
	}

	Success(c, http.StatusOK, "Products retrieved", productListResponse{
		Items: items,
		Total: len(items),
		Filters: filtersResponse{
			Category: criteria.Category,
			Sort:     string(criteria.Sort),
			Price:    c.Query("price"),
			Query:    criteria.Query,
		},
	})
}

// GetProduct handles GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	catalog, ok := h.loadCatalog(c)
	if !ok {
		return
	}

	p, found := catalog.Lookup(domain.ProductID(c.Param("id")))
	if !found {
		Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	Success(c, http.StatusOK, "Product retrieved", h.toResponse(p, catalog))
}

// ListCategories handles GET /api/v1/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	catalog, ok := h.loadCatalog(c)
	if !ok {
		return
	}

	Success(c, http.StatusOK, "Categories retrieved", catalog.Categories())
}

func (h *ProductHandler) loadCatalog(c *gin.Context) (domain.Catalog, bool) {
	catalog, err := h.catalog.Load(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Warn("catalog is unavailable")
		Error(c, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", catalogUnavailableMessage)
		return domain.Catalog{}, false
	}
	return catalog, true
}

func (h *ProductHandler) toResponse(p domain.Product, catalog domain.Catalog) productResponse {
	pricing := h.discount.Pricing(p, catalog.Currency)

	resp := productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Currency:    catalog.Currency.String(),
		Price:       pricing.Price.Fixed(),
		DiscountPct: pricing.DiscountPercent.String(),
		Savings:     pricing.Savings.Fixed(),
		Rating:      p.Rating,
		Reviews:     p.ReviewCount,
		Badge:       p.Badge,
		Image:       p.Image,
		Description: p.Description,
	}
	if pricing.CompareAt != nil {
		resp.CompareAt = pricing.CompareAt.Fixed()
	}

	return resp
}
