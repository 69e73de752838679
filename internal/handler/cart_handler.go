package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-demo/internal/cart"
	"github.com/nikolayk812/storefront-demo/internal/domain"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// CartIDHeader carries the shopper's cart id. Requests without it get a
// freshly minted id echoed back in the same header.
const CartIDHeader = "X-Cart-ID"

// CartHandler exposes a shopper's cart.
type CartHandler struct {
	carts   *cart.Registry
	catalog CatalogLoader
	logger  *log.Entry
}

func NewCartHandler(carts *cart.Registry, catalog CatalogLoader, logger *log.Entry) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, logger: logger}
}

type AddItemRequest struct {
	ProductID domain.ProductID `json:"productId" binding:"required"`
	// Delta defaults to one unit when omitted or zero.
	Delta int `json:"delta"`
}

type SetItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type cartItemResponse struct {
	ProductID domain.ProductID `json:"productId"`
	Quantity  int              `json:"quantity"`
	Name      string           `json:"name,omitempty"`
	Image     string           `json:"image,omitempty"`
	UnitPrice string           `json:"unitPrice,omitempty"`
	LineTotal string           `json:"lineTotal,omitempty"`
	// Available is false for lines whose product is not in the catalog.
	Available bool `json:"available"`
}

type cartResponse struct {
	CartID   string             `json:"cartId"`
	Items    []cartItemResponse `json:"items"`
	Count    int                `json:"count"`
	Currency string             `json:"currency,omitempty"`
	Subtotal string             `json:"subtotal,omitempty"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	shopperID, store, ok := h.openCart(c)
	if !ok {
		return
	}

	Success(c, http.StatusOK, "Cart retrieved", h.view(c, shopperID, store))
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	shopperID, store, ok := h.openCart(c)
	if !ok {
		return
	}

	if !h.requireProduct(c, req.ProductID) {
		return
	}

	store.Add(c.Request.Context(), req.ProductID, req.Delta)

	Success(c, http.StatusOK, "Cart updated", h.view(c, shopperID, store))
}

// SetItem handles PUT /api/v1/cart/items/:id
func (h *CartHandler) SetItem(c *gin.Context) {
	var req SetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	shopperID, store, ok := h.openCart(c)
	if !ok {
		return
	}

	id := domain.ProductID(c.Param("id"))
	// Stale lines can always be cleared, even after the product disappeared.
	if *req.Quantity > 0 && !h.requireProduct(c, id) {
		return
	}

	store.SetQuantity(c.Request.Context(), id, *req.Quantity)

	Success(c, http.StatusOK, "Cart updated", h.view(c, shopperID, store))
}

// RemoveItem handles DELETE /api/v1/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	shopperID, store, ok := h.openCart(c)
	if !ok {
		return
	}

	store.SetQuantity(c.Request.Context(), domain.ProductID(c.Param("id")), 0)

	Success(c, http.StatusOK, "Cart updated", h.view(c, shopperID, store))
}

func (h *CartHandler) openCart(c *gin.Context) (string, *cart.Store, bool) {
	shopperID := strings.TrimSpace(c.GetHeader(CartIDHeader))
	if shopperID == "" {
		shopperID = uuid.NewString()
	} else if _, err := uuid.Parse(shopperID); err != nil {
		Error(c, http.StatusBadRequest, "INVALID_CART_ID", CartIDHeader+" must be a UUID")
		return "", nil, false
	}
	c.Header(CartIDHeader, shopperID)

	store, err := h.carts.Cart(c.Request.Context(), shopperID)
	if err != nil {
		h.logger.WithError(err).Error("carts.Cart")
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to open cart")
		return "", nil, false
	}

	return shopperID, store, true
}

func (h *CartHandler) requireProduct(c *gin.Context, id domain.ProductID) bool {
	catalog, err := h.catalog.Load(c.Request.Context())
	if err != nil {
		Error(c, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", catalogUnavailableMessage)
		return false
	}

	if _, ok := catalog.Lookup(id); !ok {
		Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return false
	}

	return true
}

// view renders the cart. Without a catalog the lines and count are still
// shown but prices are left out.
func (h *CartHandler) view(c *gin.Context, shopperID string, store *cart.Store) cartResponse {
	catalog, err := h.catalog.Load(c.Request.Context())
	if err != nil {
		lines := store.Lines()
		resp := cartResponse{
			CartID: shopperID,
			Items:  make([]cartItemResponse, 0, len(lines)),
			Count:  store.Count(),
		}
		for _, line := range lines {
			resp.Items = append(resp.Items, cartItemResponse{ProductID: line.ProductID, Quantity: line.Quantity})
		}
		return resp
	}

	snapshot := store.Snapshot(shopperID, catalog)
	resp := cartResponse{
		CartID:   shopperID,
		Items:    make([]cartItemResponse, 0, len(snapshot.Lines)),
		Count:    snapshot.Count,
		Currency: catalog.Currency.String(),
		Subtotal: snapshot.Subtotal.Fixed(),
	}

	for _, line := range snapshot.Lines {
		item := cartItemResponse{ProductID: line.ProductID, Quantity: line.Quantity}
		if p, ok := catalog.Lookup(line.ProductID); ok {
			item.Name = p.Name
			item.Image = p.Image
			item.UnitPrice = domain.NewMoney(p.Price, catalog.Currency).Fixed()
			item.LineTotal = domain.NewMoney(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))), catalog.Currency).Fixed()
			item.Available = true
		}
		resp.Items = append(resp.Items, item)
	}

	return resp
}
