package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/storefront-demo/internal/catalog"
)

// CatalogStater is satisfied by *catalog.Store.
type CatalogStater interface {
	State() catalog.State
}

// HealthHandler provides the health endpoint.
type HealthHandler struct {
	catalog          CatalogStater
	remoteConfigured bool
	started          time.Time
}

func NewHealthHandler(catalog CatalogStater, remoteConfigured bool) *HealthHandler {
	return &HealthHandler{catalog: catalog, remoteConfigured: remoteConfigured, started: time.Now()}
}

// GetHealth reports the service as degraded once the catalog has failed to
// load; the cart keeps working, so the status code stays 200.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	state := h.catalog.State()

	status := "healthy"
	if state == catalog.StateFailed {
		status = "degraded"
	}

	Success(c, http.StatusOK, "Service is "+status, gin.H{
		"status":  status,
		"uptime":  int(time.Since(h.started).Seconds()),
		"catalog": state.String(),
		"remote":  h.remoteConfigured,
	})
}
