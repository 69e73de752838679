package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Product      *ProductHandler
	Cart         *CartHandler
	Consultation *ConsultationHandler
	Health       *HealthHandler
}

type RouterConfig struct {
	CheckoutURL    string
	AllowedOrigins []string
	// Gatherer backs /metrics; nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

func NewRouter(handlers Handlers, cfg RouterConfig, logger *log.Entry) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORS(cfg.AllowedOrigins))
	router.Use(RequestLogger(logger))

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router.GET("/healthz", handlers.Health.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// The checkout page is a stub outside this service.
	router.GET("/checkout", func(c *gin.Context) {
		c.Redirect(http.StatusFound, cfg.CheckoutURL)
	})

	api := router.Group("/api/v1")
	{
		api.GET("/products", handlers.Product.ListProducts)
		api.GET("/products/:id", handlers.Product.GetProduct)
		api.GET("/categories", handlers.Product.ListCategories)

		api.GET("/cart", handlers.Cart.GetCart)
		api.POST("/cart/items", handlers.Cart.AddItem)
		api.PUT("/cart/items/:id", handlers.Cart.SetItem)
		api.DELETE("/cart/items/:id", handlers.Cart.RemoveItem)

		api.POST("/consultations", handlers.Consultation.CreateConsultation)
	}

	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return router
}
