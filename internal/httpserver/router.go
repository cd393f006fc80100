package httpserver

import (
	"context"
	"net/http"
	"time"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// storefrontAPI is the part of the storefront API the handlers call directly.
type storefrontAPI interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListOrders(ctx context.Context) ([]map[string]any, error)
}

// Deps are the collaborators the router needs.
type Deps struct {
	Sessions *session.Manager
	// DB is pinged by /readyz; nil means the in-memory store is in use.
	DB pinger
	// API backs the product lookup fallback and GET /orders; nil disables both.
	API         storefrontAPI
	CORSOrigins []string
	Environment string
	SessionTTL  time.Duration
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps) *gin.Engine {
	if deps.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(customRecovery(logger), loggingMiddleware(logger))
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(corsConfig(deps.CORSOrigins)))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB))

	h := &handlers{sessions: deps.Sessions, api: deps.API, logger: logger}
	router.GET("/orders", h.listOrders)

	shop := router.Group("")
	shop.Use(sessionMiddleware(deps.Sessions, deps.SessionTTL))
	{
		shop.GET("/cart", h.getCart)
		shop.POST("/cart/items", h.addCartItem)
		shop.PUT("/cart/items/:id", h.setCartQuantity)
		shop.DELETE("/cart/items/:id", h.removeCartItem)
		shop.DELETE("/cart", h.clearCart)

		shop.GET("/products", h.listProducts)
		shop.GET("/products/selected", h.selectedProduct)
		shop.GET("/products/:id", h.getProduct)
		shop.POST("/products", h.createProduct)
		shop.PUT("/products/:serialId", h.updateProduct)
		shop.DELETE("/products/:serialId", h.deleteProduct)
		shop.POST("/products/refresh", h.refreshProducts)
		shop.GET("/categories", h.listCategories)

		shop.GET("/filters", h.getFilters)
		shop.PATCH("/filters", h.updateFilters)
		shop.PUT("/filters/search", h.setSearchTerm)
		shop.PUT("/filters/product-types", h.setProductTypes)
		shop.PUT("/filters/skin-types", h.setSkinTypes)

		shop.POST("/checkout", h.beginCheckout)
		shop.GET("/checkout", h.getCheckout)
		shop.PATCH("/checkout/draft", h.updateDraft)
		shop.POST("/checkout/next", h.nextStep)
		shop.POST("/checkout/back", h.previousStep)
		shop.POST("/checkout/place", h.placeOrder)
		shop.GET("/checkout/summary", h.checkoutSummary)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", sessionHeader},
		ExposeHeaders:    []string{sessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
