package httpserver

import (
	"net/http"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type handlers struct {
	sessions *session.Manager
	api      storefrontAPI
	logger   *zap.Logger
}

// addItemRequest names a catalog product by ProductID, or carries the line itself.
type addItemRequest struct {
	ProductID string           `json:"productId"`
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Price     *decimal.Decimal `json:"price"`
	Image     string           `json:"image"`
	Category  string           `json:"category"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=9999"`
}

func (h *handlers) getCart(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, s.Cart.State())
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	s := currentSession(c)
	s.Lock()
	defer s.Unlock()

	var item domain.CartItem
	if req.ProductID != "" {
		p, err := s.Catalog.Product(req.ProductID)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		item = p.CartItem()
	} else {
		if req.ID == "" || req.Name == "" || req.Price == nil || req.Price.IsNegative() {
			badRequest(c, "productId or id, name and a non-negative price are required")
			return
		}
		item = domain.CartItem{ID: req.ID, Name: req.Name, Price: *req.Price, Image: req.Image, Category: req.Category}
	}
	c.JSON(http.StatusOK, s.Cart.AddItem(c.Request.Context(), item))
}

func (h *handlers) setCartQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity is required and may not exceed 9999")
		return
	}
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, s.Cart.SetQuantity(c.Request.Context(), c.Param("id"), *req.Quantity))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, s.Cart.RemoveItem(c.Request.Context(), c.Param("id")))
}

func (h *handlers) clearCart(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, s.Cart.Clear(c.Request.Context()))
}
