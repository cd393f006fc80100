package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type productsResponse struct {
	Products []domain.Product      `json:"products"`
	Count    int                   `json:"count"`
	Total    int                   `json:"total"`
	Criteria domain.FilterCriteria `json:"criteria"`
}

// refreshFailure carries the catalog view that survived a failed refresh.
type refreshFailure struct {
	Error   string           `json:"error"`
	Catalog productsResponse `json:"catalog"`
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type tagsRequest struct {
	Tags []string `json:"tags"`
}

func view(store *catalog.Store, filtered []domain.Product) productsResponse {
	return productsResponse{
		Products: filtered,
		Count:    len(filtered),
		Total:    len(store.Products()),
		Criteria: store.Criteria(),
	}
}

func (h *handlers) listProducts(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, view(s.Catalog, s.Catalog.Filtered()))
}

// getProduct selects a product for viewing. Products missing from the session
// catalog are looked up on the API and added to it.
func (h *handlers) getProduct(c *gin.Context) {
	id := c.Param("id")
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	p, err := s.Catalog.Select(id)
	if errors.Is(err, domain.ErrNotFound) && h.api != nil {
		var fetched *domain.Product
		fetched, err = h.api.GetProduct(c.Request.Context(), id)
		if err == nil {
			p, err = s.Catalog.Select(s.Catalog.UpsertProduct(*fetched).ID)
		}
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) selectedProduct(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	p, ok := s.Catalog.Selected()
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "no product selected"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) createProduct(c *gin.Context) {
	p, ok := bindProduct(c)
	if !ok {
		return
	}
	p.SerialID = 0
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusCreated, s.Catalog.UpsertProduct(p))
}

func (h *handlers) updateProduct(c *gin.Context) {
	serialID, ok := serialParam(c)
	if !ok {
		return
	}
	p, ok := bindProduct(c)
	if !ok {
		return
	}
	p.SerialID = serialID
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, s.Catalog.UpsertProduct(p))
}

func (h *handlers) deleteProduct(c *gin.Context) {
	serialID, ok := serialParam(c)
	if !ok {
		return
	}
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	if !s.Catalog.DeleteProduct(serialID) {
		writeError(c, h.logger, domain.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindProduct(c *gin.Context) (domain.Product, bool) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid request body")
		return p, false
	}
	if p.Name == "" || p.Price.IsNegative() || p.Stock < 0 {
		badRequest(c, "product_name is required and price and stock may not be negative")
		return p, false
	}
	return p, true
}

func serialParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("serialId"), 10, 64)
	if err != nil || id < 1 {
		badRequest(c, "serialId must be a positive integer")
		return 0, false
	}
	return id, true
}

// refreshProducts refetches the catalog. On failure the current view is kept
// and returned alongside the error.
func (h *handlers) refreshProducts(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	filtered, err := s.Catalog.Refresh(c.Request.Context(), h.sessions.Source())
	if err != nil {
		c.JSON(http.StatusBadGateway, refreshFailure{
			Error:   "storefront api unavailable",
			Catalog: view(s.Catalog, filtered),
		})
		return
	}
	c.JSON(http.StatusOK, view(s.Catalog, filtered))
}

func (h *handlers) listOrders(c *gin.Context) {
	if h.api == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "storefront api not configured"})
		return
	}
	orders, err := h.api.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if orders == nil {
		orders = []map[string]any{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

func (h *handlers) listCategories(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, gin.H{"categories": s.Catalog.Categories()})
}

func (h *handlers) getFilters(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, s.Catalog.Criteria())
}

func (h *handlers) updateFilters(c *gin.Context) {
	var req domain.FilterUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.SortBy != nil && !domain.IsSortOrder(*req.SortBy) {
		badRequest(c, "unknown sortBy")
		return
	}
	if req.PriceRange != nil && req.PriceRange.Min().GreaterThan(req.PriceRange.Max()) {
		badRequest(c, "priceRange minimum exceeds maximum")
		return
	}
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, view(s.Catalog, s.Catalog.SetFilters(req)))
}

func (h *handlers) setSearchTerm(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, view(s.Catalog, s.Catalog.SetSearchTerm(req.SearchTerm)))
}

func (h *handlers) setProductTypes(c *gin.Context) {
	var req tagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, view(s.Catalog, s.Catalog.SetProductTypeTags(req.Tags)))
}

func (h *handlers) setSkinTypes(c *gin.Context) {
	var req tagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, view(s.Catalog, s.Catalog.SetSkinTypeTags(req.Tags)))
}
