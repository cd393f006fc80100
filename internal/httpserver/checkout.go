package httpserver

import (
	"errors"
	"io"
	"net/http"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

// checkoutResponse pairs the wizard state with the cart summary.
type checkoutResponse struct {
	checkout.View
	Summary checkout.Summary `json:"summary"`
}

func respondCheckout(c *gin.Context, ctl *checkout.Controller, v checkout.View) {
	c.JSON(http.StatusOK, checkoutResponse{View: v, Summary: ctl.Summary()})
}

// writeCheckoutError answers with the error status but still includes the
// wizard state, so field errors and the current step reach the client.
func (h *handlers) writeCheckoutError(c *gin.Context, v checkout.View, err error) {
	var fields checkout.FieldErrors
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fields, "checkout": v})
	default:
		writeError(c, h.logger, err)
	}
}

func (h *handlers) beginCheckout(c *gin.Context) {
	var customer domain.Customer
	if err := c.ShouldBindJSON(&customer); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid request body")
		return
	}
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	v, err := s.Checkout.Begin(customer)
	if err != nil {
		h.writeCheckoutError(c, v, err)
		return
	}
	respondCheckout(c, s.Checkout, v)
}

func (h *handlers) getCheckout(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	respondCheckout(c, s.Checkout, s.Checkout.View())
}

func (h *handlers) updateDraft(c *gin.Context) {
	var req checkout.DraftUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	v, err := s.Checkout.UpdateDraft(req)
	if err != nil {
		h.writeCheckoutError(c, v, err)
		return
	}
	respondCheckout(c, s.Checkout, v)
}

func (h *handlers) nextStep(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	v, err := s.Checkout.Next()
	if err != nil {
		h.writeCheckoutError(c, v, err)
		return
	}
	respondCheckout(c, s.Checkout, v)
}

func (h *handlers) previousStep(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	v, err := s.Checkout.Back()
	if err != nil {
		h.writeCheckoutError(c, v, err)
		return
	}
	respondCheckout(c, s.Checkout, v)
}

func (h *handlers) placeOrder(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	v, err := s.Checkout.Place(c.Request.Context())
	if err != nil {
		h.writeCheckoutError(c, v, err)
		return
	}
	respondCheckout(c, s.Checkout, v)
}

func (h *handlers) checkoutSummary(c *gin.Context) {
	s := currentSession(c)
	s.Lock()
	defer s.Unlock()
	c.JSON(http.StatusOK, s.Checkout.Summary())
}
