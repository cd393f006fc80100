package httpserver

import (
	"errors"
	"net/http"

	"skincare-storefront/internal/apiclient"
	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/service/checkout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

// writeError maps domain and upstream errors to HTTP responses.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var fields checkout.FieldErrors
	var status *apiclient.StatusError
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: fields})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.As(err, &status):
		logger.Warn("upstream api error", zap.Int("upstream_status", status.Code), zap.Error(err))
		c.JSON(http.StatusBadGateway, errorResponse{Error: "storefront api unavailable"})
	default:
		logger.Warn("upstream request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, errorResponse{Error: "storefront api unavailable"})
	}
}
