package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virajdomadia/E-Commerce-backend/internal/service"
	"github.com/virajdomadia/E-Commerce-backend/internal/store"
)

// fail maps a service error to a response. Domain faults get their own
// status and message; anything else is logged and surfaced as a generic
// 500 with the route's fixed fallback message.
func (s *Server) fail(c *gin.Context, err error, fallback string) {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, service.ErrInvalidInput),
		errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		s.log.WithError(err).WithField("path", c.Request.URL.Path).Error("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}
