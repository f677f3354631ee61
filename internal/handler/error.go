package handler

import (
	"errors"
	"net/http"

	"ojt-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Storage failures fall through as 500 with the message passed verbatim.
func writeServiceError(c *gin.Context, err error) {
	var quota *service.QuotaError
	var provider *service.ProviderError

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateDate), errors.Is(err, service.ErrDuplicateWeek):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &quota):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "remaining": quota.Remaining})
	case errors.Is(err, service.ErrNothingToSummarize):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &provider):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "provider": provider.Provider})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
