package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wookrail/trainbooking/internal/domain"
)

func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := errStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Storage and other internal failures are reported generically.
		message = "internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}
