package handlers

import (
	"errors"
	"net/http"

	"github.com/geeked101/bus-book/internal/models"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to an HTTP response. Sentinel errors
// carry the status; anything unrecognized is a 500 with a generic message
// so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidRequest), errors.Is(err, models.ErrInvalidSeat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrBusNotFound), errors.Is(err, models.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrSeatAlreadyBooked), errors.Is(err, models.ErrAlreadyCancelled),
		errors.Is(err, models.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
