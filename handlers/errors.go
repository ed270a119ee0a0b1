package handlers

import (
	"MediCoreHMS/utils"
	"errors"

	"github.com/gin-gonic/gin"
)

// respondError maps service error kinds to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrValidation):
		c.JSON(400, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrConflict):
		c.JSON(409, gin.H{"error": err.Error()})
	default:
		c.JSON(500, gin.H{"error": err.Error()})
	}
}
