package handler

import (
	"errors"
	"log"
	"net/http"

	"civicgrid/backend/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps the core error taxonomy onto HTTP statuses. Scope
// violations arrive as not-found and stay that way on the wire.
func respondError(c *gin.Context, err error) {
	var validation *apperr.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validation.Error()})
		return
	}

	var notFound *apperr.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": notFound.Error()})
		return
	}

	var conflict *apperr.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"success":       false,
			"error":         conflict.Message,
			"currentStatus": conflict.CurrentStatus,
		})
		return
	}

	log.Printf("ERROR: Internal failure: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
}
