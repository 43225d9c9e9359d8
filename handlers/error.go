package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"guitartab-transcriber/internal/apierr"
)

// writeError maps an apierr.Error to its documented status code; any
// other error is treated as an internal failure.
func writeError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.HTTPStatus(), gin.H{"error": apiErr.Error()})
		return
	}
	c.JSON(500, gin.H{"error": err.Error()})
}
