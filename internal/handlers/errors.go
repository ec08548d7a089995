// =============================================================================
// FILE: internal/handlers/errors.go
// PURPOSE: Shared request parsing and error-to-status mapping
// =============================================================================

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"videos-api/internal/models"
	"videos-api/internal/services"
)

// parseID reads the :id path parameter; on failure it writes a 400 and returns false
func parseID(c *gin.Context, resource string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + resource + " ID - must be a number",
		})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into req; on failure it writes a 400 and returns false
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// writeError maps service errors onto status codes.
// Unknown errors are logged with the request logger and answered with a
// generic body; fallback is the message clients see in that case.
func writeError(c *gin.Context, err error, fallback string) {
	var validationErr *models.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": validationErr.Fields,
		})

	case errors.Is(err, services.ErrCategoryDoesNotExist):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": services.ErrCategoryDoesNotExist.Error(),
		})

	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrVideoNotFound),
		errors.Is(err, services.ErrNoVideosFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})

	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg(fallback)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fallback,
		})
	}
}
