package handlers

import (
	"net/http"
	"strconv"

	"food-marketplace-api/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a classified error onto its HTTP status. Anything
// unclassified is logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	if kind == errs.KindUnknown {
		zap.L().Error("unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(kind.HTTPStatus(), gin.H{
		"error": err.Error(),
		"kind":  kind.String(),
	})
}

// parseID reads a numeric path parameter. Non-numeric identifiers are a
// validation failure, not a lookup miss.
func parseID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errs.Validation("invalid %s: %q is not a numeric identifier", name, raw)
	}
	return uint(id), nil
}
