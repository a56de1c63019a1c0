package message

import (
	"net/http"

	"whispr/feedback-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Suggest asks the completion backend for candidate anonymous messages
// a sender can pick from.
func Suggest(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	suggestions, err := d.Suggest.Suggest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error generating suggestions",
		})

		zap.L().Error("Failed to fetch suggestions", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": suggestions,
	})
}
