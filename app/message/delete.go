package message

import (
	"net/http"

	"whispr/feedback-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Delete removes a single message from the caller's own collection.
// The pull is scoped to the session user, so nobody can delete across
// accounts by guessing message ids.
func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	messageID := c.Param("id")
	if messageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Message ID is missing",
		})
		return
	}

	removed, err := d.DB.RemoveMessage(c.Request.Context(), userID, messageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error deleting message",
		})

		zap.L().Error("Failed to delete message", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !removed {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Message not found or already deleted",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message deleted",
	})
}
