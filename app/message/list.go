package message

import (
	"net/http"

	"whispr/feedback-api/db"
	"whispr/feedback-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// List returns the caller's messages, newest first. A user without
// messages gets an empty list, not an error.
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	ctx := c.Request.Context()

	if _, err := d.DB.FindByID(ctx, userID); err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching messages",
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	msgs, err := d.DB.MessagesSortedDesc(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching messages",
		})

		zap.L().Error("Failed to fetch messages", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": msgs,
	})
}
