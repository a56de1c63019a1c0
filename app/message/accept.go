package message

import (
	"net/http"

	"whispr/feedback-api/db"
	"whispr/feedback-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type acceptBody struct {
	AcceptMessages *bool `json:"acceptMessages" binding:"required"`
}

// AcceptStatus returns the caller's accept-messages flag.
func AcceptStatus(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	u, err := d.DB.FindByID(c.Request.Context(), userID)
	if err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching message acceptance status",
		})

		zap.L().Error("Failed to fetch accept-messages flag", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "User status fetched successfully",
		"isAcceptingMessages": u.IsAcceptingMessages,
	})
}

// SetAcceptStatus flips the caller's accept-messages flag. While the
// flag is false every intake attempt against the account is rejected.
func SetAcceptStatus(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data acceptBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "acceptMessages field is required",
		})
		return
	}

	u, err := d.DB.SetAcceptingMessages(c.Request.Context(), userID, *data.AcceptMessages)
	if err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error updating message acceptance status",
		})

		zap.L().Error("Failed to update accept-messages flag", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "User status updated successfully",
		"updatedUser": u,
	})
}
