// Package message contains the anonymous message handlers: intake,
// listing, deletion, the accept-messages gate and AI suggestions.
package message

import (
	"net/http"

	"whispr/feedback-api/db"
	"whispr/feedback-api/internal"
	"whispr/feedback-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type sendBody struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// Send appends an anonymous message to the target user. No sender
// identity is recorded anywhere, and intake is gated only by the
// target's accept-messages flag.
func Send(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data sendBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ctx := c.Request.Context()

	u, err := d.DB.FindByUsername(ctx, data.Username)
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
			"message": "Error sending message",
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !u.IsAcceptingMessages {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "User is not accepting messages",
		})
		return
	}

	msg := model.Message{
		ID:        bson.NewObjectID(),
		Content:   data.Content,
		CreatedAt: d.Clock(),
	}

	if err := d.DB.AppendMessage(ctx, u.ID.Hex(), msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error sending message",
		})

		zap.L().Error("Failed to append message", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message sent successfully",
	})
}
