package user

import (
	"net/http"
	"net/url"

	"whispr/feedback-api/db"
	"whispr/feedback-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type verifyBody struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

// VerifyCode checks a submitted code against the stored one and marks
// the account verified when it matches and hasn't expired. There is no
// attempt counter, guessing is only bounded by the expiry window.
//
// A missing user answers 500, not 404. Clients depend on that status so
// it stays.
func VerifyCode(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data verifyBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Usernames arrive percent-encoded when lifted from the verify page URL
	username, err := url.QueryUnescape(data.Username)
	if err != nil {
		username = data.Username
	}

	u, err := d.DB.FindByUsername(c.Request.Context(), username)
	if err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "User not found",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error verifying user",
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if u.VerifyCode != data.Code {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid verification code",
		})
		return
	}

	if !u.VerifyCodeExpiry.After(d.Clock()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Verification code has expired",
		})
		return
	}

	if err := d.DB.MarkVerified(c.Request.Context(), u.ID.Hex()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error verifying user",
		})

		zap.L().Error("Failed to mark user verified", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User verified successfully",
	})
}
