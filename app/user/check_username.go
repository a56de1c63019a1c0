// Package user contains the account lifecycle handlers: uniqueness
// checks, sign-up, code verification and login.
package user

import (
	"net/http"

	"whispr/feedback-api/db"
	"whispr/feedback-api/internal"
	"whispr/feedback-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckUsernameUnique reports whether a username is still free. Only
// verified users count, an abandoned unverified sign-up doesn't block reuse.
func CheckUsernameUnique(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	username := c.Query("username")
	if err := validators.UsernameValidator(username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	_, err := d.DB.FindVerifiedByUsername(c.Request.Context(), username)
	if err != nil {
		if err == db.ErrNotFound {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "Username is unique",
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error checking username",
		})

		zap.L().Error("Failed to check username", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Username already exists",
	})
}
