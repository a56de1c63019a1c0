package middleware

import (
	"fmt"
	"net/http"
	"time"

	"whispr/feedback-api/db"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewJWTMiddleware authenticates the session cookie and resolves the
// user against the store. The session id alone is never trusted: the
// account must still exist and be verified.
func NewJWTMiddleware(s db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr, err := c.Cookie("auth_token")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authenticated",
			})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}

			return []byte(viper.GetString("security.jwt_secret")), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Session invalid. Please log in again",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Session invalid. Please log in again",
			})
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Session invalid. Please log in again",
			})
			return
		}

		exp, ok := claims["exp"].(float64)
		if !ok || time.Now().Unix() >= int64(exp) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Session expired. Please log in again",
			})
			return
		}

		user, err := s.FindByID(c.Request.Context(), userID)
		if err != nil {
			if err == db.ErrNotFound {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"success": false,
					"message": "User not found",
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal server error",
			})

			zap.L().Error("Failed to resolve session user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !user.IsVerified {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Please verify your account before using the service",
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
