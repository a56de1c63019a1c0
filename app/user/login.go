package user

import (
	"net/http"
	"time"

	"whispr/feedback-api/db"
	"whispr/feedback-api/internal"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type loginBody struct {
	// Identifier is either the email or the username
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login authenticates a verified account and issues the session cookie
// the authenticated endpoints require.
func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Identifier == "" || data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Identifier and password are required",
		})
		return
	}

	ctx := c.Request.Context()

	u, err := d.DB.FindByEmail(ctx, data.Identifier)
	if err == db.ErrNotFound {
		u, err = d.DB.FindByUsername(ctx, data.Identifier)
	}
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
			"message": "Error logging in",
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !u.IsVerified {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Please verify your account before logging in",
		})
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.Password, u.PasswordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error logging in",
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Incorrect password",
		})
		return
	}

	authToken, err := makeToken(jwt.MapClaims{
		"user_id": u.ID.Hex(),
		"type":    "auth",
		"iat":     d.Clock().Unix(),
		"exp":     d.Clock().Add(time.Hour * 24 * 30).Unix(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error logging in",
		})

		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	sslEnabled := viper.GetBool("host.ssl_enabled")

	c.SetCookie("auth_token", authToken, 60*60*24*30, "/", "", sslEnabled, true)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Logged in successfully",
		"username": u.Username,
	})
}

func makeToken(claims jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(viper.GetString("security.jwt_secret")))
}
