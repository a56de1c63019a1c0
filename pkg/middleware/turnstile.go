package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type turnstileResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// NewTurnstileMiddleware guards the public intake endpoints against
// bots. Anonymous senders are otherwise completely unthrottled per
// account, so this is the only friction they get.
func NewTurnstileMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !viper.GetBool("turnstile.enabled") {
			c.Next()
			return
		}

		token := c.Request.Header.Get("TurnstileToken")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Missing or invalid turnstile token",
			})
			return
		}

		payload := gin.H{
			"secret":   viper.GetString("turnstile.secret_token"),
			"response": token,
			"remoteip": c.ClientIP(),
		}

		jsonBody, _ := json.Marshal(payload)
		resp, err := http.Post("https://challenges.cloudflare.com/turnstile/v0/siteverify", "application/json", bytes.NewReader(jsonBody))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized",
			})
			return
		}

		respBody, _ := io.ReadAll(resp.Body)
		defer resp.Body.Close()

		var res turnstileResponse
		if err := json.Unmarshal(respBody, &res); err != nil || !res.Success {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized",
			})
			return
		}

		c.Next()
	}
}
