// Package root contains the unauthenticated service endpoints.
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate answers 200 when the session cookie passes the JWT
// middleware, the UI uses it to decide whether a login is needed.
func Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
