package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LimitBody caps every request body at maxBytes. Reads past the cap fail,
// so binding reports the request as malformed.
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
