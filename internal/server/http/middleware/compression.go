package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/dto"
)

// DecompressRequest inflates gzip encoded request bodies. The inflated body
// is capped at maxBytes; zero disables the cap.
func DecompressRequest(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isGzip(c.GetHeader("Content-Encoding")) {
			c.Next()
			return
		}

		compressed := c.Request.Body
		reader, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "InvalidInput", Message: "malformed gzip body"})
			return
		}
		defer compressed.Close()
		defer reader.Close()

		c.Request.Body = reader
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, reader, maxBytes)
		}
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}

func isGzip(encoding string) bool {
	for _, token := range strings.Split(encoding, ",") {
		if strings.EqualFold(strings.TrimSpace(token), "gzip") {
			return true
		}
	}
	return false
}
