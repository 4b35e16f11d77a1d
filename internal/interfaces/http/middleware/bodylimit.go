package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sourcematch/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects request bodies larger than maxBytes. Bulk listing
// imports are the only large payloads the API accepts, and even those
// stay well under a few megabytes.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size"))
			return
		}

		// Chunked requests carry no Content-Length; cap the reader so
		// they cannot stream past the limit either.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
