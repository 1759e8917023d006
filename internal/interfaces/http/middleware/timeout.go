// internal/interfaces/http/middleware/timeout.go
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jhuggee/marketplace-backend/internal/pkg/response"
)

// Timeout bounds request handling time. The deadline propagates through
// the request context to downstream calls, including the payment gateway.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Next()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			response.Error(c, http.StatusRequestTimeout, "Request timeout")
			c.Abort()
		}
	}
}
