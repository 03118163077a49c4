package middleware

import (
	"time"

	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one structured line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l := logger.NewStructuredLogger(logger.ComponentAPI).WithCorrelationID(GetCorrelationID(c))
		if caller, ok := CallerFromContext(c); ok {
			l = l.WithField("caller", caller.Hex())
		}
		if len(c.Errors) > 0 {
			l = l.WithField("errors", c.Errors.String())
		}
		l.LogHTTPRequest(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
