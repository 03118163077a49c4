package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultRateLimiterCapacity bounds how many client limiters are kept
const DefaultRateLimiterCapacity = 10000

// RateLimiter hands out a token bucket per client. The least recently seen
// clients are evicted once capacity is reached.
type RateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a limiter allowing requestsPerSecond with the given burst
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return NewRateLimiterWithCapacity(requestsPerSecond, burst, DefaultRateLimiterCapacity)
}

// NewRateLimiterWithCapacity is NewRateLimiter with an explicit client capacity
func NewRateLimiterWithCapacity(requestsPerSecond float64, burst, capacity int) *RateLimiter {
	if capacity <= 0 {
		capacity = DefaultRateLimiterCapacity
	}
	if burst <= 0 {
		burst = 1
	}
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[string, *rate.Limiter](capacity)
	return &RateLimiter{
		limiters: cache,
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Get(key); ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	if previous, ok, _ := rl.limiters.PeekOrAdd(key, limiter); ok {
		return previous
	}
	return limiter
}

// getClientIdentifier prefers the authenticated caller, then the client IP
func getClientIdentifier(c *gin.Context) string {
	if caller, ok := CallerFromContext(c); ok {
		return "caller:" + caller.Hex()
	}
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		return "ip:" + forwardedFor
	}
	clientIP := c.ClientIP()
	if clientIP == "" {
		clientIP = "unknown"
	}
	return "ip:" + clientIP
}

// Middleware returns a Gin middleware handler for rate limiting
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		clientID := getClientIdentifier(c)
		limiter := rl.getLimiter(clientID)
		reset := strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10)

		if !limiter.Allow() {
			logger.Log.Warn("Rate limit exceeded",
				zap.String("client_id", clientID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("correlation_id", GetCorrelationID(c)),
			)

			c.Header("X-RateLimit-Limit", rl.limitHeader())
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", reset)
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"retry_after": 1,
			})
			return
		}

		remaining := int(limiter.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", rl.limitHeader())
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", reset)

		c.Next()
	}
}

func (rl *RateLimiter) limitHeader() string {
	return fmt.Sprintf("%g", float64(rl.rate))
}
