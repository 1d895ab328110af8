package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rudra-raghu108/mist-backend/internal/auth"
)

const (
	// UserIDKey is the gin context key AuthRequired stores the caller's
	// user id under.
	UserIDKey = "user_id"

	RequestIDHeader = "X-Request-ID"
)

// RequestID attaches a request id, honoring one supplied by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("request_id", rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}

// Recovery converts panics into the JSON error envelope instead of a
// closed connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered path=%s err=%v", c.FullPath(), r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    50000,
					"message": "internal server error",
					"data":    nil,
				})
			}
		}()
		c.Next()
	}
}

// AuthRequired validates the Bearer token and stashes the user id.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    40100,
				"message": "missing bearer token",
				"data":    nil,
			})
			return
		}

		claims, err := auth.ParseJWT(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "invalid or expired token",
				"data":    nil,
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// Limiter is the counter surface RateLimit needs; the redis store
// implements it.
type Limiter interface {
	IncrWithWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit allows at most max requests per client IP per window on the
// routes it wraps. On limiter errors it lets the request through; rate
// limiting must not take the API down with redis.
func RateLimit(lim Limiter, name string, max int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + name + ":" + c.ClientIP()
		n, err := lim.IncrWithWindow(c.Request.Context(), key, window)
		if err != nil {
			log.Printf("rate limit unavailable name=%s err=%v", name, err)
			c.Next()
			return
		}
		if n > max {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    42900,
				"message": "too many requests",
				"data":    nil,
			})
			return
		}
		c.Next()
	}
}
