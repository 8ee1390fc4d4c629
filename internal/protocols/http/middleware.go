package http

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"aniview/internal/auth"
	"aniview/pkg/logger"
	"aniview/pkg/models"
)

// RequestLogger emits one structured access log line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.HTTP(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), int(time.Since(start).Milliseconds()))
	}
}

// AuthMiddleware validates the bearer token and sets the user id on
// the request context
func AuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		userID, err := verifier.UserID(parts[1])
		if err != nil {
			c.JSON(401, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// GetUserID extracts user ID from gin context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

// clientLimiters tracks one token bucket per client IP. Stale entries
// are pruned when unused past the idle window.
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const limiterIdle = 10 * time.Minute

func newClientLimiters(rps float64, burst int) *clientLimiters {
	cl := &clientLimiters{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
	go cl.pruneLoop()
	return cl
}

func (cl *clientLimiters) get(clientIP string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	entry, ok := cl.limiters[clientIP]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(cl.limit, cl.burst)}
		cl.limiters[clientIP] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (cl *clientLimiters) pruneLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cl.mu.Lock()
		for ip, entry := range cl.limiters {
			if time.Since(entry.lastSeen) > limiterIdle {
				delete(cl.limiters, ip)
			}
		}
		cl.mu.Unlock()
	}
}

// RateLimitMiddleware applies a per-client request limit
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiters := newClientLimiters(rps, burst)
	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.JSON(429, models.APIResponse{
				Success:   false,
				Error:     "too many requests",
				Timestamp: time.Now(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
