package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimit limits login attempts per client IP using Redis. Fails
// open: a cache outage must not lock customers out.
func LoginRateLimit(cache *redis.Client, maxPerMin int) gin.HandlerFunc {
	if maxPerMin <= 0 {
		maxPerMin = 5
	}
	return func(c *gin.Context) {
		if cache == nil {
			c.Next()
			return
		}

		key := "rl:login:" + c.ClientIP()
		cnt, err := cache.Incr(c.Request.Context(), key).Result()
		if err == nil && cnt == 1 {
			cache.Expire(c.Request.Context(), key, time.Minute)
		}
		if err != nil {
			c.Next()
			return
		}
		if cnt > int64(maxPerMin) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}
