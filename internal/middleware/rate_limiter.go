package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimiter is a fixed-window limiter keyed by client IP and backed by
// Redis, so every replica shares the same counters. nombre separates the
// buckets of different route groups. When Redis is unreachable requests are
// let through.
func RateLimiter(rdb *redis.Client, nombre string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		slot := time.Now().Unix() / int64(window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%s:%d", nombre, c.ClientIP(), slot)

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Warn().Err(err).Str("limiter", nombre).Msg("rate limiter sin redis, se permite la solicitud")
			c.Next()
			return
		}

		if incr.Val() > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts per IP per minute.
func LoginRateLimiter(rdb *redis.Client, limit int) gin.HandlerFunc {
	return RateLimiter(rdb, "login", limit, time.Minute)
}
