package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Postgres is required; Redis only backs rate limits and scan counters, so
// losing it degrades the service without failing the check.
func Health(db *gorm.DB, rdb *redis.Client, escaneosCB *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			redisStatus = "degraded"
		}

		status := http.StatusOK
		if dbStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":                       status == http.StatusOK,
			"db":                       dbStatus,
			"redis":                    redisStatus,
			"circuit_breaker_escaneos": escaneosCB.State().String(),
		})
	}
}
