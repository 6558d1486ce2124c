package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// HealthRedis is the part of *redis.Client the health check needs.
type HealthRedis interface {
	Ping(ctx context.Context) *redis.StatusCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
}

type healthCheck func(ctx context.Context) error

// Health reports database and redis reachability plus the depth of each job
// queue. Any failed check turns the response into a 503.
func Health(db *gorm.DB, rdb HealthRedis, queues ...string) gin.HandlerFunc {
	checks := map[string]healthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		healthy := true
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.Warn().Err(err).Str("check", name).Msg("health check failed")
				results[name] = "down"
				healthy = false
				continue
			}
			results[name] = "up"
		}

		depth := make(map[string]int64, len(queues))
		if results["redis"] == "up" {
			for _, q := range queues {
				if n, err := rdb.LLen(ctx, q).Result(); err == nil {
					depth[q] = n
				}
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ok":     healthy,
			"checks": results,
			"queues": depth,
		})
	}
}
