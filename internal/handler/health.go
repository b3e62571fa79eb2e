package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	statusConnected = "connected"
	statusError     = "error"
	statusDisabled  = "disabled"
)

type pingFunc func(ctx context.Context) error

// Health pings Postgres and Redis. Only a Postgres failure makes the
// service unhealthy; without Redis lookups go straight to the database.
func Health(db *gorm.DB, rdb redis.UniversalClient, cache *infra.Cache) gin.HandlerFunc {
	pingDB := func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	var pingRedis pingFunc
	if rdb != nil {
		pingRedis = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return health(pingDB, pingRedis, func() string { return cache.BreakerState().String() })
}

func health(pingDB, pingRedis pingFunc, breaker func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := probe(ctx, pingDB)
		status := http.StatusOK
		if dbStatus != statusConnected {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":            status == http.StatusOK,
			"db":            dbStatus,
			"redis":         probe(ctx, pingRedis),
			"cache_breaker": breaker(),
		})
	}
}

func probe(ctx context.Context, ping pingFunc) string {
	if ping == nil {
		return statusDisabled
	}
	if err := ping(ctx); err != nil {
		return statusError
	}
	return statusConnected
}
