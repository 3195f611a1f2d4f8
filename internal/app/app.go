package app

import (
	"net/http"

	"hiringlens/internal/config"
	"hiringlens/internal/middleware"
	"hiringlens/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module on
// the router. Returns the loaded config so the caller can start the
// server with the right timeouts.
func BuildApp(router *gin.Engine) (*config.Config, error) {
	logger := zap.L().Named("app")

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		5,
	)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, 5)
	if err != nil {
		// Redis is a cache here, not a store; run degraded without it.
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	} else {
		logger.Info("redis connection established")
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.SiteGate(cfg.Site.Password))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/api/site-access", middleware.SiteAccessHandler(cfg.Site.Password))

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb); err != nil {
		return nil, err
	}

	return cfg, nil
}
