package main

import (
	"context"
	"log"
	"time"

	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/config"
	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/routes"
	"invoice-dashboard-backend/internal/seed"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.AppName, cfg.Environment)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := config.InitDB(cfg, zlog)
	if err != nil {
		zlog.Fatal("init db", zap.Error(err))
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		zlog.Fatal("migrate", zap.Error(err))
	}

	if cfg.SeedData {
		if err := seed.Run(context.Background(), db, zlog); err != nil {
			zlog.Fatal("seed", zap.Error(err))
		}
	}

	store, err := newCacheStore(cfg, zlog)
	if err != nil {
		zlog.Fatal("init cache", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(zlog))
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", logger.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", logger.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		DB:           db,
		Cache:        store,
		ViewCacheTTL: cfg.ViewCacheTTL,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.AuthCookieSecure,
		Registry:     registry,
		Log:          zlog,
	})

	zlog.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func newCacheStore(cfg config.Config, zlog *zap.Logger) (cache.Cache, error) {
	if cfg.CacheDriver != config.CacheDriverRedis {
		return cache.NewInMemoryCache(cfg.ViewCacheTTL), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return cache.NewRedisCache(client, cfg.ViewCacheTTL, zlog), nil
}
