package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/realty-api/internal/audit"
	"github.com/BruksfildServices01/realty-api/internal/config"
	dbpkg "github.com/BruksfildServices01/realty-api/internal/db"
	"github.com/BruksfildServices01/realty-api/internal/infra/cache"
	"github.com/BruksfildServices01/realty-api/internal/infra/storage"
	"github.com/BruksfildServices01/realty-api/internal/middleware"
	"github.com/BruksfildServices01/realty-api/internal/routes"
)

// defaultCacheTTL bounds cached token lookups when tokens never expire.
const defaultCacheTTL = 24 * time.Hour

func main() {

	cfg := config.Load()
	log := newLogger(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg, log)

	// ======================================================
	// INFRA
	// ======================================================
	st := newStorage(cfg)
	tokenCache := newTokenCache(cfg, log)

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Storage: st,
		Cache:   tokenCache,
		Audit:   auditDispatcher,
		Log:     log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	auditDispatcher.Close()
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

func newStorage(cfg *config.Config) storage.Storage {
	if cfg.StorageDriver == config.StorageS3 {
		return storage.NewS3Storage(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return storage.NewLocalStorage(cfg.MediaRoot, cfg.MediaURL)
}

func newTokenCache(cfg *config.Config, log logrus.FieldLogger) cache.TokenCache {
	if cfg.RedisAddr == "" {
		return cache.NopTokenCache{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unavailable, token lookups will hit the database")
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return cache.NewRedisTokenCache(rdb, ttl)
}
