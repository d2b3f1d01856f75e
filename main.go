package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/railpick/railpick/backend/dashboard-service/handlers"
	"github.com/railpick/railpick/backend/dashboard-service/internal/analytics"
	"github.com/railpick/railpick/backend/dashboard-service/internal/config"
	"github.com/railpick/railpick/backend/dashboard-service/internal/credentials"
	"github.com/railpick/railpick/backend/dashboard-service/internal/database"
	"github.com/railpick/railpick/backend/dashboard-service/internal/devicenames"
	"github.com/railpick/railpick/backend/dashboard-service/internal/store"
	"github.com/railpick/railpick/backend/dashboard-service/pkg/logger"
	"github.com/railpick/railpick/backend/dashboard-service/pkg/metrics"
	"github.com/railpick/railpick/backend/dashboard-service/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: database=%s cache_ttl=%s admins=%d", cfg.Store.Database, cfg.Dashboard.CacheTTL, len(cfg.Dashboard.AdminEmails))

	// Resolve the service-account key: deployment secret first, then the
	// local key-file scan. Without a credential the dashboard cannot reach
	// the store at all, so this is fatal.
	ctx := context.Background()
	chain := credentials.NewChain(
		credentials.SecretProvider{JSON: cfg.Credentials.SecretJSON},
		credentials.FileProvider{Dirs: cfg.Credentials.SearchDirs, Pattern: cfg.Credentials.FilePattern},
	)
	sa, err := chain.Resolve(ctx)
	if err != nil {
		if errors.Is(err, credentials.ErrCredentialNotFound) {
			logger.Fatalf("no service-account key found — set RAILPICK_SERVICE_ACCOUNT_KEY or place a %s file next to the binary (%v)", cfg.Credentials.FilePattern, err)
		}
		logger.Fatalf("failed to resolve credentials: %v", err)
	}
	logger.Infof("resolved service-account key via credential chain (project=%s)", sa.ProjectID)

	// Retry/backoff when connecting to the store to tolerate startup races
	const maxAttempts = 5
	backoff := time.Second
	mongoClient, errConn := database.ConnectMongo(ctx, sa, cfg.Store.URI, cfg.Store.Timeout)
	for attempt := 2; errConn != nil && attempt <= maxAttempts; attempt++ {
		logger.Warnf("attempt %d/%d: failed to connect to store: %v", attempt-1, maxAttempts, errConn)
		time.Sleep(backoff)
		backoff *= 2
		mongoClient, errConn = database.ConnectMongo(ctx, sa, cfg.Store.URI, cfg.Store.Timeout)
	}
	if errConn != nil {
		logger.Fatalf("could not connect to store after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	dbName := cfg.Store.Database
	if sa.Database != "" {
		dbName = sa.Database
	}
	db := mongoClient.Database(dbName)
	reader := store.NewMongoReader(db)

	names, err := devicenames.Load()
	if err != nil {
		logger.Fatalf("failed to load device model table: %v", err)
	}
	svc := analytics.NewService(reader, names, analytics.Options{
		AdminEmails: cfg.Dashboard.AdminEmails,
		TopModels:   cfg.Dashboard.TopModels,
		TopRoutes:   cfg.Dashboard.TopRoutes,
	})
	cache := analytics.NewCache(cfg.Dashboard.CacheTTL)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Optional rate limiter guarding the store-backed endpoints
	if cfg.RateLimit.Enabled {
		var redisClient *redis.Client
		if cfg.RateLimit.UseRedis && cfg.Redis.Host != "" {
			redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.Warnf("failed to connect to Redis (%s:%s), falling back to in-memory limiter: %v", cfg.Redis.Host, cfg.Redis.Port, err)
				redisClient = nil
			}
		}
		if redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
			logger.Infof("Redis-backed rate limiter enabled (%s:%s)", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
			logger.Infof("in-memory rate limiter enabled")
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when the store answers a ping
	r.GET("/ready", func(c *gin.Context) {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps := map[string]bool{"store": true}
		if err := db.RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			deps["store"] = false
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	dash := handlers.NewDashboardHandler(svc, cache, cfg.Dashboard)
	dash.Register(r)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting dashboard service on %s (env=%s)", addr, cfg.Server.Environment)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
