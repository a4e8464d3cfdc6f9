package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/curalink/curalink/backend/api/handlers"
	"github.com/curalink/curalink/backend/api/internal/catalog"
	"github.com/curalink/curalink/backend/api/internal/config"
	"github.com/curalink/curalink/backend/api/internal/database"
	"github.com/curalink/curalink/backend/api/internal/favourites"
	"github.com/curalink/curalink/backend/api/internal/forum"
	"github.com/curalink/curalink/backend/api/internal/onboarding"
	"github.com/curalink/curalink/backend/api/internal/storage"
	"github.com/curalink/curalink/backend/api/internal/users"
	"github.com/curalink/curalink/backend/api/pkg/logger"
	"github.com/curalink/curalink/backend/api/pkg/metrics"
	"github.com/curalink/curalink/backend/api/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Connect to MongoDB with retry/backoff to tolerate startup races
	ctx := context.Background()
	var client *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
		defer func() { _ = client.Disconnect(ctx) }()
	} else {
		logger.Fatalf("MONGODB_URI is not set")
	}
	db := client.Database(cfg.MongoDB.Database)

	// readiness: 200 only when critical dependencies answer
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{}
		ready := true

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps["mongo"] = client.Ping(pingCtx, nil) == nil
		if !deps["mongo"] {
			ready = false
		}
		if cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil && redisClient.Ping(pingCtx).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		name := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			name = "not_ready"
		}
		c.JSON(status, gin.H{"status": name, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// repositories and services
	usersSvc := users.NewService(users.NewMongoRepository(db))
	favsSvc := favourites.NewService(favourites.NewMongoRepository(db))
	trials := catalog.NewMongoTrialRepository(db)
	experts := catalog.NewMongoExpertRepository(db)
	pubs := catalog.NewMongoPublicationRepository(db)
	forumRepo := forum.NewMongoRepository(db)
	profiles := onboarding.NewMongoRepository(db)

	// optional attachment storage
	var store *storage.MinIOStorage
	if cfg.MinIO.Endpoint != "" {
		store, err = storage.NewMinIOStorage(&cfg.MinIO)
		if err != nil {
			logger.Warnf("attachment storage unavailable: %v", err)
			store = nil
		}
	}

	ident := handlers.NewIdentity(cfg, usersSvc.Repository())

	api := r.Group("/api/v1")
	handlers.NewAuthHandler(cfg, usersSvc).Register(api)
	handlers.NewTrialsHandler(trials, favsSvc, ident).Register(api)
	handlers.NewExpertsHandler(experts, favsSvc, ident).Register(api)
	handlers.NewPublicationsHandler(pubs, favsSvc, ident, store).Register(api)
	handlers.NewFavouritesHandler(favsSvc, ident).Register(api)
	handlers.NewForumHandler(forumRepo).Register(api)
	handlers.NewOnboardingHandler(cfg, usersSvc, profiles).Register(api)
	handlers.NewPDFHandler(cfg).Register(api)

	// Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting API service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
