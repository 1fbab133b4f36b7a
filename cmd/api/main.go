// Package main is the entry point for the inventory service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/GunarsK-portfolio/inventory-service/internal/audit"
	"github.com/GunarsK-portfolio/inventory-service/internal/config"
	"github.com/GunarsK-portfolio/inventory-service/internal/database"
	"github.com/GunarsK-portfolio/inventory-service/internal/handlers"
	"github.com/GunarsK-portfolio/inventory-service/internal/metrics"
	"github.com/GunarsK-portfolio/inventory-service/internal/middleware"
	"github.com/GunarsK-portfolio/inventory-service/internal/repository"
	"github.com/GunarsK-portfolio/inventory-service/internal/routes"
	"github.com/GunarsK-portfolio/inventory-service/internal/service"
	"github.com/GunarsK-portfolio/inventory-service/pkg/redis"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("could not read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	setupLogging(cfg)

	// Initialize database
	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseURL, database.GormLogLevel(cfg.LogLevel))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("failed to get database handle")
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(context.Background(), redis.Options{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		TLS:      cfg.IsProduction() && cfg.RedisPassword != "",
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	logger := log.StandardLogger()
	auditLog := audit.NewFileWriter(cfg.AuditLogPath, logger.WithField("component", "audit"), m)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)

	// Initialize services
	tokenService := service.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)
	if tokenService == nil {
		log.Fatal("session secret is too short")
	}
	authService := service.NewAuthService(userRepo, tokenService, service.NewRedisSessionStore(redisClient))
	productService := service.NewProductService(productRepo, auditLog, m)

	// Initialize handlers
	cookies := handlers.NewCookieHelper(handlers.CookieConfig{
		Domain:   cfg.CookieDomain,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	authHandler := handlers.NewAuthHandler(authService, cookies, logger)
	productHandler := handlers.NewProductHandler(productService, logger)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": sqlDB.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	})

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))

	routes.Setup(router, routes.Dependencies{
		Auth:           authHandler,
		Products:       productHandler,
		Health:         healthHandler,
		Metrics:        m,
		Gatherer:       registry,
		LoadSession:    middleware.LoadSession(authService, cookies.SessionToken, logger),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{
			"port":      cfg.Port,
			"db_driver": cfg.DBDriver,
			"audit_log": auditLog.Path(),
		}).Info("starting inventory service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"inventory-service": func(ctx context.Context) error {
				log.Info("graceful shutdown initiated")
				// Drain requests before closing the stores they use.
				err := server.Shutdown(ctx)
				return errors.Join(err, redisClient.Close(), sqlDB.Close())
			},
		},
	)

	exitCode := <-wait
	log.WithField("exit_code", exitCode).Info("inventory service stopped")
	os.Exit(exitCode)
}

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warn("cannot parse log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	// Millisecond precision helps when reading request latencies.
	formatter := new(log.TextFormatter)
	formatter.TimestampFormat = "2006-01-02T15:04:05.999Z07:00"
	formatter.FullTimestamp = true
	log.SetFormatter(formatter)
}
