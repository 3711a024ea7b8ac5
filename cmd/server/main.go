// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orus-accounts/internal/config"
	"orus-accounts/internal/handlers"
	applog "orus-accounts/internal/logger"
	"orus-accounts/internal/metrics"
	"orus-accounts/internal/repositories"
	"orus-accounts/internal/routes"
	"orus-accounts/internal/services/account"
	"orus-accounts/internal/services/notification"
	"orus-accounts/internal/services/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// main initializes and starts the HTTP server.
// It performs the following setup:
// - Loads configuration
// - Builds the in-memory account store and services
// - Starts the notification dispatcher
// - Configures routes
// - Serves until SIGINT/SIGTERM, then drains
func main() {
	config.LoadEnv()
	cfg := config.Load()

	zl, err := applog.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.New(reg)

	repo := repositories.NewInMemoryAccountRepository()

	// Notification sink
	healthChecks := map[string]handlers.HealthCheckFunc{}
	var sink notification.Sink
	switch cfg.NotifySink {
	case config.NotifySinkRedis:
		client := notification.NewRedisClient(&notification.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() {
			if err := client.Close(); err != nil {
				zl.Warn("Failed to close Redis connection", zap.Error(err))
			}
		}()

		redisSink := notification.NewRedisSink(client, cfg.RedisChannel)
		if err := redisSink.HealthCheck(context.Background()); err != nil {
			zl.Warn("Redis unreachable, notifications will fail until it recovers", zap.Error(err))
		} else {
			zl.Info("Connected to Redis", zap.String("channel", cfg.RedisChannel))
		}
		healthChecks["redis"] = redisSink.HealthCheck
		sink = redisSink
	default:
		sink = notification.NewLogSink(zl.Named("notification"))
	}

	dispatcher := notification.NewDispatcher(sink, notification.Config{
		Workers:   cfg.NotifyWorkers,
		QueueSize: cfg.NotifyQueueSize,
	}, collector, zl.Named("dispatcher"))

	accountService := account.NewService(repo, zl.Named("account"))
	transferService := transfer.NewService(repo, dispatcher, transfer.Config{
		LockTimeout:  cfg.LockTimeout,
		LockOrdering: cfg.LockOrdering,
	}, collector, zl.Named("transfer"))

	// Create Fiber app
	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.IsProduction(),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	// Routes
	routes.SetupRoutes(app, routes.Dependencies{
		AccountService:  accountService,
		TransferService: transferService,
		Gatherer:        reg,
		HealthChecks:    healthChecks,
		EnableReset:     cfg.EnableReset,
	})

	go func() {
		zl.Info("Starting server",
			zap.String("port", cfg.Port),
			zap.Duration("lock_timeout", cfg.LockTimeout),
			zap.String("lock_ordering", cfg.LockOrdering),
			zap.String("notify_sink", cfg.NotifySink),
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		zl.Error("HTTP shutdown failed", zap.Error(err))
	}
	if err := dispatcher.Close(ctx); err != nil {
		zl.Warn("Notification queue not fully drained", zap.Error(err))
	}
}
