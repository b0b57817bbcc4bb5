package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"favornet/server/internal/config"
	"favornet/server/internal/database"
	"favornet/server/internal/geo"
	"favornet/server/internal/handlers"
	"favornet/server/internal/metrics"
	"favornet/server/internal/middleware"
	"favornet/server/internal/repository"
	"favornet/server/internal/routes"
	"favornet/server/internal/service"
	"favornet/server/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()
	logging.Setup()
	if envErr != nil {
		slog.Info("No .env file found")
	}

	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	opts := []service.Option{service.WithMetrics(m)}
	if cfg.GeocodingEnabled() {
		var lookup geo.AddressLookup = geo.NewGeocoder(cfg.GeocodeURL, cfg.GoogleAPIKey, cfg.GeocodeRPS)
		if cfg.RedisURL != "" {
			cache, err := geo.NewAddressCache(cfg.RedisURL, lookup, cfg.AddressCacheTTL)
			if err != nil {
				slog.Warn("Address cache disabled", "error", err)
			} else {
				defer cache.Close()
				lookup = cache
			}
		}
		opts = append(opts, service.WithAddressLookup(lookup))
	} else {
		slog.Warn("GOOGLE_API_KEY not set, community group addresses disabled")
	}

	svc := service.New(store, opts...)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))
	app.Use(middleware.Metrics(m))

	// Setup routes
	routes.SetupRoutes(app, handlers.New(svc), routes.Options{
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		Gatherer:        reg,
	})

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "port", cfg.Port, "store", cfg.Store)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}

func openStore(ctx context.Context, cfg config.Config) (repository.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		slog.Warn("Using in-memory store, data is lost on restart")
		return repository.NewMemory(), nil
	case config.StorePostgres:
		db, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}
}
