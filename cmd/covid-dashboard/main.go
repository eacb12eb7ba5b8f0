package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/covid-dashboard/internal/api/http"
	"github.com/i474232898/covid-dashboard/internal/config"
	"github.com/i474232898/covid-dashboard/internal/covid"
	"github.com/i474232898/covid-dashboard/internal/covid/sources"
	"github.com/i474232898/covid-dashboard/internal/metrics"
	"github.com/i474232898/covid-dashboard/internal/scheduler"
	"github.com/i474232898/covid-dashboard/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Dataset source: a local file wins over the download.
	var source covid.Source
	if cfg.DatasetFile != "" {
		source = sources.NewFileSource(cfg.DatasetFile)
	} else {
		httpClient := &http.Client{
			Timeout: cfg.HTTPTimeout,
		}
		source = sources.NewHTTPSource(httpClient, cfg.DatasetURL)
	}

	m := metrics.New()
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory)

	// Core service: load once, cache, refresh on demand.
	service := covid.NewService(memStore, source,
		covid.WithObserver(m),
		covid.WithTopN(cfg.SnapshotTopN),
		covid.WithDefaults(covid.Defaults{
			Countries:  cfg.DefaultCountries,
			Continents: cfg.DefaultContinents,
		}),
	)

	// Warm the cache right away, then refresh periodically.
	sched := scheduler.New(cfg.RefreshInterval, cfg.HTTPTimeout, true, func(ctx context.Context) error {
		_, err := service.Refresh(ctx)
		return err
	})
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "covid-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// A cold request may wait for the first download.
		WriteTimeout: cfg.HTTPTimeout + 10*time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "covid-dashboard",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpapi.RegisterRoutes(app, service, m)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: covid-dashboard listening on :%s (source %s)", cfg.Port, source.Name())

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
