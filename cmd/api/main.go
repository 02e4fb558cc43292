package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rxvault/internal/config"
	"rxvault/internal/database"
	"rxvault/internal/database/migration"
	handlers "rxvault/internal/http/handler"
	"rxvault/internal/http/middleware"
	"rxvault/internal/otel"
	"rxvault/internal/repository/postgres"
	"rxvault/internal/service"
	"rxvault/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC

	ctx := context.Background()

	// Initialize tracing; degrades to a noop provider when no collector is configured
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Bootstrap the schema (users + prescriptions with cascade delete)
	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Initialize repository and service
	rxRepo := postgres.NewPrescriptionPostgres(db)
	rxSvc := service.NewPrescriptionService(objStore, rxRepo,
		time.Duration(cfg.Storage.LinkTTLSec)*time.Second)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(cors.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, rxSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
