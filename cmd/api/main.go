package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"questionnaire/docs"
	"questionnaire/internal/config"
	handlers "questionnaire/internal/http/handler"
	"questionnaire/internal/http/middleware"
	"questionnaire/internal/logging"
	"questionnaire/internal/metrics"
	"questionnaire/internal/otel"
	"questionnaire/internal/repository/file"
	"questionnaire/internal/service"
	"questionnaire/internal/storage"
	"questionnaire/internal/storage/local"
)

// @title Questionnaire API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logging.SetLocation(cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		fatal("failed to initialize tracing", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logging.Error("tracing_shutdown_failed", err, nil)
		}
	}()

	docRepo := file.NewDocumentFile(cfg.Document.Path())
	if err := docRepo.EnsureReady(ctx); err != nil {
		fatal("failed to prepare document storage", err)
	}

	var (
		mediaStore storage.Storage
		localStore *local.Storage
	)
	switch cfg.Media.Backend {
	case config.MediaBackendMinIO:
		mediaStore, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			fatal("failed to initialize object storage", err)
		}
	default:
		localStore = local.New(cfg.Media.Dir, cfg.Media.PublicPrefix)
		mediaStore = localStore
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics, err := metrics.New(reg)
	if err != nil {
		fatal("failed to register metrics", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal("failed to register http metrics", err)
	}

	questionSvc := service.NewQuestionService(docRepo, appMetrics)
	mediaSvc := service.NewMediaService(mediaStore, appMetrics)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.Media.MaxUploadBytes,
		DisableStartupMessage: true,
	})

	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(httpMetrics.Handler())

	handlers.RegisterRoutes(app, questionSvc, mediaSvc)
	if localStore != nil {
		handlers.RegisterMediaFiles(app, cfg.Media.PublicPrefix, localStore.Dir())
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			logging.Error("server_shutdown_failed", err, nil)
		}
	}()

	addr := ":" + cfg.Port
	logging.Info("server_starting", map[string]any{
		"addr":          addr,
		"document_path": docRepo.Path(),
		"media_backend": mediaStore.Backend(),
	})

	if err := app.Listen(addr); err != nil && !errors.Is(err, context.Canceled) {
		fatal("failed to start server", err)
	}
	logging.Info("server_stopped", nil)
}

func fatal(msg string, err error) {
	logging.Error(msg, err, nil)
	os.Exit(1)
}
