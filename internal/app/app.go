package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pricepulse/internal/config"
	"pricepulse/internal/errors"
	"pricepulse/internal/infrastructure"
	customMiddleware "pricepulse/internal/middleware"
	"pricepulse/internal/services"
	handlers "pricepulse/internal/transport/http"
)

// Version is the reported build version.
const Version = "1.0.0"

// Application is the dependency container wiring config, services and the
// HTTP server together.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	DataService   *services.DataService
	HealthService *services.HealthService
	Logger        *slog.Logger
	Registry      *prometheus.Registry
}

// NewApplication creates a new application instance with dependency
// injection.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.String("source", cfg.Source.Path))

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		DataService:   services.NewDataService(cfg.Source.Path, logger),
		HealthService: services.NewHealthService(Version, cfg.Source.Path, logger),
		Registry:      prometheus.NewRegistry(),
	}
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.setupRouter()
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return a, nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.NewHTTPMetrics(a.Registry).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	if a.Config.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.RateLimit.RPS,
			a.Config.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger, false)
	dataHandler := handlers.NewDataHandler(a.DataService, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	r.Get("/", handlers.Index)
	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Get("/health", healthHandler.HealthCheck)
			r.Get("/health/ready", healthHandler.ReadinessCheck)
			r.Get("/health/live", healthHandler.LivenessCheck)
			r.Get("/version", healthHandler.Version)
		})

		r.Mount("/", dataHandler.Routes())
	})

	a.Router = r
}

// Start launches the HTTP server.
func (a *Application) Start(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "http server listening",
		slog.String("addr", a.Server.Addr))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Error("server error", slog.String("error", err.Error()))
		}
	}()
	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (a *Application) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	a.Logger.InfoContext(shutdownCtx, "shutting down")
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return infrastructure.CloseLogFile()
}

// Run runs the application until interrupted. Lifecycle log lines share
// one trace ID so startup and shutdown correlate.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(infrastructure.EnsureTraceID(context.Background()))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx); err != nil {
		return err
	}

	<-sigChan
	a.Logger.InfoContext(ctx, "received interrupt signal")
	return a.Stop(ctx)
}
