package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fluxactu/internal/config"
	hhttp "fluxactu/internal/handler/http"
	"fluxactu/internal/handler/http/api"
	"fluxactu/internal/handler/http/middleware"
	"fluxactu/internal/handler/http/page"
	"fluxactu/internal/handler/http/requestid"
	"fluxactu/internal/infra/newsapi"
	"fluxactu/internal/infra/worker"
	"fluxactu/internal/observability/logging"
	"fluxactu/internal/observability/tracing"
	"fluxactu/internal/usecase/reader"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	refreshMetrics := worker.NewMetrics()
	cfg, err := config.Load(logger, refreshMetrics.ConfigMetrics)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := tracing.Setup(cfg.Tracing)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	client := newsapi.NewClient(cfg.NewsAPI, newsapi.WithLogger(logger))
	session := reader.NewSession(client, reader.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The page renders the loading state until the first fetch settles.
	go func() {
		if err := session.Load(ctx); err != nil {
			logger.Warn("initial article load failed", slog.Any("error", err))
		}
	}()

	var scheduler *worker.Scheduler
	if cfg.Refresh.Enabled() {
		scheduler, err = worker.NewScheduler(cfg.Refresh, session, refreshMetrics, logger)
		if err != nil {
			logger.Error("failed to create refresh scheduler", slog.Any("error", err))
			os.Exit(1)
		}
		scheduler.Start()
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           setupHandler(logger, cfg, client, session),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	version := getVersion()
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.ListenAddr),
			slog.String("version", version),
			slog.String("api_url", client.URL()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if scheduler != nil {
		if err := scheduler.Stop(shutdownCtx); err != nil {
			logger.Error("refresh scheduler stop failed", slog.Any("error", err))
		}
	}
	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

// setupHandler registers every route and wraps the mux with the middleware chain.
// Order, outermost first: request ID, tracing, recovery, logging, body limit, CSP, metrics.
func setupHandler(logger *slog.Logger, cfg config.Config, client *newsapi.Client, session *reader.Session) http.Handler {
	mux := http.NewServeMux()

	page.Register(mux, &page.Handler{
		Session:      session,
		APIHost:      client.Host(),
		DefaultSpice: cfg.DefaultSpice,
		Logger:       logger,
	})

	api.Register(mux, session, api.Options{
		DefaultSpice:     cfg.DefaultSpice,
		RefreshPerMinute: cfg.RefreshPerMinute,
		RefreshTimeout:   cfg.Refresh.Timeout,
	}, logger)

	hhttp.Register(mux,
		&hhttp.HealthHandler{
			Session:       session,
			Version:       getVersion(),
			CSPEnabled:    true,
			CSPReportOnly: cfg.CSPReportOnly,
		},
		&hhttp.ReadyHandler{Session: session},
	)

	logger.Info("CSP enabled", slog.Bool("report_only", cfg.CSPReportOnly))

	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(1<<20),
		middleware.CSP(middleware.ReaderCSPConfig(cfg.CSPReportOnly)),
		hhttp.MetricsMiddleware,
	)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}
