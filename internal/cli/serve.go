package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	appLogger "github.com/FACorreiaa/go-dinner-planner/app/logger"
	"github.com/FACorreiaa/go-dinner-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-dinner-planner/app/tracer"
	"github.com/FACorreiaa/go-dinner-planner/config"
	"github.com/FACorreiaa/go-dinner-planner/internal/container"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI and relay API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	logger := appLogger.New(os.Stdout, cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return Serve(ctx, cfg, logger)
}

// Serve runs the application and metrics servers until ctx is cancelled or
// either server fails, then shuts both down gracefully.
func Serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	providers, err := tracer.InitTracingAndMetrics("dinner-planner")
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("Telemetry shutdown failed", slog.Any("error", err))
		}
	}()

	metrics.InitAppMetrics()

	if missing := cfg.Webhook.Missing(); len(missing) > 0 {
		logger.Warn("Webhook not configured, plan requests will fail until these are set",
			slog.Any("missing", missing))
	}

	c := container.NewContainer(&cfg, metrics.Get(), nil, logger)

	appListener, err := net.Listen("tcp", ":"+cfg.Server.HTTPPort)
	if err != nil {
		return fmt.Errorf("listen on app port: %w", err)
	}
	metricsListener, err := net.Listen("tcp", ":"+cfg.Handlers.Prometheus.Port)
	if err != nil {
		_ = appListener.Close()
		return fmt.Errorf("listen on metrics port: %w", err)
	}

	return serveListeners(ctx, appListener, metricsListener, c.Router(), providers.MetricsHandler, cfg, logger)
}

func serveListeners(ctx context.Context, appLn, metricsLn net.Listener, app chi.Router, metricsHandler http.Handler, cfg config.Config, logger *slog.Logger) error {
	// Outlive the router deadline so its timeout reply can still be written
	writeTimeout := cfg.RequestTimeout() + 5*time.Second

	srv := &http.Server{
		Handler:      app,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	metricsMux := chi.NewMux()
	metricsMux.Handle("/metrics", metricsHandler)
	metricsSrv := &http.Server{
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server",
			slog.String("address", appLn.Addr().String()),
			slog.String("environment", cfg.Environment()))
		if err := srv.Serve(appLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting metrics server", slog.String("address", metricsLn.Addr().String()))
		if err := metricsSrv.Serve(metricsLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Join(srv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", slog.Any("error", err))
		return err
	}
	logger.Info("Application shut down complete.")
	return nil
}
