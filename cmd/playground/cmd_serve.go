package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mongoplay/internal/playground/handler"
	"mongoplay/internal/playground/metrics"
	"mongoplay/internal/playground/router"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the playground HTTP API",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	defer cancel()

	a, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)

	if _, err := a.users.EnsureIndexes(ctx); err != nil {
		logger.Warn("Failed to ensure indexes", "error", err)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	// API runs print nothing; the report is the response body.
	opts := runnerOptions(cfg)
	runner := a.runner(opts, logger, nil)
	h := handler.NewPlaygroundHandler(a.users, a.users, a.admin, runner, opts, logger)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, h, prometheus.DefaultGatherer, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.WriteTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server Shutdown Failed", "error", err)
	}
	logger.Info("Server exited properly")
	return nil
}
