package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/agency-portal/database"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/routes"
	"github.com/agency-portal/services"
	"github.com/agency-portal/storage"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal API server",
	RunE:  serve,
}

func serve(_ *cobra.Command, _ []string) error {
	cfg, closeLog, err := loadConfig()
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET not set in environment")
	}

	// Catch signals to stop the process as gracefully as possible.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Initialize(cfg.DBDriver, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	cache := querycache.New(
		querycache.WithPolicy(querycache.NewPolicy(cfg.CacheStaleDefault, cfg.CacheStaleCounts)),
		querycache.WithRetries(cfg.QueryRetries, 200*time.Millisecond),
		querycache.WithLogger(slog.Default()),
	)
	defer cache.Close()

	svc := services.New(services.Deps{Cache: cache, Store: store, Logger: slog.Default()}, cfg.JWTSecret)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(svc, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go services.NewCountRefresher(svc.Dashboard, cfg.PollInterval, slog.Default()).Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server",
			slog.String("port", cfg.Port),
			slog.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
