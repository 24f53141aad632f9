package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"

	"github.com/agency-portal/config"
)

// setupLogging installs the default slog logger: text on stdout, plus JSON lines to LOG_FILE when set.
// The returned func closes the log file.
func setupLogging(cfg config.Config, w io.Writer) (func() error, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.Debug {
		opts.Level = slog.LevelDebug
	}

	handlers := []slog.Handler{slog.NewTextHandler(w, opts)}
	closer := func() error { return nil }
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closer, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
		closer = f.Close
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)).With(
		slog.String("service", "agencyportal"),
		slog.String("env", cfg.AppEnv),
	))
	return closer, nil
}

// loadConfig reads .env and the environment, then sets up logging
func loadConfig() (config.Config, func() error, error) {
	config.LoadEnv()
	cfg := config.Load()
	closeLog, err := setupLogging(cfg, os.Stdout)
	return cfg, closeLog, err
}
