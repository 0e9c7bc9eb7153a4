// Command checkin walks a user through the daily check-in in a terminal.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"safespace/internal/config"
	"safespace/internal/walker"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Diagnostics go to stderr so they never interleave with the prompts
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := walker.New(walker.NewClient(cfg.BackendURL), os.Stdin, os.Stdout)
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("Check-in failed", "error", err)
		os.Exit(1)
	}
}
