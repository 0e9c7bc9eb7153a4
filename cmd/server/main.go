package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"safespace/internal/cache"
	"safespace/internal/config"
	"safespace/internal/service"
	"safespace/internal/transport/rest"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// @title SafeSpace Wellness Check API
// @version 1.0
// @description Daily stigma questions, roleplay scenarios and counselor feedback
// @host localhost:5000
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("AI config",
		"model", cfg.AI.Model,
		"timeout", cfg.AI.Timeout(),
		"api_key_configured", cfg.AI.IsEnabled())
	if !cfg.AI.IsEnabled() {
		slog.Warn("GEMINI_API_KEY not set, every generation falls back to defaults")
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Invalid time zone", "error", err)
		os.Exit(1)
	}

	cacheOpts := []cache.Option{cache.WithLocation(loc)}

	// Redis is optional: without it each replica keeps its own daily content
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			slog.Warn("Redis unreachable, continuing with in-memory cache only", "addr", cfg.RedisAddr, "error", err)
		} else {
			slog.Info("Connected to Redis", "addr", cfg.RedisAddr)
			cacheOpts = append(cacheOpts, cache.WithStore(cache.NewRedisContentStore(rdb)))
		}
		cancel()
	}

	// Initialize services
	generator := service.NewGeminiClient(cfg.AI)
	dailyCache := cache.NewDailyCache(cacheOpts...)
	contentSvc := service.NewContentService(dailyCache, generator)
	feedbackSvc := service.NewFeedbackService(generator)

	router := rest.NewRouter(&rest.Container{
		ContentService:  contentSvc,
		FeedbackService: feedbackSvc,
		AllowedOrigins:  cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ListenAndServe failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited")
}
