package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/tictactoe-hotseat/internal/api/controller"
	"ctchen222/tictactoe-hotseat/internal/api/service"
	"ctchen222/tictactoe-hotseat/internal/config"
	"ctchen222/tictactoe-hotseat/internal/db"
	"ctchen222/tictactoe-hotseat/internal/hub"
	"ctchen222/tictactoe-hotseat/internal/logger"
	"ctchen222/tictactoe-hotseat/internal/repository"
	"ctchen222/tictactoe-hotseat/internal/server"
	"ctchen222/tictactoe-hotseat/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry before the logger so the log bridge finds the provider
	shutdown, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(cfg.LogLevel)

	// Initialize Redis
	rdb, err := db.NewRedisClient(ctx, cfg.Redis.Addr)
	if err != nil {
		slog.Error("Failed to initialize redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Create repositories
	sessionRepo := repository.NewSessionRepository(rdb, cfg.Redis.SnapshotTTL)

	// Create hub
	h := hub.NewHub(sessionRepo, cfg.Session.Heartbeat)
	go h.Run(ctx)

	// Create services and controllers
	sessionService := service.NewSessionService(h, sessionRepo)
	sessionController := controller.NewSessionController(sessionService)

	srv := server.NewServer(h, sessionController, cfg.HTTP.WebDir)

	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("http server started", "http.addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ListenAndServe failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown does not track hijacked websocket connections
	if err := h.Wait(shutdownCtx); err != nil {
		slog.Error("Sessions did not finish closing", "error", err)
	}

	slog.Info("Server exiting")
}
