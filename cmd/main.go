package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/PasinduAnjana/Studentscope-sub000/auth"
	"github.com/PasinduAnjana/Studentscope-sub000/config"
	"github.com/PasinduAnjana/Studentscope-sub000/database"
	"github.com/PasinduAnjana/Studentscope-sub000/metrics"
	"github.com/PasinduAnjana/Studentscope-sub000/routes"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connect failed", "error", err)
		os.Exit(1)
	}

	authn := auth.NewAuthenticator(database.NewUserStore(db))
	sessions := auth.NewSessions(database.NewSessionRepo(db), cfg.SessionTTL)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(collector.Middleware())

	routes.Register(e, cfg, db, authn, sessions, collector, registry)

	// Periodic sweep of expired session rows. Validity never depends on it;
	// Get enforces expiry at read time.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				n, err := sessions.CleanupExpired(sweepCtx)
				if err != nil {
					slog.Error("session sweep failed", "error", err)
					continue
				}
				collector.RecordSweep(n)
				if n > 0 {
					slog.Info("session sweep", "removed", n)
				}
			}
		}
	}()

	go func() {
		addr := ":" + cfg.AppPort
		slog.Info("server listening", "addr", addr, "env", cfg.AppEnv)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
