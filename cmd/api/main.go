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

	"livelocal/internal/booking"
	"livelocal/internal/httpapi"
	"livelocal/internal/notify"
	"livelocal/pkg/config"
	"livelocal/pkg/db"
	"livelocal/pkg/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		log.Error("db open", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer conn.Close()

	if cfg.MigrationsPath != "" {
		version, err := db.Migrate(cfg.MigrationsPath, cfg)
		if err != nil {
			log.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("migrations applied", slog.Uint64("version", uint64(version)))
	}

	var notifier booking.Notifier
	if cfg.RedisURL != "" {
		rdb, err := notify.Connect(ctx, cfg.RedisURL)
		if err != nil {
			// Status changes are still persisted; only the realtime fan-out is lost.
			log.Warn("redis unavailable, status notifications disabled", slog.String("error", err.Error()))
		} else {
			defer rdb.Close()
			notifier = notify.NewRedisNotifier(rdb)
		}
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cfg:      cfg,
		DB:       conn,
		Log:      log,
		Notifier: notifier,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http listening", slog.String("addr", cfg.HTTPAddr), slog.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http serve", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
}
