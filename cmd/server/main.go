package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/music-request-api/internal/config"
	"github.com/iliyamo/music-request-api/internal/database"
	"github.com/iliyamo/music-request-api/internal/queue"
	"github.com/iliyamo/music-request-api/internal/repository"
	"github.com/iliyamo/music-request-api/internal/router"
	"github.com/iliyamo/music-request-api/internal/service"
)

func main() {
	_ = godotenv.Load() // a missing .env is fine
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseOptions())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.CreateSchema(context.Background(), db, cfg.DBDriver); err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Leave the interface nil when events are off; a typed nil would not be.
	var events service.EventPublisher
	if cfg.EventsEnabled {
		events = queue.NewAMQPPublisher(cfg.AMQPURL)
	}
	if cfg.ActivityConsumerEnabled {
		go func() {
			if err := queue.StartActivityConsumer(ctx, cfg.AMQPURL, cfg.ActivityLogPath); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("activity consumer stopped", "err", err)
			}
		}()
	}

	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	requestRepo := repository.NewRequestRepo(db)
	commentRepo := repository.NewCommentRepo(db)

	sessions := service.NewSessionService(userRepo, sessionRepo, events)
	svc := router.Services{
		Users:    service.NewUserService(userRepo),
		Sessions: sessions,
		Requests: service.NewRequestService(sessions, requestRepo, events),
		Comments: service.NewCommentService(sessionRepo, requestRepo, commentRepo, events),
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}
	e := router.New(svc, router.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Cache:          config.LoadCacheConfig(),
		RateLimit:      config.LoadRateLimitConfig(),
		Redis:          rdb,
	})

	addr := ":" + cfg.Port
	go func() {
		slog.Info("listening", "addr", addr, "env", cfg.Env, "db_driver", cfg.DBDriver, "events", cfg.EventsEnabled)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "err", err)
	}
}
