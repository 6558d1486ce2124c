package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/config"
	"github.com/alimarchal/maharat-sub001/internal/infra"
	"github.com/alimarchal/maharat-sub001/internal/logger"
	"github.com/alimarchal/maharat-sub001/internal/router"
	"github.com/alimarchal/maharat-sub001/internal/worker"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.Env, cfg.LogLevel)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := infra.NewDatabase(cfg.DatabaseURL, infra.DatabaseOptions{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if cfg.AutoMigrate {
		if err := infra.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		log.Info().Msg("schema migrated")
	}

	rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Composition root: the dispatcher is the service layer's view of the
	// queue, the pool consumes it with handlers built on the same services.
	dispatcher := worker.NewDispatcher(rdb)
	storage := infra.NewLocalStorage(cfg.StoragePath)
	svcs := router.NewServices(cfg, db, rdb, dispatcher, storage)

	mailer := infra.NewMailer(cfg)
	if !mailer.Configured() {
		log.Warn().Msg("SMTP_HOST not set; email jobs will fail and land in the dead letter queue")
	}

	pool := worker.NewPool(rdb)
	pool.Handle(worker.JobEmail, worker.EmailHandler(mailer))
	pool.Handle(worker.JobNotificationDefaults, worker.NotificationDefaultsHandler(svcs.Notifications))
	pool.Start(ctx, cfg.WorkerPoolSize)
	worker.StartRetryScheduler(ctx, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(ctx, cfg, db, rdb, dispatcher, svcs),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("maharat API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	cancel()
	pool.Wait()
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close")
	}
	log.Info().Msg("server exited")
}
