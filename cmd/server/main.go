package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/glowdesk/booking-system/docs"
	"github.com/glowdesk/booking-system/internal/api"
	"github.com/glowdesk/booking-system/internal/core/service"
	"github.com/glowdesk/booking-system/internal/infrastructure/config"
	mongodb "github.com/glowdesk/booking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/glowdesk/booking-system/internal/infrastructure/db/redis"
	"github.com/glowdesk/booking-system/internal/infrastructure/queue"
	"github.com/glowdesk/booking-system/pkg/logger"
)

// @title                      GlowDesk Booking API
// @version                    1.0
// @description                Authentication and dashboard aggregation API for the GlowDesk salon booking platform.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Development(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid mongo configuration")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	// Connectivity is checked best-effort: a store that is down at boot
	// must not prevent startup, the dashboard serves fallback payloads
	// until it recovers.
	if err := mongodb.Ping(ctx, client, 0); err != nil {
		log.Warn().Err(err).Msg("mongo unreachable at startup, continuing degraded")
	}

	rdb := redisdb.Connect(redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()
	if err := redisdb.Ping(ctx, rdb, 0); err != nil {
		log.Warn().Err(err).Msg("redis unreachable at startup, google login state store degraded")
	}

	ensureIndexes(ctx, db, log)

	auditService := service.NewAuditService(mongodb.NewStatusEventRepository(db), log)
	dispatcher := queue.NewDispatcher(0, auditService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, dispatcher, cfg, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates the MongoDB indexes the hot queries depend on.
// Failures are logged but not fatal: the collections work without them,
// just slower, and the store may simply be down at boot.
func ensureIndexes(ctx context.Context, db *mongo.Database, log zerolog.Logger) {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewAppointmentRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("appointment index creation failed")
	}
}
