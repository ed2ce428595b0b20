// Command server runs the team-matching board: session identity, post
// lifecycle, phone resolution, and the merged feed.
//
// Every backing dependency is optional. Without DATABASE_URL posts live in
// memory, without REDIS_URL sessions live in memory, without KAFKA_BROKERS the
// audit trail stays in process. A bare `go run ./cmd/server` gives a fully
// working dev instance.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"teamup/internal/audit"
	httpapi "teamup/internal/http"
	"teamup/internal/identity"
	identityhandler "teamup/internal/identity/handler"
	"teamup/internal/listing"
	listinghandler "teamup/internal/listing/handler"
	listingmetrics "teamup/internal/listing/metrics"
	"teamup/internal/platform/config"
	"teamup/internal/platform/httpserver"
	"teamup/internal/platform/logger"
	redisplatform "teamup/internal/platform/redis"
	postshandler "teamup/internal/posts/handler"
	postsmetrics "teamup/internal/posts/metrics"
	postsservice "teamup/internal/posts/service"
	"teamup/internal/posts/store/individual"
	"teamup/internal/posts/store/team"
	"teamup/internal/resolver"
	resolverhandler "teamup/internal/resolver/handler"
	resolvermetrics "teamup/internal/resolver/metrics"
	"teamup/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	// Post collections: postgres when configured, memory otherwise.
	var (
		individuals individual.Store = individual.NewInMemory()
		teams       team.Store       = team.NewInMemory()
		dbHealth    func() error
	)
	if cfg.DatabaseURL != "" {
		db, err := storage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		indStore := individual.NewPostgres(db)
		teamStore := team.NewPostgres(db)
		if err := indStore.EnsureSchema(ctx); err != nil {
			log.Error("individuals schema setup failed", "error", err)
			os.Exit(1)
		}
		if err := teamStore.EnsureSchema(ctx); err != nil {
			log.Error("teams schema setup failed", "error", err)
			os.Exit(1)
		}
		individuals, teams = indStore, teamStore
		dbHealth = db.Ping
		log.Info("post collections backed by postgres")
	} else {
		log.Info("post collections backed by memory, set DATABASE_URL for persistence")
	}

	// Session identities: redis when configured, memory otherwise.
	var sessions identity.Store = identity.NewInMemoryStore()
	redisClient, err := redisplatform.New(config.RedisFromEnv())
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessions = identity.NewRedisStore(redisClient.Client, cfg.SessionTTL)
		log.Info("session identities backed by redis")
	}

	// Audit trail: kafka when configured, memory otherwise.
	var auditSink audit.Store = audit.NewInMemoryStore()
	if cfg.KafkaBrokers != "" {
		kafkaStore, err := audit.NewKafkaStore(ctx, strings.Split(cfg.KafkaBrokers, ","), audit.DefaultTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer kafkaStore.Close()
		auditSink = kafkaStore
		log.Info("audit trail backed by kafka", "topic", audit.DefaultTopic)
	}
	auditPub := audit.NewPublisher(auditSink, log)

	identitySvc := identity.NewService(sessions)
	tokens := identity.NewTokenService(cfg.SessionSigningKey, cfg.SessionTTL)
	postsSvc := postsservice.New(individuals, teams, auditPub, postsmetrics.New(), log)
	resolverSvc := resolver.New(individuals, teams, resolvermetrics.New())
	aggregator := listing.New(individuals, teams, listingmetrics.New())

	health := func() error {
		if dbHealth != nil {
			if err := dbHealth(); err != nil {
				return err
			}
		}
		if redisClient != nil {
			return redisClient.Health(ctx)
		}
		return nil
	}

	router := httpapi.NewRouter(tokens, identitySvc, log, health,
		identityhandler.New(identitySvc, tokens, auditPub, log, cfg.SessionTTL),
		postshandler.New(postsSvc, log),
		resolverhandler.New(resolverSvc, log),
		listinghandler.New(aggregator, log, cfg.PreviewFeedLimit),
	)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting teamup board", "addr", cfg.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", "error", err)
		os.Exit(1)
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
