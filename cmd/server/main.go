package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	adminCache "docpanel/internal/admins/cache"
	adminHandler "docpanel/internal/admins/handler"
	adminService "docpanel/internal/admins/service"
	adminStore "docpanel/internal/admins/store"
	authzHandler "docpanel/internal/authz/handler"
	authzService "docpanel/internal/authz/service"
	authzStore "docpanel/internal/authz/store"
	panelhttp "docpanel/internal/http"
	"docpanel/internal/notify"
	"docpanel/internal/notify/queue"
	"docpanel/internal/notify/worker"
	pendingHandler "docpanel/internal/pending/handler"
	pendingService "docpanel/internal/pending/service"
	pendingStore "docpanel/internal/pending/store"
	"docpanel/internal/platform/config"
	"docpanel/internal/platform/httpserver"
	"docpanel/internal/platform/logger"
	"docpanel/internal/platform/metrics"
	"docpanel/internal/platform/postgres"
	platformredis "docpanel/internal/platform/redis"
	requestsHandler "docpanel/internal/requests/handler"
	requestsStore "docpanel/internal/requests/store"
	statsHandler "docpanel/internal/stats/handler"
	statsStore "docpanel/internal/stats/store"
)

// main wires dependencies explicitly and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	// Redis is optional; the admin cache degrades to direct store reads.
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	m := metrics.New()

	admins := adminService.New(adminStore.NewPostgres(db), adminCache.New(redisClient, cfg.AdminCacheTTL), log)
	authz := authzService.New(authzStore.NewPostgres(db), admins, m, log)

	outbox := queue.NewPostgres(db)
	dispatcher := notify.NewDispatcher(outbox, m, log)
	pending := pendingService.New(pendingStore.NewPostgres(db), dispatcher, admins, cfg.PendingTTL, m, log)

	health := []panelhttp.HealthCheck{
		{Name: "base_de_datos", Check: db.PingContext},
	}
	if redisClient != nil {
		health = append(health, panelhttp.HealthCheck{Name: "redis", Check: redisClient.Health})
	} else {
		health = append(health, panelhttp.HealthCheck{Name: "redis"})
	}

	var kafkaClient *kgo.Client
	if len(cfg.KafkaBrokers) > 0 {
		kafkaClient, err = kgo.NewClient(kgo.SeedBrokers(cfg.KafkaBrokers...))
		if err != nil {
			log.Error("kafka client failed", "error", err.Error())
			os.Exit(1)
		}
		defer kafkaClient.Close()
		health = append(health, panelhttp.HealthCheck{Name: "kafka", Check: kafkaClient.Ping})

		relay := worker.New(outbox, kafkaClient, cfg.KafkaTopic, cfg.RelayInterval, m, log)
		go func() {
			if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("notification relay stopped", "error", err.Error())
			}
		}()
	} else {
		health = append(health, panelhttp.HealthCheck{Name: "kafka"})
		log.Warn("kafka brokers not configured, notifications stay queued")
	}

	router := panelhttp.New(panelhttp.Config{
		Logger:  log,
		Metrics: m,
		Modules: []panelhttp.Registrar{
			adminHandler.New(admins, log),
			authzHandler.New(authz, admins, log),
			pendingHandler.New(pending, log),
			requestsHandler.New(requestsStore.NewPostgres(db), log),
			statsHandler.New(statsStore.NewPostgres(db), log),
		},
		Health: health,
	})

	srv := httpserver.New(cfg.Addr, router, cfg.HTTPReadTimeout, cfg.HTTPWriteTimeout)

	go func() {
		log.Info("admin panel listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}
