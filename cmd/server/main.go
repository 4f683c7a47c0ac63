// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"vouch/internal/attachment"
	attstore "vouch/internal/attachment/store"
	"vouch/internal/badge"
	jwttoken "vouch/internal/jwt_token"
	"vouch/internal/nonce"
	"vouch/internal/platform/config"
	"vouch/internal/platform/database"
	"vouch/internal/platform/httpserver"
	"vouch/internal/platform/kafka/producer"
	"vouch/internal/platform/logger"
	"vouch/internal/platform/metrics"
	"vouch/internal/platform/middleware"
	platformredis "vouch/internal/platform/redis"
	"vouch/internal/verification/events"
	"vouch/internal/verification/handler"
	verifmetrics "vouch/internal/verification/metrics"
	"vouch/internal/verification/models"
	"vouch/internal/verification/service"
	verifstore "vouch/internal/verification/store"
	"vouch/pkg/platform/httputil"
	"vouch/pkg/platform/middleware/metadata"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing vouch", "addr", cfg.Addr)

	pool, err := database.New(cfg.Database)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	var meta service.MetaStore
	var resolver attachment.Resolver
	if pool != nil {
		defer pool.Close()
		meta = verifstore.NewPostgres(pool.DB())
		resolver = attstore.NewPostgres(pool.DB())
	} else {
		log.Warn("database not configured, using in-memory stores")
		meta = verifstore.NewInMemory()
		resolver = attstore.NewInMemory()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	var nonceStore nonce.Store
	if redisClient != nil {
		defer redisClient.Close()
		nonceStore = nonce.NewRedisStore(redisClient.Client)
	} else {
		log.Warn("redis not configured, using in-memory nonce store")
		nonceStore = nonce.NewInMemoryStore()
	}

	var kafkaProducer producer.Producer
	if cfg.Kafka.Brokers != "" {
		kp, err := producer.New(cfg.Kafka, log)
		if err != nil {
			log.Error("kafka init failed", "error", err)
			os.Exit(1)
		}
		kafkaProducer = kp
	} else {
		log.Warn("kafka not configured, events disabled")
		kafkaProducer = producer.NewNoopProducer(log)
	}
	defer kafkaProducer.Close()

	registry, err := models.NewRegistry(models.DefaultDocumentTypes()...)
	if err != nil {
		log.Error("document type registry invalid", "error", err)
		os.Exit(1)
	}

	validator := attachment.NewValidator(resolver)
	verifSvc := service.New(meta, validator, registry,
		service.WithLogger(log),
		service.WithMetrics(verifmetrics.New(prometheus.DefaultRegisterer)),
		service.WithPublisher(events.NewPublisher(kafkaProducer, cfg.Kafka.Topic, log)),
	)
	badges := badge.New(verifSvc, redisClient, cfg.BadgeCacheTTL, log)
	verifSvc.SetBadgeInvalidator(badges)

	jwtSvc := jwttoken.NewJWTService(cfg.JWTSigningKey, "vouch", "vouch")
	nonceSvc := nonce.NewService(nonceStore, cfg.NonceTTL)

	m := metrics.New()
	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(metadata.ClientMetadata)
	router.Use(middleware.Logger(log))
	router.Use(m.Latency)
	router.Use(middleware.Timeout(30 * time.Second))

	handler.New(verifSvc, badges, nonceSvc, validator, jwtSvc, registry, log).Register(router)
	router.Get("/healthz", healthHandler(pool, redisClient))
	router.Handle("/metrics", metrics.Handler())

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// healthHandler reports liveness of the configured backing stores. Components
// running on in-memory fallbacks are reported as skipped rather than failing.
func healthHandler(pool *database.Pool, redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := map[string]string{}

		if pool != nil {
			if err := pool.Health(ctx); err != nil {
				checks["database"] = err.Error()
				status = http.StatusServiceUnavailable
			} else {
				checks["database"] = "ok"
			}
		} else {
			checks["database"] = "skipped"
		}

		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			} else {
				checks["redis"] = "ok"
			}
		} else {
			checks["redis"] = "skipped"
		}

		body := map[string]any{"status": "ok", "checks": checks}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}
