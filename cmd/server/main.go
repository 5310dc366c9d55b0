package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"credito/internal/audit"
	"credito/internal/cpf/cache"
	cpfHandler "credito/internal/cpf/handler"
	cpfMetrics "credito/internal/cpf/metrics"
	"credito/internal/cpf/service"
	"credito/internal/platform/config"
	"credito/internal/platform/httpserver"
	"credito/internal/platform/logger"
	"credito/internal/platform/metrics"
	"credito/internal/platform/redis"
	httptransport "credito/internal/transport/http"
	"credito/pkg/platform/circuit"
)

const (
	auditBuffer   = 256
	auditCapacity = 10_000
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	checks := map[string]httptransport.HealthCheck{}
	validationCache, closeCache, err := buildCache(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeCache()

	publisher := audit.NewPublisher(auditBuffer, log)
	worker := audit.NewWorker(audit.NewInMemoryStore(auditCapacity), publisher.Inbox(), log)

	svc := service.New(validationCache,
		service.WithLogger(log),
		service.WithMetrics(cpfMetrics.New(reg)),
		service.WithAuditPublisher(publisher),
		service.WithRegulatedMode(cfg.RegulatedMode),
		service.WithBatchLimits(cfg.CPF.BatchMax, cfg.CPF.BatchConcurrency),
		service.WithGenerateMax(cfg.CPF.GenerateMax),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:     log,
		Metrics:    metrics.New(reg),
		Gatherer:   reg,
		CPF:        cpfHandler.New(svc, log),
		AdminToken: cfg.AdminToken,
		Checks:     checks,
	})
	srv := httpserver.New(cfg.Addr, router, log)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(workerCtx)
	})
	g.Go(func() error {
		log.Info("starting credito", "addr", cfg.Addr, "regulated_mode", cfg.RegulatedMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		// Stop the audit worker only after in-flight requests have emitted.
		stopWorker()
		if err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// buildCache returns an in-memory cache, or Redis with an in-memory
// fallback when REDIS_URL is set. A Redis that is down at startup leaves
// the service on memory alone.
func buildCache(ctx context.Context, cfg config.Server, log *slog.Logger, checks map[string]httptransport.HealthCheck) (cache.Cache, func(), error) {
	memory := cache.NewMemory(cfg.CPF.CacheMaxEntries)
	noop := func() {}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, using in-memory cpf cache", "error", err)
		return memory, noop, nil
	}
	if client == nil {
		return memory, noop, nil
	}

	primary, err := cache.NewRedis(client.Client, cfg.CPF.CacheTTL, []byte(cfg.CPF.CacheKey))
	if err != nil {
		_ = client.Close()
		return nil, noop, fmt.Errorf("build redis cache: %w", err)
	}
	checks["redis"] = client.Health

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn("failed to close redis client", "error", err)
		}
	}
	return cache.NewFallback(primary, memory, circuit.New("cpf-cache"), log), closeFn, nil
}
