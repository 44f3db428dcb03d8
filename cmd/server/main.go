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

	casestore "docket/internal/casefile/store"
	"docket/internal/classify"
	importeradapters "docket/internal/importer/adapters"
	importerhandler "docket/internal/importer/handler"
	"docket/internal/importer/lock"
	importermetrics "docket/internal/importer/metrics"
	"docket/internal/importer/ports"
	"docket/internal/importer/runstore"
	importerservice "docket/internal/importer/service"
	patternhandler "docket/internal/pattern/handler"
	patternservice "docket/internal/pattern/service"
	patternstore "docket/internal/pattern/store"
	personstore "docket/internal/person/store"
	"docket/internal/platform/config"
	"docket/internal/platform/httpserver"
	"docket/internal/platform/kafka"
	"docket/internal/platform/logger"
	"docket/internal/platform/postgres"
	"docket/internal/platform/redis"
	httptransport "docket/internal/transport/http"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal services.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		return err
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	producer, err := kafka.NewProducer(cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer producer.Close()

	persons := personstore.NewPostgres(db)
	cases := casestore.NewPostgres(db)
	runs := runstore.NewPostgres(db)

	patterns, err := patternservice.New(patternstore.NewPostgres(db), log)
	if err != nil {
		return err
	}

	var locker ports.Locker = lock.NewMemory()
	if redisClient != nil {
		locker = lock.NewRedis(redisClient.Client, cfg.Import.LockTTL)
	}

	importer, err := importerservice.New(
		persons,
		cases,
		patterns,
		classify.New(cfg.Import.HomeDistrict),
		locker,
		runs,
		importeradapters.NewKafkaEventSink(producer, log),
		importermetrics.New(),
		log,
		cfg.Import,
	)
	if err != nil {
		return err
	}

	checks := map[string]httptransport.HealthChecker{
		"postgres": postgres.NewHealth(db),
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Importer: importerhandler.New(importer, log),
		Patterns: patternhandler.New(patterns, log),
		Checks:   checks,
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting docket server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
