package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-tours/internal/adapter"
	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/handler"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/observability"
	"github.com/MKhiriev/go-tours/internal/server"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/workers"
	"github.com/MKhiriev/go-tours/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := printBuildInfo()

	log := logger.NewLogger("go-tours-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = log.ForEnv(cfg.App.Env)

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	mail, err := adapter.NewMailAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail adapter")
	}
	payment, err := adapter.NewPaymentAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating payment adapter")
	}

	repositories := store.NewRepositories(db, log)
	services, err := service.NewServices(repositories, service.Adapters{Mail: mail, Payment: payment}, cfg.App, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	redisClient := newRedisClient(ctx, cfg.Storage.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	handlers, err := handler.NewHandlers(services, metrics, redisClient, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg := workers.NewWorkers(
		workers.NewResetTokenSweeper(repositories.UserRepository, cfg.Workers.ResetTokenSweepInterval, metrics, log),
	)

	srv, err := server.NewServer(handlers, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	info := services.AppInfoService.GetAppInfo(ctx)
	log.Info().Str("version", info.Version).Str("env", info.Env).Msg("starting go-tours")
	srv.RunServer()
}

// newRedisClient connects to the rate limiter backend. It returns nil when no
// address is configured; an unreachable Redis is only logged because the
// limiter lets requests through on errors.
func newRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) *redis.Client {
	if cfg.Address == "" {
		log.Info().Msg("redis address is empty, rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("address", cfg.Address).Msg("redis is unreachable, requests will not be rate limited until it recovers")
	}
	return client
}

func printBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
