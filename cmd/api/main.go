package main

import (
	"context"
	"net/http"
	"os"

	"github.com/adityarao/billsync-backend/api/routes"
	"github.com/adityarao/billsync-backend/internal/audit"
	"github.com/adityarao/billsync-backend/internal/ingest"
	"github.com/adityarao/billsync-backend/internal/jobs"
	"github.com/adityarao/billsync-backend/pkg/config"
	"github.com/adityarao/billsync-backend/pkg/db"
	"github.com/adityarao/billsync-backend/pkg/logger"
	"github.com/adityarao/billsync-backend/pkg/metrics"
	"github.com/adityarao/billsync-backend/pkg/migrate"
	"github.com/adityarao/billsync-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tracker := jobs.NewTracker()
	ingestRepo := ingest.NewRepository(dbClient.DB())
	ingestService := ingest.NewService(ingest.ServiceParams{
		Committer: ingest.NewCommitter(dbClient, ingestRepo),
		Tracker:   tracker,
		Logger:    logg,
		Metrics:   metrics.NewIngestMetrics(registry),
		SheetName: cfg.Ingest.SheetName,
	})
	auditService := audit.NewService(audit.NewRepository(dbClient.DB()))

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:        cfg,
			Logger:        logg,
			DBPinger:      dbClient,
			RedisPinger:   redisClient,
			IdempStore:    redisClient,
			IngestService: ingestService,
			AuditService:  auditService,
			Registry:      registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
