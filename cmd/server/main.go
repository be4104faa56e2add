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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/mamadbah2/frostbyte/internal/config"
	"github.com/mamadbah2/frostbyte/internal/observability"
	"github.com/mamadbah2/frostbyte/internal/repository/memory"
	"github.com/mamadbah2/frostbyte/internal/repository/mongodb"
	"github.com/mamadbah2/frostbyte/internal/repository/postgres"
	"github.com/mamadbah2/frostbyte/internal/repository/sheets"
	"github.com/mamadbah2/frostbyte/internal/scheduler"
	"github.com/mamadbah2/frostbyte/internal/server/handlers"
	"github.com/mamadbah2/frostbyte/internal/server/router"
	catalogsvc "github.com/mamadbah2/frostbyte/internal/service/catalog"
	"github.com/mamadbah2/frostbyte/internal/service/feasibility"
	reportingsvc "github.com/mamadbah2/frostbyte/internal/service/reporting"
	"github.com/mamadbah2/frostbyte/pkg/clients/webhook"
	"github.com/mamadbah2/frostbyte/pkg/logger"
)

// entityStore is satisfied by both store drivers.
type entityStore interface {
	catalogsvc.Repository
	feasibility.Store
	Ping(ctx context.Context) error
	Close()
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init entity store", zap.Error(err))
	}
	defer store.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewValidationMetrics(registry)

	feasibilitySvc := feasibility.NewService(store, metrics, baseLogger.Named("svc.feasibility"))
	catalogSvc := catalogsvc.NewService(store, baseLogger.Named("svc.catalog"))

	sinks := reportingsvc.Sinks{Metrics: metrics}

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewReportRepository(ctx, cfg.MongoDB)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks.Archive = mongoRepo
		baseLogger.Info("report archive enabled", zap.String("db", cfg.MongoDB.DBName))
	} else {
		baseLogger.Warn("MONGODB_URI missing, report history disabled")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sinks.Sheet = sheetsRepo
		baseLogger.Info("violation sheet export enabled")
	}

	if cfg.Alerts.Enabled() {
		sinks.Notifier = webhook.NewClient(cfg.Alerts)
		baseLogger.Info("infeasibility alerts enabled")
	}

	reportingSvc := reportingsvc.NewService(feasibilitySvc, sinks, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Catalog:    handlers.NewCatalogHandler(catalogSvc, baseLogger.Named("handlers.catalog")),
		Validation: handlers.NewValidationHandler(feasibilitySvc, baseLogger.Named("handlers.validation")),
		Reports:    handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
	}, router.Options{Store: store, Gatherer: registry}, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Validation, reportingSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, base *zap.Logger) (entityStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		base.Warn("using in-memory entity store, data is lost on restart")
		return memory.NewStore(), nil
	case config.StoreDriverPostgres:
		db, err := postgres.NewDatabase(ctx, cfg.Postgres, base.Named("repo.postgres"))
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
