package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/petcare/internal/config"
	"github.com/mamadbah2/petcare/internal/repository/mongodb"
	"github.com/mamadbah2/petcare/internal/repository/sheets"
	"github.com/mamadbah2/petcare/internal/scheduler"
	"github.com/mamadbah2/petcare/internal/server/handlers"
	"github.com/mamadbah2/petcare/internal/server/router"
	archivesvc "github.com/mamadbah2/petcare/internal/service/archive"
	supplysvc "github.com/mamadbah2/petcare/internal/service/supply"
	authclient "github.com/mamadbah2/petcare/pkg/clients/auth"
	"github.com/mamadbah2/petcare/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := mongoRepo.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure mongodb indexes", zap.Error(err))
	}

	foodSvc := supplysvc.NewService(mongoRepo, mongoRepo, baseLogger.Named("svc.supply"))

	var sessionClient authclient.Client
	if cfg.Auth.Enabled() {
		sessionClient = authclient.NewClient(cfg.Auth)
		baseLogger.Info("session verification enabled", zap.String("base_url", cfg.Auth.BaseURL))
	} else {
		baseLogger.Warn("auth base url missing, falling back to X-User-ID header identity")
	}

	supplyHandler := handlers.NewSupplyHandler(foodSvc, baseLogger.Named("handlers.supply"))
	engine := router.New(supplyHandler, sessionClient, baseLogger.Named("router"))

	// The feeding log archive is optional; without credentials the server
	// runs the CRUD surface only.
	var sched *scheduler.Scheduler
	if cfg.Archive.Enabled() {
		exporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Archive, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}

		archiveSvc := archivesvc.NewService(mongoRepo, exporter, baseLogger.Named("svc.archive"))
		sched = scheduler.NewScheduler(cfg.Archive, archiveSvc, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Warn("archive credentials missing, feeding log export disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
