package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/jwhitcraft/precast-tracker/internal/config"
	"github.com/jwhitcraft/precast-tracker/internal/repository/mongodb"
	"github.com/jwhitcraft/precast-tracker/internal/repository/sheets"
	"github.com/jwhitcraft/precast-tracker/internal/scheduler"
	"github.com/jwhitcraft/precast-tracker/internal/server/handlers"
	"github.com/jwhitcraft/precast-tracker/internal/server/router"
	reportsvc "github.com/jwhitcraft/precast-tracker/internal/service/report"
	seedersvc "github.com/jwhitcraft/precast-tracker/internal/service/seeder"
	testersvc "github.com/jwhitcraft/precast-tracker/internal/service/tester"
	"github.com/jwhitcraft/precast-tracker/pkg/clients/notify"
	"github.com/jwhitcraft/precast-tracker/pkg/logger"
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

	reportSvc := reportsvc.NewService(mongoRepo, baseLogger.Named("svc.report"))
	testerSvc := testersvc.NewService(mongoRepo, baseLogger.Named("svc.tester"))
	seederSvc := seedersvc.NewService(mongoRepo, baseLogger.Named("svc.seeder"))

	var exporter sheets.Exporter
	if cfg.Sheets.CredentialsPath != "" {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheets report export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, report export disabled")
	}

	var notifier notify.Client
	if cfg.Digest.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Digest.WebhookURL)
		baseLogger.Info("tester digest webhook enabled")
	} else {
		baseLogger.Warn("digest webhook missing, tester digest disabled")
	}

	reportHandler := handlers.NewReportHandler(reportSvc, baseLogger.Named("handlers.report"))
	testerHandler := handlers.NewTesterHandler(testerSvc, baseLogger.Named("handlers.tester"))
	seederHandler := handlers.NewSeederHandler(seederSvc, baseLogger.Named("handlers.seeder"))
	engine := router.New(reportHandler, testerHandler, seederHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, testerSvc, reportSvc, exporter, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

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
