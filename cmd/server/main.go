package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/bootstrap"
	"github.com/mamadbah2/salesrep/internal/config"
	"github.com/mamadbah2/salesrep/internal/repository/sheets"
	"github.com/mamadbah2/salesrep/internal/scheduler"
	"github.com/mamadbah2/salesrep/internal/server/handlers"
	"github.com/mamadbah2/salesrep/internal/server/router"
	cataloguesvc "github.com/mamadbah2/salesrep/internal/service/catalogue"
	reportingsvc "github.com/mamadbah2/salesrep/internal/service/reporting"
	tallysvc "github.com/mamadbah2/salesrep/internal/service/tally"
	visitsvc "github.com/mamadbah2/salesrep/internal/service/visits"
	whatsappclient "github.com/mamadbah2/salesrep/pkg/clients/whatsapp"
	"github.com/mamadbah2/salesrep/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File}))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := bootstrap.OpenStore(context.Background(), *cfg, baseLogger.Named("repo"))
	if err != nil {
		baseLogger.Fatal("failed to init store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close store", zap.Error(err))
		}
	}()

	var sheetWriter sheets.Writer
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetWriter = sheetsRepo
	} else {
		baseLogger.Warn("google sheets not configured, report export disabled")
	}

	var sender whatsappclient.Sender
	if cfg.WhatsApp.Enabled() {
		sender = whatsappclient.NewClient(cfg.WhatsApp)
	} else {
		baseLogger.Warn("whatsapp not configured, report delivery disabled")
	}

	loc := cfg.Location()
	ledger := visitsvc.NewLedger(store, baseLogger.Named("svc.visits"), visitsvc.WithLocation(loc))
	tallySvc := tallysvc.NewService(store, cfg.Reporting.ReconcileWorkers, baseLogger.Named("svc.tally"))
	catalogueSvc := cataloguesvc.NewService(store, baseLogger.Named("svc.catalogue"))
	reportingSvc := reportingsvc.NewService(ledger, sheetWriter, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Catalogue: handlers.NewCatalogueHandler(catalogueSvc, baseLogger.Named("handlers.catalogue")),
		Visits:    handlers.NewVisitHandler(ledger, tallySvc, baseLogger.Named("handlers.visits")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, loc, reportingSvc, tallySvc, sender, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
