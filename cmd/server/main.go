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

	"github.com/mamadbah2/procurement/internal/access"
	"github.com/mamadbah2/procurement/internal/auth"
	"github.com/mamadbah2/procurement/internal/config"
	"github.com/mamadbah2/procurement/internal/document"
	"github.com/mamadbah2/procurement/internal/repository"
	"github.com/mamadbah2/procurement/internal/repository/memory"
	"github.com/mamadbah2/procurement/internal/repository/mongodb"
	"github.com/mamadbah2/procurement/internal/repository/sheets"
	"github.com/mamadbah2/procurement/internal/scheduler"
	"github.com/mamadbah2/procurement/internal/seed"
	"github.com/mamadbah2/procurement/internal/server/handlers"
	"github.com/mamadbah2/procurement/internal/server/router"
	notifysvc "github.com/mamadbah2/procurement/internal/service/notify"
	procurementsvc "github.com/mamadbah2/procurement/internal/service/procurement"
	reportingsvc "github.com/mamadbah2/procurement/internal/service/reporting"
	workflowsvc "github.com/mamadbah2/procurement/internal/service/workflow"
	"github.com/mamadbah2/procurement/pkg/clients/webhook"
	"github.com/mamadbah2/procurement/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.Env))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := openStore(context.Background(), cfg, baseLogger.Named("repo"))
	if err != nil {
		baseLogger.Fatal("failed to init repository", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close repository", zap.Error(err))
		}
	}()

	docs, err := document.NewGenerator(document.Settings{
		OrgName:        cfg.Document.OrgName,
		CurrencySymbol: cfg.Document.CurrencySymbol,
		Locale:         cfg.Document.Locale,
	}, baseLogger.Named("document"))
	if err != nil {
		baseLogger.Fatal("failed to init document generator", zap.Error(err))
	}

	var notifier *notifysvc.Service
	if cfg.Notify.WebhookURL != "" {
		notifier = notifysvc.NewService(webhook.NewClient(cfg.Notify), baseLogger.Named("svc.notify"))
		baseLogger.Info("notification webhook enabled")
	} else {
		notifier = notifysvc.NewService(nil, baseLogger.Named("svc.notify"))
		baseLogger.Warn("notification webhook missing, notifications disabled")
	}

	var register procurementsvc.Register
	if cfg.Sheets.Enabled() {
		sheet, err := sheets.NewClient(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets register", zap.Error(err))
		}
		register = sheets.NewPurchaseOrderRegister(sheet)
		baseLogger.Info("purchase order register enabled")
	}

	enforcer, err := access.NewEnforcer()
	if err != nil {
		baseLogger.Fatal("failed to init route enforcer", zap.Error(err))
	}

	directory := auth.NewDirectory(seed.Users(), cfg.Auth.DemoPassword)
	authSvc := auth.NewService(
		directory,
		auth.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL),
		auth.NewRevocations(),
		baseLogger.Named("svc.auth"))
	workflowSvc := workflowsvc.NewService(store, notifier, baseLogger.Named("svc.workflow"))
	procurementSvc := procurementsvc.NewService(store, docs, register, notifier, baseLogger.Named("svc.procurement"),
		procurementsvc.WithPeople(directory))
	reportingSvc := reportingsvc.NewService(store, store, docs.Money(), baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Auth:        handlers.NewAuthHandler(authSvc, cfg.Auth.SessionTTL, baseLogger.Named("handlers.auth")),
		Indents:     handlers.NewIndentHandler(workflowSvc, baseLogger.Named("handlers.indents")),
		Procurement: handlers.NewProcurementHandler(procurementSvc, baseLogger.Named("handlers.procurement")),
		Reports:     handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
		Pages:       handlers.NewPageHandler(workflowSvc, procurementSvc, baseLogger.Named("handlers.pages")),
	}, authSvc, enforcer, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Scheduler, scheduler.Jobs{
		Enquiries:   procurementSvc,
		Reports:     reportingSvc,
		Revocations: authSvc.Revocations(),
		Publisher:   notifier,
	}, baseLogger.Named("scheduler"))
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
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

// openStore connects the configured backend and loads the demo data into it
// when SEED_DEMO_DATA is set.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Store, error) {
	var data repository.Dataset
	if cfg.Storage.SeedDemo {
		data = seed.Dataset(time.Now())
	}

	switch cfg.Storage.Driver {
	case config.StorageMongoDB:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		repo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, err
		}
		if cfg.Storage.SeedDemo {
			if err := repo.Seed(connectCtx, data); err != nil {
				_ = repo.Close(ctx)
				return nil, err
			}
		}
		log.Info("mongodb repository ready", zap.String("db", cfg.MongoDB.DBName))
		return repo, nil
	default:
		log.Info("in-memory repository ready", zap.Bool("seeded", cfg.Storage.SeedDemo))
		return memory.New(data), nil
	}
}
