package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mnzmnz10/yeter-sub001/internal/app"
	"github.com/mnzmnz10/yeter-sub001/internal/auth"
	"github.com/mnzmnz10/yeter-sub001/internal/catalog"
	"github.com/mnzmnz10/yeter-sub001/internal/fx"
	"github.com/mnzmnz10/yeter-sub001/internal/masterdata/categories"
	"github.com/mnzmnz10/yeter-sub001/internal/masterdata/companies"
	"github.com/mnzmnz10/yeter-sub001/internal/observability"
	"github.com/mnzmnz10/yeter-sub001/internal/platform/cache"
	"github.com/mnzmnz10/yeter-sub001/internal/platform/db"
	"github.com/mnzmnz10/yeter-sub001/internal/quote"
	"github.com/mnzmnz10/yeter-sub001/internal/report"
	"github.com/mnzmnz10/yeter-sub001/internal/share"
	"github.com/mnzmnz10/yeter-sub001/internal/workspace"
	"github.com/mnzmnz10/yeter-sub001/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	rateStore := fx.NewStore(cfg.BaseCurrency)
	rateProvider := fx.NewHTTPProvider(cfg.FxEndpoint, cfg.BaseCurrency)
	rateCache := fx.NewCache(redisClient, cfg.FxCacheTTL)
	fxService := fx.NewService(rateProvider, rateStore, rateCache, logger)
	if err := fxService.Bootstrap(ctx); err != nil {
		logger.Warn("restore cached rate table", slog.Any("error", err))
	}
	if rateStore.Version() == 0 {
		// Foreign-currency items stay unpriced until a refresh lands, so try
		// once at startup instead of waiting a full interval.
		if _, err := fxService.Refresh(ctx); err != nil {
			logger.Warn("initial rate refresh", slog.Any("error", err))
		}
	}
	go fxService.AutoRefresh(ctx, cfg.FxRefreshInterval, metrics.ObserveFxRefresh)

	authStore := auth.NewStore(redisClient, cfg.SessionTTL)
	authService := auth.NewService(authStore, cfg.OperatorPasswordHash)
	authHandler := auth.NewHandler(logger, authService)

	catalogRepo := catalog.NewRepository(dbpool)
	catalogService := catalog.NewService(catalogRepo, rateStore)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	quoteRepo := quote.NewRepository(dbpool)
	quoteService := quote.NewService(quoteRepo, logger)
	quoteHandler := quote.NewHandler(logger, quoteService, report.NewPDFGenerator(), share.NewWhatsAppLinker())

	manager := workspace.NewManager(logger, func() *workspace.Workspace {
		return workspace.New(logger, catalogService, rateStore, quoteService, workspace.Config{
			PageSize: cfg.CatalogPageSize,
			Debounce: cfg.FilterDebounce,
		})
	}, cfg.WorkspaceTTL)
	manager.Janitor(ctx, 10*time.Minute)
	metrics.RegisterWorkspaceGauge(manager.Count)
	workspaceHandler := workspace.NewHandler(logger, manager, metrics)

	fxHandler := fx.NewHandler(logger, fxService, metrics)

	companiesHandler := companies.NewHandler(logger, companies.NewService(companies.NewRepository(dbpool)))
	categoriesHandler := categories.NewHandler(logger, categories.NewService(categories.NewRepository(dbpool)))

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		AuthService:       authService,
		AuthHandler:       authHandler,
		WorkspaceHandler:  workspaceHandler,
		CatalogHandler:    catalogHandler,
		QuoteHandler:      quoteHandler,
		FxHandler:         fxHandler,
		CompaniesHandler:  companiesHandler,
		CategoriesHandler: categoriesHandler,
		JobsHandler:       jobsHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
