package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/mnzmnz10/yeter-sub001/internal/app"
	"github.com/mnzmnz10/yeter-sub001/internal/fx"
	"github.com/mnzmnz10/yeter-sub001/internal/platform/cache"
	"github.com/mnzmnz10/yeter-sub001/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	rateStore := fx.NewStore(cfg.BaseCurrency)
	rateProvider := fx.NewHTTPProvider(cfg.FxEndpoint, cfg.BaseCurrency)
	rateCache := fx.NewCache(redisClient, cfg.FxCacheTTL)
	fxService := fx.NewService(rateProvider, rateStore, rateCache, logger)
	if err := fxService.Bootstrap(ctx); err != nil {
		logger.Warn("restore cached rate table", slog.Any("error", err))
	}

	refreshJob := jobs.NewFxRefreshJob(fxService, logger, nil)

	refreshTask, err := jobs.NewFxRefreshTask(false)
	if err != nil {
		logger.Error("build refresh task", slog.Any("error", err))
		os.Exit(1)
	}

	cronSpec := "@every 30m"
	if cfg.FxRefreshInterval > 0 {
		cronSpec = "@every " + cfg.FxRefreshInterval.String()
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskFxRefresh, Handler: refreshJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cronSpec, Task: refreshTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	// Queue one refresh right away so the cached table does not wait for
	// the first cron tick after a restart.
	client, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	if _, err := client.EnqueueFxRefresh(ctx, false); err != nil {
		logger.Warn("enqueue startup refresh", slog.Any("error", err))
	}
	if err := client.Close(); err != nil {
		logger.Warn("job client close", slog.Any("error", err))
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
