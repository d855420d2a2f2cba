package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mnzmnz10/yeter-sub001/internal/fx"
	jobmetrics "github.com/mnzmnz10/yeter-sub001/internal/jobs"
)

// RateRefresher describes the behaviour required to install a fresh rate table.
type RateRefresher interface {
	Refresh(ctx context.Context) (fx.Table, error)
}

// FxRefreshJob coordinates the scheduled and forced rate refresh workflow.
type FxRefreshJob struct {
	Service RateRefresher
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewFxRefreshJob constructs the job handler.
func NewFxRefreshJob(service RateRefresher, logger *slog.Logger, metrics *jobmetrics.Metrics) *FxRefreshJob {
	return &FxRefreshJob{
		Service: service,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes one rate refresh. A provider failure is returned to Asynq
// so the task retries; the previous table stays installed meanwhile.
func (j *FxRefreshJob) Handle(ctx context.Context, task *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("fx refresh: dependencies not configured")
	}
	var payload FxRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskFxRefresh)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	start := j.now()
	table, err := j.Service.Refresh(ctx)
	if err != nil {
		resultErr = err
		j.log().Error("refresh rate table", slog.Bool("forced", payload.Forced), slog.Any("error", err))
		return resultErr
	}

	j.metrics().SetRateTableTimestamp(table.FetchedAt())
	j.log().Info("rate table installed",
		slog.Bool("forced", payload.Forced),
		slog.Int("currencies", len(table.Currencies())),
		slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *FxRefreshJob) metrics() *jobmetrics.Metrics {
	if j != nil && j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *FxRefreshJob) log() *slog.Logger {
	if j != nil && j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskFxRefresh))
	}
	return slog.Default().With(slog.String("job", TaskFxRefresh))
}

func (j *FxRefreshJob) now() time.Time {
	if j != nil && j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

// WithClock overrides the internal clock for deterministic tests.
func (j *FxRefreshJob) WithClock(clock func() time.Time) {
	if j != nil && clock != nil {
		j.clock = clock
	}
}
