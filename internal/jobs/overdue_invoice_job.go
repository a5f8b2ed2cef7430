package jobs

import (
	"context"
	"fmt"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/pkg/logging"
	"freight/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const OverdueInvoiceJobName = "overdue_invoice_sweep"

// OverdueMarker is the use case the sweep drives.
type OverdueMarker interface {
	Handle(ctx context.Context, cmd commands.MarkOverdueInvoicesCommand) (int, error)
}

// OverdueInvoiceJob marks Pending invoices past their due date as Overdue on
// a cron schedule with a seconds field. A run keeps taking batches until one
// comes back short; overlapping runs are skipped.
type OverdueInvoiceJob struct {
	handler   OverdueMarker
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewOverdueInvoiceJob(
	handler OverdueMarker,
	schedule string,
	batchSize int,
	logger *zap.Logger,
	m *metrics.Metrics,
) *OverdueInvoiceJob {
	logger = logger.With(zap.String("component", OverdueInvoiceJobName))
	cronLogger := zapCronLogger{logger.Sugar()}

	return &OverdueInvoiceJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger:  logger,
		metrics: m,
	}
}

// Start schedules the sweep. An invalid schedule is reported here.
func (j *OverdueInvoiceJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := logging.WithLogger(context.Background(), j.logger)
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.Error("overdue invoice sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("overdue invoice sweep started", zap.String("schedule", j.schedule))
	return nil
}

// Stop unschedules the sweep and waits for a running sweep to finish.
func (j *OverdueInvoiceJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("overdue invoice sweep stopped")
}

// RunOnce sweeps until no candidates are left and returns how many invoices
// were marked. Batches committed before a failure stay committed.
func (j *OverdueInvoiceJob) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	total, err := j.sweep(ctx)
	j.metrics.JobRun(OverdueInvoiceJobName, time.Since(start), err)

	if total > 0 {
		j.logger.Info("invoices marked overdue", zap.Int("count", total))
	}
	return total, err
}

func (j *OverdueInvoiceJob) sweep(ctx context.Context) (int, error) {
	cmd, err := commands.NewMarkOverdueInvoicesCommand(j.batchSize)
	if err != nil {
		return 0, err
	}

	total := 0
	for {
		if err = ctx.Err(); err != nil {
			return total, err
		}

		marked, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			return total, handleErr
		}
		total += marked

		if marked < j.batchSize {
			return total, nil
		}
	}
}

type zapCronLogger struct {
	sugar *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
