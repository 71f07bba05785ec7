// Package scheduler drives evaluation cycles on a fixed interval with a
// structural at-most-one-cycle guarantee: a tick that lands while the
// previous cycle is still running is dropped, never queued.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Driver owns the recurring timer. The cycle function is wrapped with
// SkipIfStillRunning (dropped overlapping triggers) and Recover (a panicking
// cycle is logged and counted as a completed failed cycle, never fatal).
type Driver struct {
	cron    *cron.Cron
	baseCtx context.Context
	logger  *zap.Logger
}

func New(baseCtx context.Context, logger *zap.Logger) *Driver {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	cronLogger := zapCronLogger{sugar: logger.Sugar()}
	return &Driver{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cronLogger),
			cron.Recover(cronLogger),
		)),
		baseCtx: baseCtx,
		logger:  logger,
	}
}

// AddCycle schedules cycle at the given interval. Cycle errors are logged at
// the boundary; the schedule keeps firing regardless.
func (d *Driver) AddCycle(interval time.Duration, cycle func(context.Context) error) error {
	if interval <= 0 {
		return fmt.Errorf("invalid cycle interval %s", interval)
	}
	_, err := d.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if err := cycle(d.baseCtx); err != nil {
			d.logger.Warn("cycle finished with error", zap.Error(err))
		}
	})
	return err
}

func (d *Driver) Start() {
	d.logger.Info("scheduler started")
	d.cron.Start()
}

// Stop halts scheduling and waits for an in-flight cycle to finish.
func (d *Driver) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
	d.logger.Info("scheduler stopped")
}

type zapCronLogger struct {
	sugar *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
