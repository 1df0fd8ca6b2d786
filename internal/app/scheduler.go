package app

import (
	"context"
	"errors"
	"time"

	"github.com/fenixfl1/CompuPay/internal/payroll"
	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const autopayTimeout = 10 * time.Minute

// Autopayer is the slice of the payroll service the scheduler drives.
type Autopayer interface {
	RunAutopay(ctx context.Context, actor string) (payroll.AutopayResult, error)
}

type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

// newScheduler returns a cron runner with the autopay job registered under
// schedule. Overlapping runs are skipped.
func newScheduler(schedule string, svc Autopayer, actor string, logger *zap.Logger) (*cron.Cron, error) {
	cl := cronLogger{log: logger.Sugar()}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(schedule, autopayJob(svc, actor, logger)); err != nil {
		return nil, err
	}
	return c, nil
}

func autopayJob(svc Autopayer, actor string, logger *zap.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), autopayTimeout)
		defer cancel()

		res, err := svc.RunAutopay(ctx, actor)
		switch {
		case errors.Is(err, payrollerrors.ErrAutopayDisabled):
			logger.Debug("autopay disabled in payroll settings")
		case err != nil:
			logger.Error("autopay run failed", zap.Error(err))
		default:
			fields := []zap.Field{zap.Int("started_payroll_id", res.Started.PayrollID)}
			if res.Processed != nil {
				fields = append(fields,
					zap.Int("processed_payroll_id", res.Processed.PayrollID),
					zap.Int("processed_entries", res.Processed.Processed),
				)
			}
			logger.Info("autopay run finished", fields...)
		}
	}
}
