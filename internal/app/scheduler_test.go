package app

import (
	"context"
	"errors"
	"testing"

	"github.com/fenixfl1/CompuPay/internal/payroll"
	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAutopayer struct {
	calls  int
	actor  string
	result payroll.AutopayResult
	err    error
}

func (f *fakeAutopayer) RunAutopay(ctx context.Context, actor string) (payroll.AutopayResult, error) {
	f.calls++
	f.actor = actor
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return payroll.AutopayResult{}, errors.New("missing deadline")
	}
	return f.result, f.err
}

func TestAutopayJob(t *testing.T) {
	t.Run("logs the processed and started payrolls", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		svc := &fakeAutopayer{result: payroll.AutopayResult{
			Processed: &payroll.ProcessResult{PayrollID: 4, Processed: 3},
			Started:   &payroll.PayrollResponse{PayrollID: 5},
		}}

		autopayJob(svc, "system", zap.New(core))()

		assert.Equal(t, 1, svc.calls)
		assert.Equal(t, "system", svc.actor)
		require.Equal(t, 1, logs.FilterMessage("autopay run finished").Len())
		fields := logs.FilterMessage("autopay run finished").All()[0].ContextMap()
		assert.EqualValues(t, 5, fields["started_payroll_id"])
		assert.EqualValues(t, 3, fields["processed_entries"])
	})

	t.Run("disabled is not an error", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		svc := &fakeAutopayer{err: payrollerrors.ErrAutopayDisabled}

		autopayJob(svc, "system", zap.New(core))()

		assert.Zero(t, logs.FilterLevelExact(zap.ErrorLevel).Len())
	})

	t.Run("failure is logged", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		svc := &fakeAutopayer{err: errors.New("db down")}

		autopayJob(svc, "system", zap.New(core))()

		assert.Equal(t, 1, logs.FilterMessage("autopay run failed").Len())
	})
}

func TestNewScheduler(t *testing.T) {
	c, err := newScheduler("0 0 1 * *", &fakeAutopayer{}, "system", zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = newScheduler("every monday", &fakeAutopayer{}, "system", zap.NewNop())
	assert.Error(t, err)
}
