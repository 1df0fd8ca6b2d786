package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/events"
	"github.com/fenixfl1/CompuPay/internal/messaging/kafka"
	"github.com/fenixfl1/CompuPay/internal/observability"
	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	modeFull    = "full"
	modePartial = "partial"
	modeAutopay = "autopay"

	defaultLockTTL = 5 * time.Minute
)

func processingKey(payrollID int) string {
	return fmt.Sprintf("payroll:%d:processing", payrollID)
}

func (s *service) ProcessPayroll(ctx context.Context, payrollID int, actor string) (ProcessResult, error) {
	return s.process(ctx, payrollID, nil, actor, modeFull)
}

// ProcessPartialPayroll pays only the entries of usernames. It refuses the
// whole batch when any of them was already paid.
func (s *service) ProcessPartialPayroll(ctx context.Context, payrollID int, usernames []string, actor string) (ProcessResult, error) {
	names := uniqueStrings(usernames)
	if len(names) == 0 {
		return ProcessResult{}, payrollerrors.ErrInvalidEmployees
	}
	return s.process(ctx, payrollID, names, actor, modePartial)
}

func (s *service) process(ctx context.Context, payrollID int, usernames []string, actor, mode string) (res ProcessResult, err error) {
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		observability.PayrollRuns.WithLabelValues(mode, outcome).Inc()
	}()

	release, err := s.acquire(ctx, payrollID)
	if err != nil {
		return ProcessResult{}, err
	}
	defer release()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProcessResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.LockPayroll(ctx, payrollID)
	if err != nil {
		return ProcessResult{}, mapRepositoryError(err, payrollerrors.ErrPayrollNotFound)
	}
	if !p.IsPending() {
		return ProcessResult{}, payrollerrors.ErrPayrollNotPending
	}

	settings, err := qtx.ActiveSettings(ctx)
	if err != nil {
		return ProcessResult{}, mapRepositoryError(err, payrollerrors.ErrSettingsNotFound)
	}

	var entries []EntryRow
	if usernames == nil {
		entries, err = qtx.FindEntries(ctx, payrollID, nil, true)
		if err != nil {
			return ProcessResult{}, err
		}
	} else {
		entries, err = qtx.FindEntries(ctx, payrollID, usernames, false)
		if err != nil {
			return ProcessResult{}, err
		}
		if len(entries) != len(usernames) {
			return ProcessResult{}, payrollerrors.ErrEntryNotFound
		}
		for _, e := range entries {
			if e.Processed {
				return ProcessResult{}, payrollerrors.ErrEntryAlreadyProcessed
			}
		}
	}

	concepts, err := qtx.ConceptIDs(ctx)
	if err != nil {
		return ProcessResult{}, err
	}

	lastPeriod := settings.Periods == p.Period
	userIDs := make([]int, len(entries))
	entryIDs := make([]int, len(entries))
	for i, e := range entries {
		userIDs[i] = e.UserID
		entryIDs[i] = e.PayrollEntryID
	}

	rulesByUser := map[int][]RuleRow{}
	if lastPeriod {
		rules, err := qtx.FindRules(ctx, userIDs)
		if err != nil {
			return ProcessResult{}, err
		}
		for _, r := range rules {
			rulesByUser[r.UserID] = append(rulesByUser[r.UserID], r)
		}
	}

	adjustments, err := qtx.PendingAdjustments(ctx, entryIDs)
	if err != nil {
		return ProcessResult{}, err
	}
	adjByEntry := map[int][]Adjustment{}
	for _, a := range adjustments {
		adjByEntry[a.PayrollEntryID] = append(adjByEntry[a.PayrollEntryID], a)
	}

	net := decimal.Zero
	for _, e := range entries {
		calc, err := Calculate(CalcInput{
			Salary:      e.Salary,
			Periods:     settings.Periods,
			LastPeriod:  lastPeriod,
			Rules:       rulesByUser[e.UserID],
			Adjustments: adjByEntry[e.PayrollEntryID],
			Concepts:    concepts,
		})
		if err != nil {
			return ProcessResult{}, err
		}
		if err := s.settle(ctx, qtx, p, e, calc, actor); err != nil {
			return ProcessResult{}, err
		}
		if err := s.queueProcessed(ctx, tx, p, e, calc, actor); err != nil {
			return ProcessResult{}, err
		}
		net = net.Add(calc.Net)
	}

	done := usernames == nil
	if !done {
		remaining, err := qtx.CountPendingEntries(ctx, payrollID)
		if err != nil {
			return ProcessResult{}, err
		}
		done = remaining == 0
	}
	status := StatusPending
	if done {
		flipped, err := qtx.MarkDone(ctx, payrollID, actor)
		if err != nil {
			return ProcessResult{}, err
		}
		if !flipped {
			return ProcessResult{}, payrollerrors.ErrPayrollNotPending
		}
		status = StatusDone
	}

	if err := tx.Commit(); err != nil {
		return ProcessResult{}, err
	}

	observability.PayrollEntriesProcessed.Add(float64(len(entries)))
	s.logger.Info("payroll processed",
		zap.Int("payroll_id", payrollID),
		zap.String("mode", mode),
		zap.Int("entries", len(entries)),
		zap.String("status", status),
	)
	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(payrollKind, payrollID), actor, activitylog.ActionUpdate,
		fmt.Sprintf("%d entr(ies) processed (%s)", len(entries), mode))

	return ProcessResult{
		PayrollID: payrollID,
		Processed: len(entries),
		Status:    status,
		NetTotal:  net,
	}, nil
}

// settle writes the entry's ledger, consumes its adjustments and marks it
// paid.
func (s *service) settle(ctx context.Context, repo Repository, p *Payroll, e EntryRow, calc Calculation, actor string) error {
	lines := make([]PaymentDetail, 0, len(calc.Lines))
	for _, l := range calc.Lines {
		comment := l.Comment
		d := PaymentDetail{
			PayrollID:      p.PayrollID,
			PayrollEntryID: e.PayrollEntryID,
			ConceptID:      l.ConceptID,
			Period:         p.Period,
			ConceptAmount:  l.Amount,
			GrossSalary:    e.Salary,
			Comment:        &comment,
			Operator:       l.Operator,
		}
		if err := entity.PrepareCreate(&d.Base, actor); err != nil {
			return err
		}
		lines = append(lines, d)
	}
	if err := repo.CreateLedger(ctx, lines); err != nil {
		return mapRepositoryError(err, payrollerrors.ErrConceptNotFound)
	}
	if err := repo.CompleteAdjustments(ctx, calc.Applied(), actor); err != nil {
		return err
	}

	fields, err := entity.PrepareUpdate(map[string]any{"processed": true}, actor)
	if err != nil {
		return err
	}
	return repo.UpdateEntry(ctx, e.PayrollEntryID, fields)
}

func (s *service) queueProcessed(ctx context.Context, tx *sql.Tx, p *Payroll, e EntryRow, calc Calculation, actor string) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)
	ev := events.PayrollProcessedEvent{
		EventType:   "payroll_processed",
		RequestID:   rid,
		PayrollID:   p.PayrollID,
		EntryID:     e.PayrollEntryID,
		Username:    e.Username,
		Period:      p.Period,
		NetSalary:   calc.Net.StringFixed(2),
		ProcessedBy: actor,
		OccurredAt:  s.now().UTC(),
	}
	row, err := kafka.NewOutboxEvent(rid, payrollKind, strconv.Itoa(p.PayrollID), ev.EventType, events.PayrollProcessedTopic, ev)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, row)
}

// acquire takes the cross-instance processing lock. Without redis the row
// lock and the status check still serialize runs.
func (s *service) acquire(ctx context.Context, payrollID int) (func(), error) {
	if s.rdb == nil {
		return func() {}, nil
	}
	key := processingKey(payrollID)
	ok, err := s.rdb.SetNX(ctx, key, "locked", s.lockTTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, payrollerrors.ErrPayrollBusy
	}
	return func() {
		if err := s.rdb.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
			s.logger.Warn("failed to release payroll lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
