package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreatePayroll opens the next period of the current month and enrols the
// selected employees, all in one transaction.
func (s *service) CreatePayroll(ctx context.Context, req CreatePayrollRequest, actor string) (PayrollResponse, error) {
	if req.Employees.empty() {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployees
	}
	start, err := parseDate(req.PeriodStart)
	if err != nil {
		return PayrollResponse{}, err
	}
	end, err := parseDate(req.PeriodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	settings, err := s.openable(ctx, qtx)
	if err != nil {
		return PayrollResponse{}, err
	}

	today := dateOf(s.now())
	if start == nil {
		start = &today
	}
	if end == nil {
		e := start.AddDate(0, 0, settings.DurationDays-1)
		end = &e
	}
	if end.Before(*start) {
		return PayrollResponse{}, payrollerrors.ErrInvalidDateRange
	}

	period, err := nextPeriod(ctx, qtx, today, settings)
	if err != nil {
		return PayrollResponse{}, err
	}

	p, err := s.insertPayroll(ctx, qtx, *start, *end, period, actor)
	if err != nil {
		return PayrollResponse{}, err
	}

	var usernames []string
	if !req.Employees.All {
		usernames = uniqueStrings(req.Employees.Usernames)
	}
	users, err := qtx.FindEligibleUsers(ctx, usernames, true)
	if err != nil {
		return PayrollResponse{}, err
	}
	if len(users) == 0 {
		return PayrollResponse{}, payrollerrors.ErrNoEligibleEmployees
	}
	if err := createEntries(ctx, qtx, p.PayrollID, users, actor); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	res := mapPayroll(*p, settings.Periods, len(users))
	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(payrollKind, p.PayrollID), actor, activitylog.ActionCreate,
		fmt.Sprintf("%s created with %d employee(s)", res.Label, len(users)))

	return res, nil
}

// AddEntries enrols more employees into a pending payroll.
func (s *service) AddEntries(ctx context.Context, payrollID int, usernames []string, actor string) ([]EntryResponse, error) {
	names := uniqueStrings(usernames)
	if len(names) == 0 {
		return nil, payrollerrors.ErrInvalidEmployees
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.LockPayroll(ctx, payrollID)
	if err != nil {
		return nil, mapRepositoryError(err, payrollerrors.ErrPayrollNotFound)
	}
	if !p.IsPending() {
		return nil, payrollerrors.ErrPayrollNotPending
	}

	users, err := qtx.FindEligibleUsers(ctx, names, true)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, payrollerrors.ErrNoEligibleEmployees
	}
	if err := createEntries(ctx, qtx, payrollID, users, actor); err != nil {
		return nil, err
	}

	rows, err := qtx.FindEntries(ctx, payrollID, names, false)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	out := make([]EntryResponse, len(rows))
	for i, r := range rows {
		out[i] = mapEntry(r)
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(payrollKind, payrollID), actor, activitylog.ActionUpdate,
		fmt.Sprintf("%d employee(s) added to payroll", len(users)))
	return out, nil
}

// AutostartPayroll opens the payroll following the last completed one and
// enrols every active staff member.
func (s *service) AutostartPayroll(ctx context.Context, actor string) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	settings, err := s.openable(ctx, qtx)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !settings.Autopay {
		return PayrollResponse{}, payrollerrors.ErrAutopayDisabled
	}

	start := dateOf(s.now())
	last, err := qtx.LastDone(ctx)
	switch {
	case err == nil:
		start = dateOf(last.PeriodEnd).AddDate(0, 0, 1)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return PayrollResponse{}, err
	}
	start, err = autostartDate(ctx, qtx, start, settings)
	if err != nil {
		return PayrollResponse{}, err
	}
	end := start.AddDate(0, 0, settings.DurationDays-1)

	period, err := nextPeriod(ctx, qtx, start, settings)
	if err != nil {
		return PayrollResponse{}, err
	}

	p, err := s.insertPayroll(ctx, qtx, start, end, period, actor)
	if err != nil {
		return PayrollResponse{}, err
	}

	users, err := qtx.FindEligibleUsers(ctx, nil, false)
	if err != nil {
		return PayrollResponse{}, err
	}
	if err := createEntries(ctx, qtx, p.PayrollID, users, actor); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	res := mapPayroll(*p, settings.Periods, len(users))
	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(payrollKind, p.PayrollID), actor, activitylog.ActionCreate,
		fmt.Sprintf("%s started automatically", res.Label))
	return res, nil
}

// RunAutopay settles the pending payroll, if any, and opens the next one.
func (s *service) RunAutopay(ctx context.Context, actor string) (AutopayResult, error) {
	settings, err := s.repo.ActiveSettings(ctx)
	if err != nil {
		return AutopayResult{}, mapRepositoryError(err, payrollerrors.ErrSettingsNotFound)
	}
	if !settings.Autopay {
		return AutopayResult{}, payrollerrors.ErrAutopayDisabled
	}

	var out AutopayResult
	pending, err := s.repo.FindPending(ctx)
	switch {
	case err == nil:
		res, err := s.process(ctx, pending.PayrollID, nil, actor, modeAutopay)
		if err != nil {
			return out, err
		}
		out.Processed = &res
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return out, err
	}

	started, err := s.AutostartPayroll(ctx, actor)
	if err != nil {
		return out, err
	}
	out.Started = &started

	s.logger.Info("autopay completed",
		zap.Int("started_payroll_id", started.PayrollID),
		zap.Bool("processed_previous", out.Processed != nil),
	)
	return out, nil
}

// UpdateEntry enables or disables an entry while it is still unpaid.
func (s *service) UpdateEntry(ctx context.Context, entryID int, req UpdateEntryRequest, actor string) (EntryResponse, error) {
	row, err := s.repo.FindEntry(ctx, entryID)
	if err != nil {
		return EntryResponse{}, mapRepositoryError(err, payrollerrors.ErrEntryNotFound)
	}
	if row.Processed {
		return EntryResponse{}, payrollerrors.ErrEntryAlreadyProcessed
	}

	fields, err := entity.PrepareUpdate(map[string]any{"state": req.State}, actor)
	if err != nil {
		return EntryResponse{}, err
	}
	if err := s.repo.UpdateEntry(ctx, entryID, fields); err != nil {
		return EntryResponse{}, mapRepositoryError(err, payrollerrors.ErrEntryNotFound)
	}
	row.State = req.State

	verb := "enabled"
	if req.State != entity.StateActive {
		verb = "disabled"
	}
	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(entryKind, entryID), actor, activitylog.ActionUpdate,
		fmt.Sprintf("@%s %s in payroll %d", row.Username, verb, row.PayrollID))

	return mapEntry(*row), nil
}

// openable returns the active settings once it is sure no payroll is
// pending.
func (s *service) openable(ctx context.Context, repo Repository) (*Settings, error) {
	_, err := repo.FindPending(ctx)
	if err == nil {
		return nil, payrollerrors.ErrPendingPayrollExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings, err := repo.ActiveSettings(ctx)
	if err != nil {
		return nil, mapRepositoryError(err, payrollerrors.ErrSettingsNotFound)
	}
	return settings, nil
}

func (s *service) insertPayroll(ctx context.Context, repo Repository, start, end time.Time, period int, actor string) (*Payroll, error) {
	p := &Payroll{
		PeriodStart: start,
		PeriodEnd:   end,
		Period:      period,
		Status:      StatusPending,
	}
	if err := entity.PrepareCreate(&p.Base, actor); err != nil {
		return nil, err
	}
	if err := repo.CreatePayroll(ctx, p); err != nil {
		return nil, mapRepositoryError(err, payrollerrors.ErrPayrollNotFound)
	}
	return p, nil
}

// nextPeriod numbers payrolls within a calendar month, bounded by the
// configured periods.
func nextPeriod(ctx context.Context, repo Repository, month time.Time, settings *Settings) (int, error) {
	n, err := repo.CountInMonth(ctx, month)
	if err != nil {
		return 0, err
	}
	period := int(n) + 1
	if period > settings.Periods {
		return 0, payrollerrors.ErrPeriodLimitReached
	}
	return period, nil
}

// autostartDate moves start to the first day of the following month when its
// own month already holds every configured period. A fixed duration rarely
// lines up with calendar months, so the day after the last payroll can land
// in a month that is already closed.
func autostartDate(ctx context.Context, repo Repository, start time.Time, settings *Settings) (time.Time, error) {
	n, err := repo.CountInMonth(ctx, start)
	if err != nil {
		return start, err
	}
	if int(n) < settings.Periods {
		return start, nil
	}
	y, m, _ := start.Date()
	return time.Date(y, m+1, 1, 0, 0, 0, 0, start.Location()), nil
}

func createEntries(ctx context.Context, repo Repository, payrollID int, users []UserRef, actor string) error {
	rows := make([]Entry, 0, len(users))
	for _, u := range users {
		e := Entry{PayrollID: payrollID, UserID: u.UserID}
		if err := entity.PrepareCreate(&e.Base, actor); err != nil {
			return err
		}
		rows = append(rows, e)
	}
	if err := repo.CreateEntries(ctx, rows); err != nil {
		return mapRepositoryError(err, payrollerrors.ErrUserNotFound)
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
