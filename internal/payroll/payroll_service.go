package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/messaging/kafka"
	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	payrollKind    = "payroll"
	entryKind      = "payroll_entry"
	adjustmentKind = "adjustment"
	deductionKind  = "deduction"
	conceptKind    = "concept"
	settingsKind   = "payroll_settings"
)

type Service interface {
	SaveSettings(ctx context.Context, req SaveSettingsRequest, actor string) (SettingsResponse, error)
	ActiveSettings(ctx context.Context) (SettingsResponse, error)

	CreateConcept(ctx context.Context, req CreateConceptRequest, actor string) (ConceptResponse, error)
	ListConcepts(ctx context.Context, res filter.Result, page response.Page) ([]ConceptResponse, int64, error)

	CreateDeduction(ctx context.Context, req CreateDeductionRequest, actor string) (DeductionResponse, error)
	ListDeductions(ctx context.Context, res filter.Result, page response.Page) ([]DeductionResponse, int64, error)
	AssignDeductions(ctx context.Context, username string, deductionIDs []int, actor string) error
	RemoveDeduction(ctx context.Context, username string, deductionID int, actor string) error

	CreatePayroll(ctx context.Context, req CreatePayrollRequest, actor string) (PayrollResponse, error)
	AddEntries(ctx context.Context, payrollID int, usernames []string, actor string) ([]EntryResponse, error)
	ProcessPayroll(ctx context.Context, payrollID int, actor string) (ProcessResult, error)
	ProcessPartialPayroll(ctx context.Context, payrollID int, usernames []string, actor string) (ProcessResult, error)
	AutostartPayroll(ctx context.Context, actor string) (PayrollResponse, error)
	RunAutopay(ctx context.Context, actor string) (AutopayResult, error)
	UpdateEntry(ctx context.Context, entryID int, req UpdateEntryRequest, actor string) (EntryResponse, error)

	CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest, actor string) (AdjustmentResponse, error)
	UpdateAdjustment(ctx context.Context, id int, req UpdateAdjustmentRequest, actor string) (AdjustmentResponse, error)
	ListAdjustments(ctx context.Context, res filter.Result, page response.Page) ([]AdjustmentResponse, int64, error)

	PayrollInfo(ctx context.Context) (PayrollInfoResponse, error)
	PayrollHistory(ctx context.Context, res filter.Result, page response.Page) ([]HistoryItem, int64, error)
	PayrollEntries(ctx context.Context, res filter.Result, page response.Page) ([]EntryResponse, int64, error)
	Ledger(ctx context.Context, payrollID, entryID int) ([]LedgerLineResponse, error)
	Payslip(ctx context.Context, entryID int) ([]byte, string, error)

	Describe(ctx context.Context, id string) (string, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	rdb      *redis.Client
	outbox   kafka.OutboxRepository
	activity activitylog.Service
	now      func() time.Time
	lockTTL  time.Duration
	logger   *zap.Logger
}

type Deps struct {
	Redis    *redis.Client
	Outbox   kafka.OutboxRepository
	Activity activitylog.Service
	// Clock defaults to time.Now.
	Clock   func() time.Time
	LockTTL time.Duration
}

func NewService(db *sql.DB, repo Repository, deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	ttl := deps.LockTTL
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &service{
		db:       db,
		repo:     repo,
		rdb:      deps.Redis,
		outbox:   deps.Outbox,
		activity: deps.Activity,
		now:      now,
		lockTTL:  ttl,
		logger:   l,
	}
}

func (s *service) SaveSettings(ctx context.Context, req SaveSettingsRequest, actor string) (SettingsResponse, error) {
	if !slices.Contains(ValidPeriods, req.Periods) {
		return SettingsResponse{}, payrollerrors.ErrInvalidPeriods
	}
	if req.DurationDays <= 0 {
		return SettingsResponse{}, payrollerrors.ErrInvalidDuration
	}
	deductionPeriod := req.DeductionPeriod
	if deductionPeriod <= 0 || deductionPeriod > req.Periods {
		deductionPeriod = req.Periods
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SettingsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeactivateSettings(ctx, actor); err != nil {
		return SettingsResponse{}, err
	}

	st := &Settings{
		Periods:         req.Periods,
		Autopay:         req.Autopay,
		DeductionPeriod: deductionPeriod,
		DurationDays:    req.DurationDays,
	}
	if err := entity.PrepareCreate(&st.Base, actor); err != nil {
		return SettingsResponse{}, err
	}
	if err := qtx.CreateSettings(ctx, st); err != nil {
		return SettingsResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SettingsResponse{}, err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(settingsKind, st.ID), actor, activitylog.ActionCreate,
		fmt.Sprintf("payroll settings saved: %d period(s), autopay %t", st.Periods, st.Autopay))

	return mapSettings(*st), nil
}

func (s *service) ActiveSettings(ctx context.Context) (SettingsResponse, error) {
	st, err := s.repo.ActiveSettings(ctx)
	if err != nil {
		return SettingsResponse{}, mapRepositoryError(err, payrollerrors.ErrSettingsNotFound)
	}
	return mapSettings(*st), nil
}

func (s *service) CreateConcept(ctx context.Context, req CreateConceptRequest, actor string) (ConceptResponse, error) {
	c := &Concept{
		Name:        strings.ToUpper(strings.TrimSpace(req.Name)),
		Description: req.Description,
	}
	if err := entity.PrepareCreate(&c.Base, actor); err != nil {
		return ConceptResponse{}, err
	}
	if err := s.repo.CreateConcept(ctx, c); err != nil {
		return ConceptResponse{}, mapRepositoryError(err, payrollerrors.ErrConceptNotFound)
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(conceptKind, c.ConceptID), actor, activitylog.ActionCreate,
		fmt.Sprintf("concept %s created", c.Name))

	return mapConcept(*c), nil
}

func (s *service) ListConcepts(ctx context.Context, res filter.Result, page response.Page) ([]ConceptResponse, int64, error) {
	rows, total, err := s.repo.FindConceptPage(ctx, res, page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ConceptResponse, len(rows))
	for i, c := range rows {
		out[i] = mapConcept(c)
	}
	return out, total, nil
}

func (s *service) CreateDeduction(ctx context.Context, req CreateDeductionRequest, actor string) (DeductionResponse, error) {
	name := strings.ToUpper(strings.TrimSpace(req.Name))
	if !slices.Contains(DeductionNames, name) {
		return DeductionResponse{}, payrollerrors.ErrInvalidDeductionName
	}
	if req.Percentage.LessThanOrEqual(decimal.Zero) || req.Percentage.GreaterThan(hundred) {
		return DeductionResponse{}, payrollerrors.ErrInvalidPercentage
	}

	conceptID := req.ConceptID
	if conceptID == nil {
		ids, err := s.repo.ConceptIDs(ctx)
		if err != nil {
			return DeductionResponse{}, err
		}
		if id, ok := ids[name]; ok {
			conceptID = &id
		}
	} else if _, err := s.repo.FindConcept(ctx, *conceptID); err != nil {
		return DeductionResponse{}, mapRepositoryError(err, payrollerrors.ErrConceptNotFound)
	}

	d := &Deduction{
		Name:        name,
		Percentage:  req.Percentage.Round(2),
		Description: req.Description,
		SortOrder:   req.Order,
		ConceptID:   conceptID,
	}
	if err := entity.PrepareCreate(&d.Base, actor); err != nil {
		return DeductionResponse{}, err
	}
	if err := s.repo.CreateDeduction(ctx, d); err != nil {
		return DeductionResponse{}, mapRepositoryError(err, payrollerrors.ErrConceptNotFound)
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(deductionKind, d.DeductionID), actor, activitylog.ActionCreate,
		fmt.Sprintf("deduction %s %s%% created", d.Name, d.Percentage.StringFixed(2)))

	return mapDeduction(*d), nil
}

func (s *service) ListDeductions(ctx context.Context, res filter.Result, page response.Page) ([]DeductionResponse, int64, error) {
	rows, total, err := s.repo.FindDeductionPage(ctx, res, page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]DeductionResponse, len(rows))
	for i, d := range rows {
		out[i] = mapDeduction(d)
	}
	return out, total, nil
}

// AssignDeductions gives the user the requested rules. A user holds at most
// one active rule per name, so a new AFP replaces the previous one. Known
// pairs are reactivated instead of inserted again.
func (s *service) AssignDeductions(ctx context.Context, username string, deductionIDs []int, actor string) error {
	ids := uniqueInts(deductionIDs)
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindUser(ctx, strings.TrimSpace(username))
	if err != nil {
		return mapRepositoryError(err, payrollerrors.ErrUserNotFound)
	}

	wanted, err := qtx.FindDeductions(ctx, ids)
	if err != nil {
		return err
	}
	if len(wanted) != len(ids) {
		return payrollerrors.ErrDeductionNotFound
	}
	names := make(map[string]bool, len(wanted))
	for _, d := range wanted {
		if names[d.Name] {
			return payrollerrors.ErrDuplicateDeductionName
		}
		names[d.Name] = true
	}

	current, err := qtx.FindRules(ctx, []int{u.UserID})
	if err != nil {
		return err
	}
	var replaced []int
	for _, r := range current {
		if names[r.Name] && !slices.Contains(ids, r.DeductionID) {
			replaced = append(replaced, r.DeductionID)
		}
	}
	if err := qtx.SetDeductionAssignmentsState(ctx, u.UserID, replaced, entity.StateInactive, actor); err != nil {
		return err
	}

	existing, err := qtx.FindDeductionAssignments(ctx, u.UserID)
	if err != nil {
		return err
	}
	known := make(map[int]DeductionAssignment, len(existing))
	for _, a := range existing {
		known[a.DeductionID] = a
	}

	var reactivate []int
	var inserts []DeductionAssignment
	for _, id := range ids {
		a, ok := known[id]
		switch {
		case !ok:
			row := DeductionAssignment{UserID: u.UserID, DeductionID: id}
			if err := entity.PrepareCreate(&row.Base, actor); err != nil {
				return err
			}
			inserts = append(inserts, row)
		case !a.IsActive():
			reactivate = append(reactivate, id)
		}
	}
	if err := qtx.SetDeductionAssignmentsState(ctx, u.UserID, reactivate, entity.StateActive, actor); err != nil {
		return err
	}
	if err := qtx.CreateDeductionAssignments(ctx, inserts); err != nil {
		return mapRepositoryError(err, payrollerrors.ErrDeductionNotFound)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(deductionKind, u.UserID), actor, activitylog.ActionUpdate,
		fmt.Sprintf("deductions %v assigned to @%s", ids, u.Username))
	return nil
}

func (s *service) RemoveDeduction(ctx context.Context, username string, deductionID int, actor string) error {
	u, err := s.repo.FindUser(ctx, strings.TrimSpace(username))
	if err != nil {
		return mapRepositoryError(err, payrollerrors.ErrUserNotFound)
	}
	if err := s.repo.SetDeductionAssignmentsState(ctx, u.UserID, []int{deductionID}, entity.StateInactive, actor); err != nil {
		return err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(deductionKind, u.UserID), actor, activitylog.ActionDelete,
		fmt.Sprintf("deduction %d removed from @%s", deductionID, u.Username))
	return nil
}

// Describe renders a payroll for the activity log.
func (s *service) Describe(ctx context.Context, id string) (string, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return "", payrollerrors.ErrInvalidPayrollID
	}
	p, err := s.repo.FindPayroll(ctx, n)
	if err != nil {
		return "", mapRepositoryError(err, payrollerrors.ErrPayrollNotFound)
	}
	periods := 1
	if st, err := s.repo.ActiveSettings(ctx); err == nil {
		periods = st.Periods
	}
	return payrollLabel(*p, periods), nil
}

func uniqueInts(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if v <= 0 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
