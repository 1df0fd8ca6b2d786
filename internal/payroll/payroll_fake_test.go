package payroll_test

import (
	"context"
	"database/sql"
	"slices"
	"time"

	"github.com/fenixfl1/CompuPay/internal/messaging/kafka"
	"github.com/fenixfl1/CompuPay/internal/payroll"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type memUser struct {
	payroll.UserRef
	Name     string
	LastName string
	Staff    bool
}

// memRepo keeps the payroll tables in memory so the service can be driven
// through whole flows.
type memRepo struct {
	settings    []payroll.Settings
	concepts    []payroll.Concept
	deductions  []payroll.Deduction
	users       []memUser
	assignments []payroll.DeductionAssignment
	payrolls    []payroll.Payroll
	entries     []payroll.Entry
	adjustments []payroll.Adjustment
	ledger      []payroll.PaymentDetail
	locked      []int
	seq         int
}

func newMemRepo() *memRepo {
	r := &memRepo{}
	for _, name := range []string{"SALARIO", "AFP", "SFS", "ISR", "BONO", "DESCUENTO"} {
		r.concepts = append(r.concepts, payroll.Concept{
			ConceptID: r.next(),
			Name:      name,
			Base:      entity.Base{State: entity.StateActive},
		})
	}
	return r
}

func (r *memRepo) next() int {
	r.seq++
	return r.seq
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func (r *memRepo) addUser(username string, salary string, staff bool) memUser {
	u := memUser{
		UserRef: payroll.UserRef{
			UserID:   r.next(),
			Username: username,
			Salary:   decimal.RequireFromString(salary),
		},
		Name:     username,
		LastName: "Tester",
		Staff:    staff,
	}
	r.users = append(r.users, u)
	return u
}

func (r *memRepo) addDeduction(name, pct string) payroll.Deduction {
	d := payroll.Deduction{
		DeductionID: r.next(),
		Name:        name,
		Percentage:  decimal.RequireFromString(pct),
		Base:        entity.Base{State: entity.StateActive},
	}
	r.deductions = append(r.deductions, d)
	return d
}

func (r *memRepo) assign(userID, deductionID int) {
	r.assignments = append(r.assignments, payroll.DeductionAssignment{
		ID:          r.next(),
		UserID:      userID,
		DeductionID: deductionID,
		Base:        entity.Base{State: entity.StateActive},
	})
}

func (r *memRepo) addPayroll(start time.Time, period int, status string) payroll.Payroll {
	p := payroll.Payroll{
		PayrollID:   r.next(),
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, 0, 29),
		Period:      period,
		Status:      status,
		Base:        entity.Base{State: entity.StateActive},
	}
	r.payrolls = append(r.payrolls, p)
	return p
}

func (r *memRepo) addEntry(payrollID, userID int, processed bool) payroll.Entry {
	e := payroll.Entry{
		PayrollEntryID: r.next(),
		PayrollID:      payrollID,
		UserID:         userID,
		Processed:      processed,
		Base:           entity.Base{State: entity.StateActive},
	}
	r.entries = append(r.entries, e)
	return e
}

func (r *memRepo) addAdjustment(entryID int, kind, amount string) payroll.Adjustment {
	concept := "BONO"
	if kind == payroll.AdjustmentDiscount {
		concept = "DESCUENTO"
	}
	ids, _ := r.ConceptIDs(context.Background())
	a := payroll.Adjustment{
		AdjustmentID:   r.next(),
		Type:           kind,
		Description:    "ajuste " + kind,
		Amount:         decimal.RequireFromString(amount),
		PayrollEntryID: entryID,
		ConceptID:      ids[concept],
		Base:           entity.Base{State: entity.StateActive},
	}
	r.adjustments = append(r.adjustments, a)
	return a
}

func (r *memRepo) WithTx(*sql.Tx) payroll.Repository { return r }

func (r *memRepo) ActiveSettings(context.Context) (*payroll.Settings, error) {
	for i := len(r.settings) - 1; i >= 0; i-- {
		if r.settings[i].IsActive() {
			s := r.settings[i]
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) DeactivateSettings(context.Context, string) error {
	for i := range r.settings {
		r.settings[i].State = entity.StateInactive
	}
	return nil
}

func (r *memRepo) CreateSettings(_ context.Context, s *payroll.Settings) error {
	s.ID = r.next()
	r.settings = append(r.settings, *s)
	return nil
}

func (r *memRepo) CreateConcept(_ context.Context, c *payroll.Concept) error {
	for _, existing := range r.concepts {
		if existing.Name == c.Name {
			return uniqueViolation("uq_concept_name")
		}
	}
	c.ConceptID = r.next()
	r.concepts = append(r.concepts, *c)
	return nil
}

func (r *memRepo) FindConceptPage(context.Context, filter.Result, response.Page) ([]payroll.Concept, int64, error) {
	return r.concepts, int64(len(r.concepts)), nil
}

func (r *memRepo) FindConcept(_ context.Context, id int) (*payroll.Concept, error) {
	for _, c := range r.concepts {
		if c.ConceptID == id && c.IsActive() {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) ConceptIDs(context.Context) (map[string]int, error) {
	out := map[string]int{}
	for _, c := range r.concepts {
		if c.IsActive() {
			out[c.Name] = c.ConceptID
		}
	}
	return out, nil
}

func (r *memRepo) CreateDeduction(_ context.Context, d *payroll.Deduction) error {
	for _, existing := range r.deductions {
		if existing.Name == d.Name && existing.Percentage.Equal(d.Percentage) {
			return uniqueViolation("uq_deduction_name_percentage")
		}
	}
	d.DeductionID = r.next()
	r.deductions = append(r.deductions, *d)
	return nil
}

func (r *memRepo) FindDeductionPage(context.Context, filter.Result, response.Page) ([]payroll.Deduction, int64, error) {
	return r.deductions, int64(len(r.deductions)), nil
}

func (r *memRepo) FindDeductions(_ context.Context, ids []int) ([]payroll.Deduction, error) {
	var out []payroll.Deduction
	for _, d := range r.deductions {
		if d.IsActive() && slices.Contains(ids, d.DeductionID) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memRepo) FindUser(_ context.Context, username string) (*payroll.UserRef, error) {
	for _, u := range r.users {
		if u.Username == username {
			ref := u.UserRef
			return &ref, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) FindDeductionAssignments(_ context.Context, userID int) ([]payroll.DeductionAssignment, error) {
	var out []payroll.DeductionAssignment
	for _, a := range r.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memRepo) CreateDeductionAssignments(_ context.Context, rows []payroll.DeductionAssignment) error {
	for _, row := range rows {
		for _, a := range r.assignments {
			if a.UserID == row.UserID && a.DeductionID == row.DeductionID {
				return uniqueViolation("uq_deduction_assignment")
			}
		}
		row.ID = r.next()
		r.assignments = append(r.assignments, row)
	}
	return nil
}

func (r *memRepo) SetDeductionAssignmentsState(_ context.Context, userID int, deductionIDs []int, state, _ string) error {
	for i, a := range r.assignments {
		if a.UserID == userID && slices.Contains(deductionIDs, a.DeductionID) {
			r.assignments[i].State = state
		}
	}
	return nil
}

func (r *memRepo) FindRules(_ context.Context, userIDs []int) ([]payroll.RuleRow, error) {
	var out []payroll.RuleRow
	for _, a := range r.assignments {
		if !a.IsActive() || !slices.Contains(userIDs, a.UserID) {
			continue
		}
		for _, d := range r.deductions {
			if d.DeductionID == a.DeductionID && d.IsActive() {
				out = append(out, payroll.RuleRow{
					AssignmentID: a.ID,
					UserID:       a.UserID,
					DeductionID:  d.DeductionID,
					Name:         d.Name,
					Percentage:   d.Percentage,
					ConceptID:    d.ConceptID,
				})
			}
		}
	}
	return out, nil
}

func (r *memRepo) FindPending(context.Context) (*payroll.Payroll, error) {
	for _, p := range r.payrolls {
		if p.Status == payroll.StatusPending && p.IsActive() {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) LastDone(context.Context) (*payroll.Payroll, error) {
	var last *payroll.Payroll
	for i, p := range r.payrolls {
		if p.Status == payroll.StatusDone && (last == nil || p.PeriodEnd.After(last.PeriodEnd)) {
			last = &r.payrolls[i]
		}
	}
	if last == nil {
		return nil, gorm.ErrRecordNotFound
	}
	p := *last
	return &p, nil
}

func (r *memRepo) Latest(context.Context) (*payroll.Payroll, error) {
	if len(r.payrolls) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	p := r.payrolls[len(r.payrolls)-1]
	return &p, nil
}

func (r *memRepo) CountInMonth(_ context.Context, month time.Time) (int64, error) {
	var n int64
	for _, p := range r.payrolls {
		if p.PeriodStart.Year() == month.Year() && p.PeriodStart.Month() == month.Month() {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) CreatePayroll(_ context.Context, p *payroll.Payroll) error {
	p.PayrollID = r.next()
	r.payrolls = append(r.payrolls, *p)
	return nil
}

func (r *memRepo) FindPayroll(_ context.Context, id int) (*payroll.Payroll, error) {
	for _, p := range r.payrolls {
		if p.PayrollID == id {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) LockPayroll(ctx context.Context, id int) (*payroll.Payroll, error) {
	r.locked = append(r.locked, id)
	return r.FindPayroll(ctx, id)
}

func (r *memRepo) MarkDone(_ context.Context, id int, _ string) (bool, error) {
	for i, p := range r.payrolls {
		if p.PayrollID == id && p.Status == payroll.StatusPending {
			r.payrolls[i].Status = payroll.StatusDone
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) FindPayrollPage(context.Context, filter.Result, response.Page) ([]payroll.Payroll, int64, error) {
	return r.payrolls, int64(len(r.payrolls)), nil
}

func (r *memRepo) FindEligibleUsers(_ context.Context, usernames []string, requireSalary bool) ([]payroll.UserRef, error) {
	var out []payroll.UserRef
	for _, u := range r.users {
		if !u.Staff {
			continue
		}
		if len(usernames) > 0 && !slices.Contains(usernames, u.Username) {
			continue
		}
		if requireSalary && !u.Salary.IsPositive() {
			continue
		}
		out = append(out, u.UserRef)
	}
	return out, nil
}

func (r *memRepo) CreateEntries(_ context.Context, rows []payroll.Entry) error {
	for _, row := range rows {
		for _, e := range r.entries {
			if e.PayrollID == row.PayrollID && e.UserID == row.UserID {
				return uniqueViolation("uq_payroll_entry_user")
			}
		}
		row.PayrollEntryID = r.next()
		r.entries = append(r.entries, row)
	}
	return nil
}

func (r *memRepo) row(e payroll.Entry) payroll.EntryRow {
	out := payroll.EntryRow{Entry: e}
	for _, u := range r.users {
		if u.UserID == e.UserID {
			out.Username = u.Username
			out.Name = u.Name
			out.LastName = u.LastName
			out.Salary = u.Salary
			out.Currency = "DOP"
		}
	}
	for _, p := range r.payrolls {
		if p.PayrollID == e.PayrollID {
			out.Period = p.Period
			out.Status = p.Status
			out.PeriodEnd = p.PeriodEnd
		}
	}
	return out
}

func (r *memRepo) entry(id int) *payroll.Entry {
	for i := range r.entries {
		if r.entries[i].PayrollEntryID == id {
			return &r.entries[i]
		}
	}
	return nil
}

func (r *memRepo) FindEntry(_ context.Context, id int) (*payroll.EntryRow, error) {
	e := r.entry(id)
	if e == nil {
		return nil, gorm.ErrRecordNotFound
	}
	row := r.row(*e)
	return &row, nil
}

func (r *memRepo) FindEntries(_ context.Context, payrollID int, usernames []string, onlyPending bool) ([]payroll.EntryRow, error) {
	var out []payroll.EntryRow
	for _, e := range r.entries {
		if e.PayrollID != payrollID || !e.IsActive() {
			continue
		}
		if onlyPending && e.Processed {
			continue
		}
		row := r.row(e)
		if len(usernames) > 0 && !slices.Contains(usernames, row.Username) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *memRepo) FindEntryPage(context.Context, filter.Result, response.Page) ([]payroll.EntryRow, int64, error) {
	out := make([]payroll.EntryRow, len(r.entries))
	for i, e := range r.entries {
		out[i] = r.row(e)
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) CountEntries(_ context.Context, payrollIDs []int) (map[int]int, error) {
	out := map[int]int{}
	for _, e := range r.entries {
		if e.IsActive() && slices.Contains(payrollIDs, e.PayrollID) {
			out[e.PayrollID]++
		}
	}
	return out, nil
}

func (r *memRepo) CountPendingEntries(_ context.Context, payrollID int) (int64, error) {
	var n int64
	for _, e := range r.entries {
		if e.PayrollID == payrollID && e.IsActive() && !e.Processed {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) UpdateEntry(_ context.Context, id int, fields map[string]any) error {
	e := r.entry(id)
	if e == nil {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["processed"].(bool); ok {
		e.Processed = v
	}
	if v, ok := fields["state"].(string); ok {
		e.State = v
	}
	return nil
}

func (r *memRepo) CreateAdjustment(_ context.Context, a *payroll.Adjustment) error {
	a.AdjustmentID = r.next()
	r.adjustments = append(r.adjustments, *a)
	return nil
}

func (r *memRepo) adjustment(id int) *payroll.Adjustment {
	for i := range r.adjustments {
		if r.adjustments[i].AdjustmentID == id {
			return &r.adjustments[i]
		}
	}
	return nil
}

func (r *memRepo) UpdateAdjustment(_ context.Context, id int, fields map[string]any) error {
	a := r.adjustment(id)
	if a == nil {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["amount"].(decimal.Decimal); ok {
		a.Amount = v
	}
	if v, ok := fields["description"].(string); ok {
		a.Description = v
	}
	if v, ok := fields["type"].(string); ok {
		a.Type = v
	}
	if v, ok := fields["state"].(string); ok {
		a.State = v
	}
	return nil
}

func (r *memRepo) FindAdjustment(_ context.Context, id int) (*payroll.Adjustment, error) {
	a := r.adjustment(id)
	if a == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := *a
	return &out, nil
}

func (r *memRepo) FindAdjustmentPage(context.Context, filter.Result, response.Page) ([]payroll.Adjustment, int64, error) {
	return r.adjustments, int64(len(r.adjustments)), nil
}

func (r *memRepo) PendingAdjustments(_ context.Context, entryIDs []int) ([]payroll.Adjustment, error) {
	var out []payroll.Adjustment
	for _, a := range r.adjustments {
		if a.IsActive() && slices.Contains(entryIDs, a.PayrollEntryID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memRepo) CompleteAdjustments(_ context.Context, ids []int, _ string) error {
	for i, a := range r.adjustments {
		if a.IsActive() && slices.Contains(ids, a.AdjustmentID) {
			r.adjustments[i].State = payroll.StateCompleted
		}
	}
	return nil
}

func (r *memRepo) AdjustmentTotals(_ context.Context, entryIDs []int) ([]payroll.AdjustmentTotal, error) {
	sums := map[[2]any]decimal.Decimal{}
	var keys [][2]any
	for _, a := range r.adjustments {
		if a.State == entity.StateInactive || !slices.Contains(entryIDs, a.PayrollEntryID) {
			continue
		}
		k := [2]any{a.PayrollEntryID, a.Type}
		if _, ok := sums[k]; !ok {
			keys = append(keys, k)
		}
		sums[k] = sums[k].Add(a.Amount)
	}
	out := make([]payroll.AdjustmentTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, payroll.AdjustmentTotal{
			PayrollEntryID: k[0].(int),
			Type:           k[1].(string),
			Total:          sums[k],
		})
	}
	return out, nil
}

func (r *memRepo) CreateLedger(_ context.Context, rows []payroll.PaymentDetail) error {
	for _, row := range rows {
		row.ID = int64(r.next())
		r.ledger = append(r.ledger, row)
	}
	return nil
}

func (r *memRepo) FindLedger(_ context.Context, payrollIDs []int, entryID int) ([]payroll.LedgerRow, error) {
	names := map[int]string{}
	for _, c := range r.concepts {
		names[c.ConceptID] = c.Name
	}
	var out []payroll.LedgerRow
	for _, d := range r.ledger {
		if !slices.Contains(payrollIDs, d.PayrollID) || (entryID != 0 && d.PayrollEntryID != entryID) {
			continue
		}
		out = append(out, payroll.LedgerRow{PaymentDetail: d, ConceptName: names[d.ConceptID]})
	}
	return out, nil
}

// ledgerFor returns concept name to amount for one entry.
func (r *memRepo) ledgerFor(entryID int) map[string]string {
	rows, _ := r.FindLedger(context.Background(), r.payrollIDs(), entryID)
	out := map[string]string{}
	for _, l := range rows {
		out[l.ConceptName] = l.Operator + l.ConceptAmount.StringFixed(2)
	}
	return out
}

func (r *memRepo) payrollIDs() []int {
	ids := make([]int, len(r.payrolls))
	for i, p := range r.payrolls {
		ids[i] = p.PayrollID
	}
	return ids
}

type fakeOutboxRepository struct {
	events []kafka.OutboxEvent
	err    error
}

func (f *fakeOutboxRepository) WithTx(*sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(_ context.Context, event kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(context.Context, string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(context.Context, string, string) error {
	return nil
}
