package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/fenixfl1/CompuPay/internal/database"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var payrollColumns = filter.Columns{
	"payroll_id":   "payrolls.payroll_id",
	"period_start": "payrolls.period_start",
	"period_end":   "payrolls.period_end",
	"period":       "payrolls.period",
	"status":       "payrolls.status",
	"state":        "payrolls.state",
	"created_at":   "payrolls.created_at",
	"created_by":   "payrolls.created_by",
}

var entryColumns = filter.Columns{
	"payroll_entry_id": "pe.payroll_entry_id",
	"payroll_id":       "pe.payroll_id",
	"processed":        "pe.processed",
	"state":            "pe.state",
	"username":         "u.username",
	"name":             "u.name",
	"last_name":        "u.last_name",
	"salary":           "u.salary",
	"currency":         "u.currency",
	"department_id":    "u.department_id",
	"status":           "p.status",
	"period":           "p.period",
}

var adjustmentColumns = filter.Columns{
	"adjustment_id":    "adjustments.adjustment_id",
	"payroll_entry_id": "adjustments.payroll_entry_id",
	"type":             "adjustments.type",
	"amount":           "adjustments.amount",
	"concept_id":       "adjustments.concept_id",
	"description":      "adjustments.description",
	"state":            "adjustments.state",
	"created_at":       "adjustments.created_at",
}

var deductionColumns = filter.Columns{
	"deduction_id": "deductions.deduction_id",
	"name":         "deductions.name",
	"percentage":   "deductions.percentage",
	"concept_id":   "deductions.concept_id",
	"state":        "deductions.state",
}

var conceptColumns = filter.Columns{
	"concept_id": "concepts.concept_id",
	"name":       "concepts.name",
	"state":      "concepts.state",
}

const entrySelect = "pe.*, u.username, u.name, u.last_name, u.currency, u.salary, u.avatar, p.period, p.status, p.period_end"

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	ActiveSettings(ctx context.Context) (*Settings, error)
	DeactivateSettings(ctx context.Context, actor string) error
	CreateSettings(ctx context.Context, s *Settings) error

	CreateConcept(ctx context.Context, c *Concept) error
	FindConceptPage(ctx context.Context, res filter.Result, page response.Page) ([]Concept, int64, error)
	FindConcept(ctx context.Context, id int) (*Concept, error)
	ConceptIDs(ctx context.Context) (map[string]int, error)

	CreateDeduction(ctx context.Context, d *Deduction) error
	FindDeductionPage(ctx context.Context, res filter.Result, page response.Page) ([]Deduction, int64, error)
	FindDeductions(ctx context.Context, ids []int) ([]Deduction, error)
	FindUser(ctx context.Context, username string) (*UserRef, error)
	FindDeductionAssignments(ctx context.Context, userID int) ([]DeductionAssignment, error)
	CreateDeductionAssignments(ctx context.Context, rows []DeductionAssignment) error
	SetDeductionAssignmentsState(ctx context.Context, userID int, deductionIDs []int, state, actor string) error
	FindRules(ctx context.Context, userIDs []int) ([]RuleRow, error)

	FindPending(ctx context.Context) (*Payroll, error)
	LastDone(ctx context.Context) (*Payroll, error)
	Latest(ctx context.Context) (*Payroll, error)
	CountInMonth(ctx context.Context, month time.Time) (int64, error)
	CreatePayroll(ctx context.Context, p *Payroll) error
	FindPayroll(ctx context.Context, id int) (*Payroll, error)
	LockPayroll(ctx context.Context, id int) (*Payroll, error)
	MarkDone(ctx context.Context, id int, actor string) (bool, error)
	FindPayrollPage(ctx context.Context, res filter.Result, page response.Page) ([]Payroll, int64, error)

	FindEligibleUsers(ctx context.Context, usernames []string, requireSalary bool) ([]UserRef, error)
	CreateEntries(ctx context.Context, rows []Entry) error
	FindEntry(ctx context.Context, id int) (*EntryRow, error)
	FindEntries(ctx context.Context, payrollID int, usernames []string, onlyPending bool) ([]EntryRow, error)
	FindEntryPage(ctx context.Context, res filter.Result, page response.Page) ([]EntryRow, int64, error)
	CountEntries(ctx context.Context, payrollIDs []int) (map[int]int, error)
	CountPendingEntries(ctx context.Context, payrollID int) (int64, error)
	UpdateEntry(ctx context.Context, id int, fields map[string]any) error

	CreateAdjustment(ctx context.Context, a *Adjustment) error
	UpdateAdjustment(ctx context.Context, id int, fields map[string]any) error
	FindAdjustment(ctx context.Context, id int) (*Adjustment, error)
	FindAdjustmentPage(ctx context.Context, res filter.Result, page response.Page) ([]Adjustment, int64, error)
	PendingAdjustments(ctx context.Context, entryIDs []int) ([]Adjustment, error)
	CompleteAdjustments(ctx context.Context, ids []int, actor string) error
	AdjustmentTotals(ctx context.Context, entryIDs []int) ([]AdjustmentTotal, error)

	CreateLedger(ctx context.Context, rows []PaymentDetail) error
	FindLedger(ctx context.Context, payrollIDs []int, entryID int) ([]LedgerRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: database.BindTx(r.db, tx)}
}

func (r *repository) ActiveSettings(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Order("id DESC").
		Take(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) DeactivateSettings(ctx context.Context, actor string) error {
	return r.db.WithContext(ctx).
		Model(&Settings{}).
		Where("state = ?", entity.StateActive).
		Updates(stateChange(entity.StateInactive, actor)).Error
}

func (r *repository) CreateSettings(ctx context.Context, s *Settings) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) CreateConcept(ctx context.Context, c *Concept) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindConceptPage(ctx context.Context, res filter.Result, page response.Page) ([]Concept, int64, error) {
	q, err := filter.Apply(r.db.WithContext(ctx).Model(&Concept{}), res, conceptColumns)
	if err != nil {
		return nil, 0, err
	}
	var rows []Concept
	total, err := filter.FindPage(q, page, "concepts.concept_id", &rows)
	return rows, total, err
}

func (r *repository) FindConcept(ctx context.Context, id int) (*Concept, error) {
	var c Concept
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Where("concept_id = ?", id).
		Take(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ConceptIDs maps every active concept name to its id.
func (r *repository) ConceptIDs(ctx context.Context) (map[string]int, error) {
	var rows []Concept
	if err := r.db.WithContext(ctx).Scopes(entity.Active("")).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, c := range rows {
		out[c.Name] = c.ConceptID
	}
	return out, nil
}

func (r *repository) CreateDeduction(ctx context.Context, d *Deduction) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindDeductionPage(ctx context.Context, res filter.Result, page response.Page) ([]Deduction, int64, error) {
	q, err := filter.Apply(r.db.WithContext(ctx).Model(&Deduction{}), res, deductionColumns)
	if err != nil {
		return nil, 0, err
	}
	var rows []Deduction
	total, err := filter.FindPage(q, page, "deductions.sort_order NULLS LAST, deductions.deduction_id", &rows)
	return rows, total, err
}

func (r *repository) FindDeductions(ctx context.Context, ids []int) ([]Deduction, error) {
	var rows []Deduction
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Where("deduction_id IN ?", ids).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindUser(ctx context.Context, username string) (*UserRef, error) {
	var u UserRef
	err := r.db.WithContext(ctx).
		Table("users").
		Select("user_id, username, salary").
		Where("username = ? AND state = ?", username, entity.StateActive).
		Take(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindDeductionAssignments(ctx context.Context, userID int) ([]DeductionAssignment, error) {
	var rows []DeductionAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateDeductionAssignments(ctx context.Context, rows []DeductionAssignment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) SetDeductionAssignmentsState(ctx context.Context, userID int, deductionIDs []int, state, actor string) error {
	if len(deductionIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&DeductionAssignment{}).
		Where("user_id = ? AND deduction_id IN ?", userID, deductionIDs).
		Updates(stateChange(state, actor)).Error
}

// FindRules returns the active deductions assigned to userIDs.
func (r *repository) FindRules(ctx context.Context, userIDs []int) ([]RuleRow, error) {
	var rows []RuleRow
	if len(userIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Table("deduction_assignments da").
		Select("da.id AS assignment_id, da.user_id, d.deduction_id, d.name, d.percentage, d.concept_id").
		Joins("JOIN deductions d ON d.deduction_id = da.deduction_id").
		Where("da.user_id IN ? AND da.state = ? AND d.state = ?", userIDs, entity.StateActive, entity.StateActive).
		Order("da.user_id, d.sort_order NULLS LAST, d.deduction_id").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPending(ctx context.Context) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Where("status = ?", StatusPending).
		Order("payroll_id DESC").
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) LastDone(ctx context.Context) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Where("status = ?", StatusDone).
		Order("period_end DESC, payroll_id DESC").
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Latest(ctx context.Context) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Order("created_at DESC, payroll_id DESC").
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CountInMonth counts payrolls whose period starts in month's calendar
// month.
func (r *repository) CountInMonth(ctx context.Context, month time.Time) (int64, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("period_start >= ? AND period_start < ?", start, start.AddDate(0, 1, 0)).
		Count(&n).Error
	return n, err
}

func (r *repository) CreatePayroll(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPayroll(ctx context.Context, id int) (*Payroll, error) {
	var p Payroll
	if err := r.db.WithContext(ctx).Where("payroll_id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// LockPayroll reads the payroll row with FOR UPDATE. It only makes sense
// inside a transaction.
func (r *repository) LockPayroll(ctx context.Context, id int) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payroll_id = ?", id).
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkDone flips a pending payroll to done. It reports false when the
// payroll was no longer pending.
func (r *repository) MarkDone(ctx context.Context, id int, actor string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("payroll_id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":     StatusDone,
			"updated_at": time.Now(),
			"updated_by": actor,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) FindPayrollPage(ctx context.Context, res filter.Result, page response.Page) ([]Payroll, int64, error) {
	q, err := filter.Apply(r.db.WithContext(ctx).Model(&Payroll{}), res, payrollColumns)
	if err != nil {
		return nil, 0, err
	}
	var rows []Payroll
	total, err := filter.FindPage(q, page, "payrolls.period_start DESC, payrolls.payroll_id DESC", &rows)
	return rows, total, err
}

// FindEligibleUsers returns active staff. With usernames it is limited to
// those names; requireSalary drops users without a positive salary.
func (r *repository) FindEligibleUsers(ctx context.Context, usernames []string, requireSalary bool) ([]UserRef, error) {
	q := r.db.WithContext(ctx).
		Table("users").
		Select("user_id, username, salary").
		Where("state = ? AND is_active AND is_staff", entity.StateActive)
	if len(usernames) > 0 {
		q = q.Where("username IN ?", usernames)
	}
	if requireSalary {
		q = q.Where("salary > 0")
	}
	var rows []UserRef
	err := q.Order("user_id").Find(&rows).Error
	return rows, err
}

func (r *repository) CreateEntries(ctx context.Context, rows []Entry) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) entries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("payroll_entries pe").
		Select(entrySelect).
		Joins("JOIN users u ON u.user_id = pe.user_id").
		Joins("JOIN payrolls p ON p.payroll_id = pe.payroll_id")
}

func (r *repository) FindEntry(ctx context.Context, id int) (*EntryRow, error) {
	var row EntryRow
	if err := r.entries(ctx).Where("pe.payroll_entry_id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindEntries returns the payroll's active entries. usernames narrows the
// set; onlyPending drops processed entries.
func (r *repository) FindEntries(ctx context.Context, payrollID int, usernames []string, onlyPending bool) ([]EntryRow, error) {
	q := r.entries(ctx).Where("pe.payroll_id = ? AND pe.state = ?", payrollID, entity.StateActive)
	if len(usernames) > 0 {
		q = q.Where("u.username IN ?", usernames)
	}
	if onlyPending {
		q = q.Where("NOT pe.processed")
	}
	var rows []EntryRow
	err := q.Order("pe.payroll_entry_id").Find(&rows).Error
	return rows, err
}

func (r *repository) FindEntryPage(ctx context.Context, res filter.Result, page response.Page) ([]EntryRow, int64, error) {
	q, err := filter.Apply(r.entries(ctx), res, entryColumns)
	if err != nil {
		return nil, 0, err
	}
	var rows []EntryRow
	total, err := filter.FindPage(q, page, "pe.payroll_id DESC, pe.payroll_entry_id", &rows)
	return rows, total, err
}

func (r *repository) CountEntries(ctx context.Context, payrollIDs []int) (map[int]int, error) {
	out := make(map[int]int, len(payrollIDs))
	if len(payrollIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		PayrollID int
		Total     int
	}
	err := r.db.WithContext(ctx).
		Model(&Entry{}).
		Select("payroll_id, COUNT(*) AS total").
		Where("payroll_id IN ? AND state = ?", payrollIDs, entity.StateActive).
		Group("payroll_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PayrollID] = row.Total
	}
	return out, nil
}

func (r *repository) CountPendingEntries(ctx context.Context, payrollID int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Entry{}).
		Where("payroll_id = ? AND state = ? AND NOT processed", payrollID, entity.StateActive).
		Count(&n).Error
	return n, err
}

func (r *repository) UpdateEntry(ctx context.Context, id int, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&Entry{}).
		Where("payroll_entry_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateAdjustment(ctx context.Context, a *Adjustment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) UpdateAdjustment(ctx context.Context, id int, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&Adjustment{}).
		Where("adjustment_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindAdjustment(ctx context.Context, id int) (*Adjustment, error) {
	var a Adjustment
	if err := r.db.WithContext(ctx).Where("adjustment_id = ?", id).Take(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAdjustmentPage(ctx context.Context, res filter.Result, page response.Page) ([]Adjustment, int64, error) {
	q, err := filter.Apply(r.db.WithContext(ctx).Model(&Adjustment{}), res, adjustmentColumns)
	if err != nil {
		return nil, 0, err
	}
	var rows []Adjustment
	total, err := filter.FindPage(q, page, "adjustments.adjustment_id DESC", &rows)
	return rows, total, err
}

// PendingAdjustments returns the adjustments not yet applied to a payment.
func (r *repository) PendingAdjustments(ctx context.Context, entryIDs []int) ([]Adjustment, error) {
	var rows []Adjustment
	if len(entryIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Where("payroll_entry_id IN ?", entryIDs).
		Order("adjustment_id").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CompleteAdjustments(ctx context.Context, ids []int, actor string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&Adjustment{}).
		Where("adjustment_id IN ? AND state = ?", ids, entity.StateActive).
		Updates(stateChange(StateCompleted, actor)).Error
}

// AdjustmentTotals sums active and completed adjustments per entry and type.
func (r *repository) AdjustmentTotals(ctx context.Context, entryIDs []int) ([]AdjustmentTotal, error) {
	var rows []AdjustmentTotal
	if len(entryIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Model(&Adjustment{}).
		Select("payroll_entry_id, type, SUM(amount) AS total").
		Scopes(entity.InState("", entity.StateActive, StateCompleted)).
		Where("payroll_entry_id IN ?", entryIDs).
		Group("payroll_entry_id, type").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CreateLedger(ctx context.Context, rows []PaymentDetail) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindLedger returns the ledger lines of payrollIDs; a non-zero entryID
// narrows them to one entry.
func (r *repository) FindLedger(ctx context.Context, payrollIDs []int, entryID int) ([]LedgerRow, error) {
	var rows []LedgerRow
	if len(payrollIDs) == 0 {
		return rows, nil
	}
	q := r.db.WithContext(ctx).
		Table("payroll_payment_details d").
		Select("d.*, c.name AS concept_name").
		Joins("JOIN concepts c ON c.concept_id = d.concept_id").
		Where("d.payroll_id IN ? AND d.state = ?", payrollIDs, entity.StateActive)
	if entryID != 0 {
		q = q.Where("d.payroll_entry_id = ?", entryID)
	}
	err := q.Order("d.payroll_entry_id, d.id").Find(&rows).Error
	return rows, err
}

func stateChange(state, actor string) map[string]any {
	return map[string]any{
		"state":      state,
		"updated_at": time.Now(),
		"updated_by": actor,
	}
}
