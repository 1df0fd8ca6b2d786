package payroll

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"

	"github.com/shopspring/decimal"
)

const (
	dateLayout   = "2006-01-02"
	allEmployees = "__all__"
)

type SaveSettingsRequest struct {
	Periods         int  `json:"periods" binding:"required,oneof=1 2 4"`
	Autopay         bool `json:"autopay"`
	DeductionPeriod int  `json:"deduction_period" binding:"omitempty,min=1,max=4"`
	DurationDays    int  `json:"duration_days" binding:"required,min=1,max=31"`
}

type SettingsResponse struct {
	ID              int    `json:"id"`
	Periods         int    `json:"periods"`
	Autopay         bool   `json:"autopay"`
	DeductionPeriod int    `json:"deduction_period"`
	DurationDays    int    `json:"duration_days"`
	State           string `json:"state"`
}

type CreateConceptRequest struct {
	Name        string  `json:"name" binding:"required,max=20"`
	Description *string `json:"description" binding:"omitempty,max=250"`
}

type ConceptResponse struct {
	ConceptID   int     `json:"concept_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	State       string  `json:"state"`
}

type CreateDeductionRequest struct {
	Name        string          `json:"name" binding:"required,oneof=AFP SFS ISR"`
	Percentage  decimal.Decimal `json:"percentage"`
	Description string          `json:"description" binding:"max=250"`
	Order       *int            `json:"order"`
	ConceptID   *int            `json:"concept_id"`
}

type DeductionResponse struct {
	DeductionID int             `json:"deduction_id"`
	Name        string          `json:"name"`
	Percentage  decimal.Decimal `json:"percentage"`
	Description string          `json:"description"`
	Order       *int            `json:"order"`
	ConceptID   *int            `json:"concept_id"`
	State       string          `json:"state"`
}

type DeductionAssignmentRequest struct {
	Username   string `json:"username" binding:"required"`
	Deductions []int  `json:"deductions" binding:"required,min=1"`
}

// EmployeeSelector is either every eligible employee or an explicit list of
// usernames.
type EmployeeSelector struct {
	All       bool
	Usernames []string
}

func (s *EmployeeSelector) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		if v != allEmployees {
			return payrollerrors.ErrInvalidEmployees
		}
		s.All = true
		return nil
	}

	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return payrollerrors.ErrInvalidEmployees
	}
	s.Usernames = names
	return nil
}

func (s EmployeeSelector) MarshalJSON() ([]byte, error) {
	if s.All {
		return json.Marshal(allEmployees)
	}
	return json.Marshal(s.Usernames)
}

func (s EmployeeSelector) empty() bool {
	return !s.All && len(s.Usernames) == 0
}

type CreatePayrollRequest struct {
	Employees   EmployeeSelector `json:"employees"`
	PeriodStart string           `json:"period_start" binding:"omitempty,datetime=2006-01-02"`
	PeriodEnd   string           `json:"period_end" binding:"omitempty,datetime=2006-01-02"`
}

type AddEntriesRequest struct {
	Usernames []string `json:"usernames" binding:"required,min=1"`
}

type ProcessPartialRequest struct {
	Usernames []string `json:"usernames" binding:"required,min=1"`
}

type UpdateEntryRequest struct {
	State string `json:"state" binding:"required,oneof=A I"`
}

type CreateAdjustmentRequest struct {
	PayrollID   int             `json:"payroll_id" binding:"required"`
	Username    string          `json:"username" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=B D"`
	Amount      decimal.Decimal `json:"amount"`
	ConceptID   *int            `json:"concept_id"`
	Description string          `json:"description" binding:"max=250"`
}

type UpdateAdjustmentRequest struct {
	Type        *string          `json:"type" binding:"omitempty,oneof=B D"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" binding:"omitempty,max=250"`
	State       *string          `json:"state"`
}

func (r UpdateAdjustmentRequest) fields() map[string]any {
	out := map[string]any{}
	if r.Type != nil {
		out["type"] = *r.Type
	}
	if r.Amount != nil {
		out["amount"] = *r.Amount
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.State != nil {
		out["state"] = *r.State
	}
	return out
}

type AdjustmentResponse struct {
	AdjustmentID   int             `json:"adjustment_id"`
	PayrollEntryID int             `json:"payroll_entry_id"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	ConceptID      int             `json:"concept_id"`
	Description    string          `json:"description"`
	State          string          `json:"state"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by"`
}

type PayrollResponse struct {
	PayrollID   int       `json:"payroll_id"`
	Label       string    `json:"label"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	Period      int       `json:"period"`
	Status      string    `json:"status"`
	Entries     int       `json:"entries"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
}

type EntryResponse struct {
	PayrollEntryID int             `json:"payroll_entry_id"`
	PayrollID      int             `json:"payroll_id"`
	Username       string          `json:"username"`
	FullName       string          `json:"full_name"`
	Avatar         *string         `json:"avatar"`
	Currency       string          `json:"currency"`
	Salary         decimal.Decimal `json:"salary"`
	Bonus          decimal.Decimal `json:"bonus"`
	Discount       decimal.Decimal `json:"discount"`
	Processed      bool            `json:"processed"`
	State          string          `json:"state"`
}

type LedgerLineResponse struct {
	ID           int64           `json:"id"`
	Concept      string          `json:"concept"`
	Amount       decimal.Decimal `json:"amount"`
	GrossSalary  decimal.Decimal `json:"gross_salary"`
	Operator     string          `json:"operator"`
	Comment      string          `json:"comment"`
	Period       int             `json:"period"`
	PayrollEntry int             `json:"payroll_entry_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

type HistoryItem struct {
	PayrollResponse
	Lines []LedgerLineResponse `json:"lines"`
}

type PayrollTotals struct {
	Entries   int             `json:"entries"`
	Processed int             `json:"processed"`
	Salaries  decimal.Decimal `json:"salaries"`
	Bonus     decimal.Decimal `json:"bonus"`
	Discount  decimal.Decimal `json:"discount"`
}

type PayrollInfoResponse struct {
	PayrollID     int              `json:"payroll_id"`
	Label         string           `json:"label"`
	Status        string           `json:"status"`
	NextPayment   string           `json:"next_payment"`
	CurrentPeriod int              `json:"current_period"`
	PeriodStart   string           `json:"period_start"`
	PeriodEnd     string           `json:"period_end"`
	Settings      SettingsResponse `json:"settings"`
	Totals        PayrollTotals    `json:"totals"`
}

// ProcessResult reports one processing run.
type ProcessResult struct {
	PayrollID int             `json:"payroll_id"`
	Processed int             `json:"processed"`
	Status    string          `json:"status"`
	NetTotal  decimal.Decimal `json:"net_total"`
}

type AutopayResult struct {
	Processed *ProcessResult   `json:"processed,omitempty"`
	Started   *PayrollResponse `json:"started,omitempty"`
}

// parseDate reads an optional yyyy-mm-dd value.
func parseDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapSettings(s Settings) SettingsResponse {
	return SettingsResponse{
		ID:              s.ID,
		Periods:         s.Periods,
		Autopay:         s.Autopay,
		DeductionPeriod: s.DeductionPeriod,
		DurationDays:    s.DurationDays,
		State:           s.State,
	}
}

func mapConcept(c Concept) ConceptResponse {
	return ConceptResponse{
		ConceptID:   c.ConceptID,
		Name:        c.Name,
		Description: c.Description,
		State:       c.State,
	}
}

func mapDeduction(d Deduction) DeductionResponse {
	return DeductionResponse{
		DeductionID: d.DeductionID,
		Name:        d.Name,
		Percentage:  d.Percentage,
		Description: d.Description,
		Order:       d.SortOrder,
		ConceptID:   d.ConceptID,
		State:       d.State,
	}
}

func mapAdjustment(a Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID:   a.AdjustmentID,
		PayrollEntryID: a.PayrollEntryID,
		Type:           a.Type,
		Amount:         a.Amount,
		ConceptID:      a.ConceptID,
		Description:    a.Description,
		State:          a.State,
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
	}
}

func mapPayroll(p Payroll, periods int, entries int) PayrollResponse {
	return PayrollResponse{
		PayrollID:   p.PayrollID,
		Label:       payrollLabel(p, periods),
		PeriodStart: p.PeriodStart.Format(dateLayout),
		PeriodEnd:   p.PeriodEnd.Format(dateLayout),
		Period:      p.Period,
		Status:      p.Status,
		Entries:     entries,
		CreatedAt:   p.CreatedAt,
		CreatedBy:   p.CreatedBy,
	}
}

func mapEntry(r EntryRow) EntryResponse {
	return EntryResponse{
		PayrollEntryID: r.PayrollEntryID,
		PayrollID:      r.PayrollID,
		Username:       r.Username,
		FullName:       strings.TrimSpace(r.Name + " " + r.LastName),
		Avatar:         r.Avatar,
		Currency:       r.Currency,
		Salary:         r.Salary,
		Bonus:          decimal.Zero,
		Discount:       decimal.Zero,
		Processed:      r.Processed,
		State:          r.State,
	}
}

func mapLedger(r LedgerRow) LedgerLineResponse {
	comment := ""
	if r.Comment != nil {
		comment = *r.Comment
	}
	return LedgerLineResponse{
		ID:           r.ID,
		Concept:      r.ConceptName,
		Amount:       r.ConceptAmount,
		GrossSalary:  r.GrossSalary,
		Operator:     r.Operator,
		Comment:      comment,
		Period:       r.Period,
		PayrollEntry: r.PayrollEntryID,
		CreatedAt:    r.CreatedAt,
	}
}
