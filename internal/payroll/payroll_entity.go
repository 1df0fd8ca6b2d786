package payroll

import (
	"time"

	"github.com/fenixfl1/CompuPay/internal/shared/entity"

	"github.com/shopspring/decimal"
)

const (
	StatusPending = "P"
	StatusDone    = "F"
)

const (
	AdjustmentBonus    = "B"
	AdjustmentDiscount = "D"

	// StateCompleted marks an adjustment already applied to a payment.
	StateCompleted = "S"
)

const (
	OperatorAdd      = "+"
	OperatorSubtract = "-"
)

// Concept names seeded by the payroll migration.
const (
	ConceptSalary   = "SALARIO"
	ConceptAFP      = "AFP"
	ConceptSFS      = "SFS"
	ConceptISR      = "ISR"
	ConceptBonus    = "BONO"
	ConceptDiscount = "DESCUENTO"
)

var (
	ValidPeriods      = []int{1, 2, 4}
	DeductionNames    = []string{ConceptAFP, ConceptSFS, ConceptISR}
	AdjustmentTypes   = []string{AdjustmentBonus, AdjustmentDiscount}
	AdjustmentStates  = []string{entity.StateActive, entity.StateInactive, StateCompleted}
	adjustmentConcept = map[string]string{
		AdjustmentBonus:    ConceptBonus,
		AdjustmentDiscount: ConceptDiscount,
	}
)

type Concept struct {
	ConceptID   int     `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(20);not null"`
	Description *string `gorm:"type:varchar(250)"`
	entity.Base
}

func (Concept) TableName() string {
	return "concepts"
}

type Settings struct {
	ID              int `gorm:"primaryKey;autoIncrement"`
	Periods         int `gorm:"not null"`
	Autopay         bool
	DeductionPeriod int `gorm:"not null"`
	DurationDays    int `gorm:"not null"`
	entity.Base
}

func (Settings) TableName() string {
	return "payroll_settings"
}

type Payroll struct {
	PayrollID   int       `gorm:"primaryKey;autoIncrement"`
	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`
	Period      int       `gorm:"not null"`
	Status      string    `gorm:"type:varchar(1);not null"`
	entity.Base
}

func (Payroll) TableName() string {
	return "payrolls"
}

func (p Payroll) IsPending() bool {
	return p.Status == StatusPending
}

type Entry struct {
	PayrollEntryID int `gorm:"primaryKey;autoIncrement"`
	PayrollID      int `gorm:"not null"`
	UserID         int `gorm:"not null"`
	Processed      bool
	entity.Base
}

func (Entry) TableName() string {
	return "payroll_entries"
}

type Adjustment struct {
	AdjustmentID   int             `gorm:"primaryKey;autoIncrement"`
	Type           string          `gorm:"type:varchar(1);not null"`
	Description    string          `gorm:"type:varchar(250);not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PayrollEntryID int             `gorm:"not null"`
	ConceptID      int             `gorm:"not null"`
	entity.Base
}

func (Adjustment) TableName() string {
	return "adjustments"
}

type Deduction struct {
	DeductionID int             `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"type:varchar(50);not null"`
	Percentage  decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	Description string          `gorm:"type:varchar(250);not null"`
	SortOrder   *int
	ConceptID   *int
	entity.Base
}

func (Deduction) TableName() string {
	return "deductions"
}

type DeductionAssignment struct {
	ID          int `gorm:"primaryKey;autoIncrement"`
	UserID      int `gorm:"not null"`
	DeductionID int `gorm:"not null"`
	entity.Base
}

func (DeductionAssignment) TableName() string {
	return "deduction_assignments"
}

// PaymentDetail is one ledger line contributing to an entry's net pay.
type PaymentDetail struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	PayrollID      int             `gorm:"not null"`
	PayrollEntryID int             `gorm:"not null"`
	ConceptID      int             `gorm:"not null"`
	Period         int             `gorm:"not null"`
	ConceptAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	GrossSalary    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Comment        *string
	Operator       string `gorm:"type:varchar(1);not null"`
	entity.Base
}

func (PaymentDetail) TableName() string {
	return "payroll_payment_details"
}

// UserRef is the slice of a user the payroll engine reads.
type UserRef struct {
	UserID   int
	Username string
	Salary   decimal.Decimal
}

// EntryRow is an entry joined with its employee.
type EntryRow struct {
	Entry     `gorm:"embedded"`
	Username  string
	Name      string
	LastName  string
	Currency  string
	Salary    decimal.Decimal
	Avatar    *string
	Period    int
	Status    string
	PeriodEnd time.Time
}

// RuleRow is an active deduction assigned to a user.
type RuleRow struct {
	AssignmentID int
	UserID       int
	DeductionID  int
	Name         string
	Percentage   decimal.Decimal
	ConceptID    *int
}

// AdjustmentTotal sums an entry's adjustments of one type.
type AdjustmentTotal struct {
	PayrollEntryID int
	Type           string
	Total          decimal.Decimal
}

// LedgerRow is a ledger line joined with its concept name.
type LedgerRow struct {
	PaymentDetail `gorm:"embedded"`
	ConceptName   string
}
