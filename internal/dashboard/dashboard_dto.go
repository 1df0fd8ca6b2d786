package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepartmentCount struct {
	Name  string  `json:"name"`
	Value int64   `json:"value"`
	Fill  *string `json:"fill"`
}

type MonthCount struct {
	Month string `json:"month"`
	Value int64  `json:"value"`
}

type UserStatistics struct {
	TotalRegistered int64        `json:"total_registered"`
	TotalInterns    int64        `json:"total_interns"`
	NewEmployees    int64        `json:"new_employees"`
	TotalEmployees  int64        `json:"total_employees"`
	LineChart       []MonthCount `json:"line_chart"`
}

type DepartmentSalary struct {
	Department string          `json:"department"`
	Fill       *string         `json:"fill"`
	Total      decimal.Decimal `json:"total_salary"`
	Average    decimal.Decimal `json:"average_salary"`
	Percent    decimal.Decimal `json:"percent"`
}

// UserCounts is the single aggregate row behind UserStatistics.
type UserCounts struct {
	TotalRegistered int64
	TotalInterns    int64
	NewEmployees    int64
	TotalEmployees  int64
}

type MonthRow struct {
	Month time.Time
	Value int64
}

type SalaryRow struct {
	Department string
	Fill       *string
	Total      decimal.Decimal
	Headcount  int64
}

type TaskPerformanceRequest struct {
	Condition TaskPerformanceCondition `json:"condition" binding:"required"`
}

type TaskPerformanceCondition struct {
	DateRange   []string `json:"date_range" binding:"required,len=2"`
	Departments []int    `json:"departments"`
}

// DayPerformance holds the tasks created on one day, keyed by department.
type DayPerformance struct {
	Date  string           `json:"date"`
	Day   int              `json:"day"`
	Tasks map[string]int64 `json:"tasks"`
}

type DepartmentRef struct {
	Name string  `json:"name"`
	Fill *string `json:"fill"`
}

type TaskPerformance struct {
	Performance []DayPerformance `json:"performance"`
	Departments []DepartmentRef  `json:"departments"`
}

// MonthPayments sums the ledger of one month, keyed by concept name.
type MonthPayments struct {
	Month    string                     `json:"month"`
	Period   string                     `json:"period"`
	Concepts map[string]decimal.Decimal `json:"concepts"`
}

type ConceptColor struct {
	Concept string `json:"concept"`
	Fill    string `json:"fill"`
}

type PaymentDetail struct {
	Data     []MonthPayments `json:"data"`
	Concepts []ConceptColor  `json:"concepts"`
}

type TaskCountRow struct {
	Day        time.Time
	Department string
	Total      int64
}

type ConceptMonthRow struct {
	Month   time.Time
	Concept string
	Total   decimal.Decimal
}
