package dashboard

import (
	"context"
	"time"

	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/user"

	"gorm.io/gorm"
)

// Employees are active staff with a salary; interns are users still pending.
const employeeFilter = "u.state = 'A' AND u.is_staff AND u.salary > 0"

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	EmployeesByDepartment(ctx context.Context) ([]DepartmentCount, error)
	UserCounts(ctx context.Context, monthStart time.Time) (UserCounts, error)
	EmployeesByMonth(ctx context.Context) ([]MonthRow, error)
	SalaryByDepartment(ctx context.Context) ([]SalaryRow, error)
	ActiveDepartments(ctx context.Context, ids []int) ([]DepartmentRef, error)
	TaskCountsByDay(ctx context.Context, from, to time.Time, departmentIDs []int) ([]TaskCountRow, error)
	PaymentTotalsByMonth(ctx context.Context) ([]ConceptMonthRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) EmployeesByDepartment(ctx context.Context) ([]DepartmentCount, error) {
	var rows []DepartmentCount
	err := r.db.WithContext(ctx).
		Table("departments d").
		Select(`d.name AS name, d.color AS fill, COUNT(u.user_id) AS value`).
		Joins("LEFT JOIN users u ON u.department_id = d.department_id AND u.state = ? AND u.is_staff", entity.StateActive).
		Where("d.state = ?", entity.StateActive).
		Group("d.department_id, d.name, d.color").
		Order("d.department_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) UserCounts(ctx context.Context, monthStart time.Time) (UserCounts, error) {
	var out UserCounts
	err := r.db.WithContext(ctx).
		Table("users u").
		Select(`COUNT(*) AS total_registered,
			COUNT(*) FILTER (WHERE u.state = ?) AS total_interns,
			COUNT(*) FILTER (WHERE u.created_at >= ?) AS new_employees,
			COUNT(*) FILTER (WHERE `+employeeFilter+`) AS total_employees`,
			user.StatePending, monthStart).
		Where("u.state IN ?", []string{entity.StateActive, user.StatePending}).
		Scan(&out).Error
	return out, err
}

func (r *repository) EmployeesByMonth(ctx context.Context) ([]MonthRow, error) {
	var rows []MonthRow
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("date_trunc('month', u.created_at) AS month, COUNT(*) AS value").
		Where("u.state = ?", entity.StateActive).
		Group("1").
		Order("1").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) SalaryByDepartment(ctx context.Context) ([]SalaryRow, error) {
	var rows []SalaryRow
	err := r.db.WithContext(ctx).
		Table("users u").
		Select(`COALESCE(d.name, '') AS department, d.color AS fill,
			SUM(u.salary) AS total, COUNT(*) AS headcount`).
		Joins("LEFT JOIN departments d ON d.department_id = u.department_id").
		Where(employeeFilter).
		Group("d.name, d.color").
		Order("d.name").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ActiveDepartments(ctx context.Context, ids []int) ([]DepartmentRef, error) {
	var rows []DepartmentRef
	q := r.db.WithContext(ctx).
		Table("departments d").
		Select("d.name AS name, d.color AS fill").
		Where("d.state = ?", entity.StateActive)
	if len(ids) > 0 {
		q = q.Where("d.department_id IN ?", ids)
	}
	err := q.Order("d.name").Scan(&rows).Error
	return rows, err
}

// TaskCountsByDay counts tasks created in [from, to) per day and per
// department of their assignees. A task shared by two departments counts
// once for each.
func (r *repository) TaskCountsByDay(ctx context.Context, from, to time.Time, departmentIDs []int) ([]TaskCountRow, error) {
	var rows []TaskCountRow
	q := r.db.WithContext(ctx).
		Table("tasks t").
		Select("CAST(t.created_at AS date) AS day, d.name AS department, COUNT(DISTINCT t.task_id) AS total").
		Joins("JOIN task_assignments ta ON ta.task_id = t.task_id AND ta.state = ?", entity.StateActive).
		Joins("JOIN users u ON u.user_id = ta.user_id").
		Joins("JOIN departments d ON d.department_id = u.department_id AND d.state = ?", entity.StateActive).
		Where("t.state = ? AND t.created_at >= ? AND t.created_at < ?", entity.StateActive, from, to)
	if len(departmentIDs) > 0 {
		q = q.Where("d.department_id IN ?", departmentIDs)
	}
	err := q.Group("1, d.name").Order("1, d.name").Scan(&rows).Error
	return rows, err
}

// PaymentTotalsByMonth sums every ledger line by the month its payroll
// closed and by concept.
func (r *repository) PaymentTotalsByMonth(ctx context.Context) ([]ConceptMonthRow, error) {
	var rows []ConceptMonthRow
	err := r.db.WithContext(ctx).
		Table("payroll_payment_details pd").
		Select("CAST(date_trunc('month', p.period_end) AS date) AS month, c.name AS concept, SUM(pd.concept_amount) AS total").
		Joins("JOIN payrolls p ON p.payroll_id = pd.payroll_id").
		Joins("JOIN concepts c ON c.concept_id = pd.concept_id").
		Where("pd.state = ?", entity.StateActive).
		Group("1, c.name").
		Order("1, c.name").
		Scan(&rows).Error
	return rows, err
}
