package department

import (
	"context"
	"database/sql"

	"github.com/fenixfl1/CompuPay/internal/database"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"gorm.io/gorm"
)

const employeeCountSelect = `departments.*, (
	SELECT COUNT(*) FROM users u
	WHERE u.department_id = departments.department_id AND u.state = 'A'
) AS employee_count`

var columns = filter.Columns{
	"department_id": "departments.department_id",
	"name":          "departments.name",
	"description":   "departments.description",
	"state":         "departments.state",
	"created_at":    "departments.created_at",
}

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	Update(ctx context.Context, id int, fields map[string]any) error
	FindByID(ctx context.Context, id int) (*DepartmentRow, error)
	FindPage(ctx context.Context, res filter.Result, page response.Page) ([]DepartmentRow, int64, error)
	FindOptions(ctx context.Context) ([]Department, error)
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) Update(ctx context.Context, id int, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&Department{}).
		Where("department_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*DepartmentRow, error) {
	var row DepartmentRow
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Select(employeeCountSelect).
		Where("departments.department_id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindPage(ctx context.Context, res filter.Result, page response.Page) ([]DepartmentRow, int64, error) {
	q, err := filter.Apply(r.db.WithContext(ctx).Model(&Department{}), res, columns)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	var rows []DepartmentRow
	err = q.Select(employeeCountSelect).
		Order("departments.name ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}
