package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fenixfl1/CompuPay/internal/database"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"gorm.io/gorm"
)

const rowSelect = "users.*, d.name AS department_name, s.username AS supervisor_username"

var columns = filter.Columns{
	"user_id":           "users.user_id",
	"username":          "users.username",
	"name":              "users.name",
	"last_name":         "users.last_name",
	"email":             "users.email",
	"identity_document": "users.identity_document",
	"department_id":     "users.department_id",
	"department":        "d.name",
	"supervisor":        "s.username",
	"is_staff":          "users.is_staff",
	"state":             "users.state",
	"hired_date":        "users.hired_date",
	"created_at":        "users.created_at",
}

// uniqueColumns are the columns Exists may check.
var uniqueColumns = map[string]struct{}{
	"username":          {},
	"email":             {},
	"identity_document": {},
}

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, userID int, fields map[string]any) error
	Delete(ctx context.Context, userID int) error
	FindByID(ctx context.Context, userID int) (*UserRow, error)
	FindByUsername(ctx context.Context, username string) (*UserRow, error)
	FindPage(ctx context.Context, res filter.Result, page response.Page) ([]UserRow, int64, error)
	FindRoles(ctx context.Context, userID int) ([]UserRole, error)
	Exists(ctx context.Context, column, value string) (bool, error)
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

func (r *repository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Joins("LEFT JOIN departments d ON d.department_id = users.department_id").
		Joins("LEFT JOIN users s ON s.user_id = users.supervisor_id")
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) Update(ctx context.Context, userID int, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the user and its role assignments. It is only used to undo
// a creation that could not be completed.
func (r *repository) Delete(ctx context.Context, userID int) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec("DELETE FROM role_assignments WHERE user_id = ?", userID).Error; err != nil {
		return err
	}
	return db.Exec("DELETE FROM users WHERE user_id = ?", userID).Error
}

func (r *repository) FindByID(ctx context.Context, userID int) (*UserRow, error) {
	var row UserRow
	err := r.base(ctx).
		Select(rowSelect).
		Where("users.user_id = ?", userID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*UserRow, error) {
	var row UserRow
	err := r.base(ctx).
		Select(rowSelect).
		Where("users.username = ?", username).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindPage(ctx context.Context, res filter.Result, page response.Page) ([]UserRow, int64, error) {
	q, err := filter.Apply(r.base(ctx), res, columns)
	if err != nil {
		return nil, 0, err
	}

	var rows []UserRow
	total, err := filter.FindPage(q.Select(rowSelect), page, "users.user_id ASC", &rows)
	return rows, total, err
}

func (r *repository) FindRoles(ctx context.Context, userID int) ([]UserRole, error) {
	var roles []UserRole
	err := r.db.WithContext(ctx).
		Table("roles").
		Select("roles.role_id, roles.name").
		Joins("JOIN role_assignments ra ON ra.role_id = roles.role_id").
		Where("ra.user_id = ? AND ra.state = 'A' AND roles.state = 'A'", userID).
		Order("roles.name ASC").
		Scan(&roles).Error
	return roles, err
}

func (r *repository) Exists(ctx context.Context, column, value string) (bool, error) {
	if _, ok := uniqueColumns[column]; !ok {
		return false, fmt.Errorf("user: column %q is not unique", column)
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where(column+" = ?", value).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
