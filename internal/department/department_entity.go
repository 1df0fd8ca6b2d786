package department

import "github.com/fenixfl1/CompuPay/internal/shared/entity"

type Department struct {
	DepartmentID int     `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"type:varchar(50);not null"`
	Description  *string `gorm:"type:varchar(250)"`
	Color        *string `gorm:"type:varchar(8)"`
	entity.Base
}

func (Department) TableName() string {
	return "departments"
}

// DepartmentRow carries the derived employee count next to the stored columns.
type DepartmentRow struct {
	Department    `gorm:"embedded"`
	EmployeeCount int64
}
