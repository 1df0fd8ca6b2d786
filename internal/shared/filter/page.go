package filter

import (
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"gorm.io/gorm"
)

// FindPage counts the rows matched by q and loads the requested page of
// them into dest, ordered by order.
func FindPage(q *gorm.DB, page response.Page, order string, dest any) (int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	err := q.Session(&gorm.Session{}).
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(dest).Error
	return total, err
}
