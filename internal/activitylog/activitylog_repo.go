package activitylog

import (
	"context"

	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"gorm.io/gorm"
)

var columns = filter.Columns{
	"username":       "username",
	"content_type":   "content_type",
	"object_id":      "object_id",
	"object_repr":    "object_repr",
	"action_flag":    "action_flag",
	"action_time":    "action_time",
	"change_message": "change_message",
}

//go:generate mockgen -source=activitylog_repo.go -destination=mock/activitylog_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *ActivityLog) error
	FindPage(ctx context.Context, res filter.Result, page response.Page) ([]ActivityLog, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindPage(ctx context.Context, res filter.Result, page response.Page) ([]ActivityLog, int64, error) {
	q, err := filter.Apply(r.db.WithContext(ctx).Model(&ActivityLog{}), res, columns)
	if err != nil {
		return nil, 0, err
	}

	var logs []ActivityLog
	total, err := filter.FindPage(q, page, "action_time DESC, id DESC", &logs)
	return logs, total, err
}
