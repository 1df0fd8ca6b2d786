package notification

import (
	"context"

	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"gorm.io/gorm"
)

var columns = filter.Columns{
	"id":         "id",
	"sender":     "sender",
	"receiver":   "receiver",
	"message":    "message",
	"type":       "type",
	"is_read":    "is_read",
	"state":      "state",
	"created_at": "created_at",
}

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindUnread(ctx context.Context, receiver string) ([]Notification, error)
	MarkAllRead(ctx context.Context, receiver string) (int64, error)
	FindPage(ctx context.Context, res filter.Result, page response.Page) ([]Notification, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindUnread(ctx context.Context, receiver string) ([]Notification, error) {
	var out []Notification
	err := r.db.WithContext(ctx).
		Where("receiver = ? AND is_read = false AND state = ?", receiver, entity.StateActive).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) MarkAllRead(ctx context.Context, receiver string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("receiver = ? AND is_read = false", receiver).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *repository) FindPage(ctx context.Context, res filter.Result, page response.Page) ([]Notification, int64, error) {
	q, err := filter.Apply(r.db.WithContext(ctx).Model(&Notification{}), res, columns)
	if err != nil {
		return nil, 0, err
	}

	var rows []Notification
	total, err := filter.FindPage(q, page, "created_at DESC", &rows)
	return rows, total, err
}
