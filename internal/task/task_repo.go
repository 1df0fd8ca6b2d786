package task

import (
	"context"
	"database/sql"
	"time"

	"github.com/fenixfl1/CompuPay/internal/database"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"gorm.io/gorm"
)

var taskColumns = filter.Columns{
	"task_id":         "tasks.task_id",
	"name":            "tasks.name",
	"description":     "tasks.description",
	"completed":       "tasks.completed",
	"completion_date": "tasks.completion_date",
	"priority":        "tasks.priority",
	"status":          "tasks.status",
	"start_date":      "tasks.start_date",
	"end_date":        "tasks.end_date",
	"state":           "tasks.state",
	"created_at":      "tasks.created_at",
	"created_by":      "tasks.created_by",
}

var tagColumns = filter.Columns{
	"tag_id":     "tags.tag_id",
	"name":       "tags.name",
	"color":      "tags.color",
	"state":      "tags.state",
	"created_at": "tags.created_at",
}

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, id int, fields map[string]any) error
	FindByID(ctx context.Context, id int) (*Task, error)
	FindPage(ctx context.Context, res filter.Result, page response.Page) ([]Task, int64, error)

	FindUsers(ctx context.Context, usernames []string) ([]UserRef, error)
	FindAssignees(ctx context.Context, taskIDs []int) ([]AssigneeRow, error)
	FindAssignments(ctx context.Context, taskID int, userIDs []int) ([]TaskAssignment, error)
	CreateAssignments(ctx context.Context, rows []TaskAssignment) error
	SetAssignmentsState(ctx context.Context, taskID int, userIDs []int, state, actor string) error

	FindTags(ctx context.Context, ids []int) ([]Tag, error)
	FindTaskTags(ctx context.Context, taskIDs []int) ([]TagRow, error)
	FindTagLinks(ctx context.Context, taskID int, tagIDs []int) ([]TaskTag, error)
	CreateTagLinks(ctx context.Context, rows []TaskTag) error
	SetTagLinksState(ctx context.Context, taskID int, tagIDs []int, state, actor string) error

	CreateTag(ctx context.Context, tag *Tag) error
	UpdateTag(ctx context.Context, id int, fields map[string]any) error
	FindTagByID(ctx context.Context, id int) (*Tag, error)
	FindTagPage(ctx context.Context, res filter.Result, page response.Page) ([]Tag, int64, error)
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

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) Update(ctx context.Context, id int, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&Task{}).
		Where("task_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Task, error) {
	var t Task
	if err := r.db.WithContext(ctx).Where("task_id = ?", id).Take(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindPage(ctx context.Context, res filter.Result, page response.Page) ([]Task, int64, error) {
	q, err := filter.Apply(r.db.WithContext(ctx).Model(&Task{}), res, taskColumns)
	if err != nil {
		return nil, 0, err
	}

	var tasks []Task
	total, err := filter.FindPage(q, page, "tasks.task_id DESC", &tasks)
	return tasks, total, err
}

// FindUsers resolves active usernames. Unknown or inactive names are
// simply absent from the result.
func (r *repository) FindUsers(ctx context.Context, usernames []string) ([]UserRef, error) {
	var users []UserRef
	err := r.db.WithContext(ctx).
		Table("users").
		Select("user_id, username").
		Where("username IN ? AND state = ?", usernames, entity.StateActive).
		Find(&users).Error
	return users, err
}

func (r *repository) FindAssignees(ctx context.Context, taskIDs []int) ([]AssigneeRow, error) {
	var rows []AssigneeRow
	err := r.db.WithContext(ctx).
		Table("task_assignments ta").
		Select("ta.task_id, u.user_id, u.username, u.name, u.last_name, u.avatar").
		Joins("JOIN users u ON u.user_id = ta.user_id").
		Where("ta.task_id IN ? AND ta.state = ?", taskIDs, entity.StateActive).
		Order("u.username").
		Find(&rows).Error
	return rows, err
}

// FindAssignments returns the task's assignment rows in any state, limited
// to userIDs when given.
func (r *repository) FindAssignments(ctx context.Context, taskID int, userIDs []int) ([]TaskAssignment, error) {
	q := r.db.WithContext(ctx).Where("task_id = ?", taskID)
	if len(userIDs) > 0 {
		q = q.Where("user_id IN ?", userIDs)
	}
	var rows []TaskAssignment
	err := q.Order("id").Find(&rows).Error
	return rows, err
}

func (r *repository) CreateAssignments(ctx context.Context, rows []TaskAssignment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) SetAssignmentsState(ctx context.Context, taskID int, userIDs []int, state, actor string) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&TaskAssignment{}).
		Where("task_id = ? AND user_id IN ?", taskID, userIDs).
		Updates(stateChange(state, actor)).Error
}

func (r *repository) FindTags(ctx context.Context, ids []int) ([]Tag, error) {
	var tags []Tag
	err := r.db.WithContext(ctx).
		Scopes(entity.Active("")).
		Where("tag_id IN ?", ids).
		Find(&tags).Error
	return tags, err
}

func (r *repository) FindTaskTags(ctx context.Context, taskIDs []int) ([]TagRow, error) {
	var rows []TagRow
	err := r.db.WithContext(ctx).
		Table("task_tags tt").
		Select("tt.task_id, t.tag_id, t.name, t.color").
		Joins("JOIN tags t ON t.tag_id = tt.tag_id").
		Where("tt.task_id IN ? AND tt.state = ? AND t.state = ?", taskIDs, entity.StateActive, entity.StateActive).
		Order("t.name").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindTagLinks(ctx context.Context, taskID int, tagIDs []int) ([]TaskTag, error) {
	var rows []TaskTag
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND tag_id IN ?", taskID, tagIDs).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateTagLinks(ctx context.Context, rows []TaskTag) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) SetTagLinksState(ctx context.Context, taskID int, tagIDs []int, state, actor string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&TaskTag{}).
		Where("task_id = ? AND tag_id IN ?", taskID, tagIDs).
		Updates(stateChange(state, actor)).Error
}

func (r *repository) CreateTag(ctx context.Context, tag *Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *repository) UpdateTag(ctx context.Context, id int, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&Tag{}).
		Where("tag_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindTagByID(ctx context.Context, id int) (*Tag, error) {
	var tag Tag
	if err := r.db.WithContext(ctx).Where("tag_id = ?", id).Take(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *repository) FindTagPage(ctx context.Context, res filter.Result, page response.Page) ([]Tag, int64, error) {
	q, err := filter.Apply(r.db.WithContext(ctx).Model(&Tag{}), res, tagColumns)
	if err != nil {
		return nil, 0, err
	}

	var tags []Tag
	total, err := filter.FindPage(q, page, "tags.name ASC", &tags)
	return tags, total, err
}

func stateChange(state, actor string) map[string]any {
	return map[string]any{
		"state":      state,
		"updated_at": time.Now(),
		"updated_by": actor,
	}
}
