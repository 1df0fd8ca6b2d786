package activitylog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/shared/contextutil"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRepository struct {
	created  []*activitylog.ActivityLog
	createFn func(ctx context.Context, entry *activitylog.ActivityLog) error
	pageFn   func(ctx context.Context, res filter.Result, page response.Page) ([]activitylog.ActivityLog, int64, error)
}

func (f *fakeRepository) Create(ctx context.Context, entry *activitylog.ActivityLog) error {
	if f.createFn != nil {
		return f.createFn(ctx, entry)
	}
	f.created = append(f.created, entry)
	return nil
}

func (f *fakeRepository) FindPage(ctx context.Context, res filter.Result, page response.Page) ([]activitylog.ActivityLog, int64, error) {
	return f.pageFn(ctx, res, page)
}

func TestService_Register(t *testing.T) {
	registry := activitylog.NewRegistry()
	registry.Register("user", activitylog.DescriberFunc(func(ctx context.Context, id string) (string, error) {
		return "jdoe", nil
	}))

	t.Run("resolves repr through registry", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := activitylog.NewService(repo, registry, zap.NewNop())
		ctx := contextutil.WithRequestID(context.Background(), "rid-9")

		err := svc.Register(ctx, activitylog.Ref("user", 12), "admin", activitylog.ActionCreate, "created user jdoe")

		assert.NoError(t, err)
		assert.Len(t, repo.created, 1)
		row := repo.created[0]
		assert.Equal(t, "user", row.ContentType)
		assert.Equal(t, "12", row.ObjectID)
		assert.Equal(t, "jdoe", row.ObjectRepr)
		assert.Equal(t, "admin", *row.Username)
		assert.Equal(t, activitylog.ActionCreate, row.ActionFlag)
		assert.Equal(t, "rid-9", row.Metadata["request_id"])
	})

	t.Run("unknown kind falls back", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := activitylog.NewService(repo, registry, zap.NewNop())

		err := svc.Register(context.Background(), activitylog.Ref("payroll", 3), "", activitylog.ActionUpdate, "processed")

		assert.NoError(t, err)
		assert.Equal(t, "payroll #3", repo.created[0].ObjectRepr)
		assert.Nil(t, repo.created[0].Username)
	})

	t.Run("malformed ref", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := activitylog.NewService(repo, registry, zap.NewNop())

		err := svc.Register(context.Background(), activitylog.EntityRef{Kind: "user"}, "admin", activitylog.ActionCreate, "")

		assert.ErrorIs(t, err, activitylog.ErrMalformedRef)
		assert.Empty(t, repo.created)
	})

	t.Run("invalid action", func(t *testing.T) {
		svc := activitylog.NewService(&fakeRepository{}, registry, zap.NewNop())
		err := svc.Register(context.Background(), activitylog.Ref("user", 1), "admin", activitylog.Action(9), "")
		assert.Error(t, err)
	})
}

func TestRecord_SwallowsErrors(t *testing.T) {
	repo := &fakeRepository{createFn: func(ctx context.Context, entry *activitylog.ActivityLog) error {
		return errors.New("insert failed")
	}}
	svc := activitylog.NewService(repo, nil, zap.NewNop())

	assert.NotPanics(t, func() {
		activitylog.Record(context.Background(), svc, zap.NewNop(), activitylog.Ref("task", 1), "admin", activitylog.ActionCreate, "x")
		activitylog.Record(context.Background(), nil, zap.NewNop(), activitylog.Ref("task", 1), "admin", activitylog.ActionCreate, "x")
	})
}

func TestService_Recent(t *testing.T) {
	actor := "admin"
	repo := &fakeRepository{pageFn: func(ctx context.Context, res filter.Result, page response.Page) ([]activitylog.ActivityLog, int64, error) {
		assert.Equal(t, 2, page.Page)
		return []activitylog.ActivityLog{
			{ID: 5, Username: &actor, ContentType: "task", ObjectID: "1", ActionFlag: activitylog.ActionDelete},
		}, 11, nil
	}}
	svc := activitylog.NewService(repo, nil, zap.NewNop())

	items, total, err := svc.Recent(context.Background(), filter.Result{}, response.Page{Page: 2, PageSize: 10})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), total)
	assert.Equal(t, "delete", items[0].Action)
	assert.Equal(t, "admin", items[0].Username)
}
