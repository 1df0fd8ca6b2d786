package activitylog_test

import (
	"context"
	"testing"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepository_FindPageRejectsUnknownField(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := activitylog.NewRepository(gdb)
	res := filter.Result{Predicate: filter.And{filter.Compare{Field: "password", Op: filter.OpEq, Value: "x"}}}

	_, _, err = repo.FindPage(context.Background(), res, response.Page{Page: 1, PageSize: 10})
	assert.Error(t, err)
}

func TestRepository_FindPageCountsFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "activity_logs" WHERE .*content_type = \$1`).
		WithArgs("task").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := activitylog.NewRepository(gdb)
	res := filter.Result{Predicate: filter.And{filter.Compare{Field: "content_type", Op: filter.OpEq, Value: "task"}}}

	logs, total, err := repo.FindPage(context.Background(), res, response.Page{Page: 1, PageSize: 10})
	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, logs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
