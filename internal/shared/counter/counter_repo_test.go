package counter_test

import (
	"context"
	"testing"

	"github.com/fenixfl1/CompuPay/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)
	return db, mock
}

func TestRepository_NextValue(t *testing.T) {
	db, mock := newGormMock(t)
	repo := counter.NewRepository(db)

	mock.ExpectQuery(`INSERT INTO sequence_counters`).
		WithArgs("menu_options", "root", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(4))

	next, err := repo.NextValue(context.Background(), "menu_options", "root", 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), next)
	assert.NoError(t, mock.ExpectationsWereMet())
}
