package database_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fenixfl1/CompuPay/internal/database"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestBindTx_RunsStatementsOnTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE payrolls SET status`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	res := database.BindTx(gdb, tx).Exec("UPDATE payrolls SET status = ? WHERE payroll_id = ?", "F", 1)
	assert.NoError(t, res.Error)
	assert.Equal(t, int64(1), res.RowsAffected)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBindTx_NilTxReturnsSameDB(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	assert.Same(t, gdb, database.BindTx(gdb, nil))
}
