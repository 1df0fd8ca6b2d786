package database

import (
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a gorm session whose statements run on tx. Services own the
// transaction through database/sql; repositories keep building queries with
// gorm on top of it.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	session := db.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true})
	session.Statement.ConnPool = tx
	return session
}
