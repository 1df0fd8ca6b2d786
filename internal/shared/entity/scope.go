package entity

import "gorm.io/gorm"

// Active restricts a query to rows in the Active state. table qualifies the
// column when the query joins other soft tables; pass "" otherwise.
func Active(table string) func(db *gorm.DB) *gorm.DB {
	return InState(table, StateActive)
}

func InState(table string, states ...string) func(db *gorm.DB) *gorm.DB {
	col := "state"
	if table != "" {
		col = table + ".state"
	}
	return func(db *gorm.DB) *gorm.DB {
		if len(states) == 1 {
			return db.Where(col+" = ?", states[0])
		}
		return db.Where(col+" IN ?", states)
	}
}
