package task

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates driver errors into feature errors. notFound
// is returned for missing rows and broken foreign keys.
func mapRepositoryError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return notFound
	}

	if strings.Contains(strings.ToLower(err.Error()), "violates foreign key constraint") {
		return notFound
	}

	return err
}
