package user

import (
	"errors"
	"strings"

	usererrors "github.com/fenixfl1/CompuPay/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var constraintErrors = map[string]error{
	"uq_users_username":          usererrors.ErrUsernameExists,
	"uq_users_email":             usererrors.ErrEmailExists,
	"uq_users_identity_document": usererrors.ErrIdentityDocumentExists,
	"users_department_id_fkey":   usererrors.ErrDepartmentNotFound,
	"users_supervisor_id_fkey":   usererrors.ErrSupervisorNotFound,
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23503") {
		if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") || strings.Contains(errMsg, "foreign key constraint") {
		for constraint, mapped := range constraintErrors {
			if strings.Contains(errMsg, constraint) {
				return mapped
			}
		}
	}

	return err
}
