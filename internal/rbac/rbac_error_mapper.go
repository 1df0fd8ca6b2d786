package rbac

import (
	"errors"
	"strings"

	rbacerrors "github.com/fenixfl1/CompuPay/internal/rbac/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var constraintErrors = map[string]error{
	"uq_role_name":                               rbacerrors.ErrRoleNameExists,
	"uq_parameter_name":                          rbacerrors.ErrParameterNameExists,
	"menu_options_pkey":                          rbacerrors.ErrMenuOptionExists,
	"uq_menu_option_sibling_order":               rbacerrors.ErrMenuOrderTaken,
	"menu_options_parent_id_fkey":                rbacerrors.ErrParentMenuOptionNotFound,
	"role_assignments_role_id_fkey":              rbacerrors.ErrRoleNotFound,
	"role_permissions_operation_id_fkey":         rbacerrors.ErrOperationNotFound,
	"menu_option_roles_role_id_fkey":             rbacerrors.ErrRoleNotFound,
	"menu_option_roles_menu_option_id_fkey":      rbacerrors.ErrMenuOptionNotFound,
	"menu_option_parameters_parameter_id_fkey":   rbacerrors.ErrParameterNotFound,
	"operation_menu_options_menu_option_id_fkey": rbacerrors.ErrMenuOptionNotFound,
}

// mapRepositoryError turns storage errors into rbac errors. notFound is
// returned for a missing row since several entities share this repository.
func mapRepositoryError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23503") {
		if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
	}

	errMsg := strings.ToLower(err.Error())
	for name, mapped := range constraintErrors {
		if strings.Contains(errMsg, name) {
			return mapped
		}
	}

	return err
}
