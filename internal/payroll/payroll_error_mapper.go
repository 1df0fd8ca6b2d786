package payroll

import (
	"errors"
	"strings"

	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var uniqueViolations = map[string]error{
	"uq_payroll_entry_user":        payrollerrors.ErrEmployeeAlreadyInPayroll,
	"uq_payroll_single_pending":    payrollerrors.ErrPendingPayrollExists,
	"uq_payroll_month_period":      payrollerrors.ErrPeriodLimitReached,
	"uq_concept_name":              payrollerrors.ErrConceptExists,
	"uq_deduction_name_percentage": payrollerrors.ErrDeductionExists,
}

// mapRepositoryError translates driver errors into feature errors. notFound
// is returned for missing rows and broken foreign keys; unique violations
// map through their constraint name.
func mapRepositoryError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return notFound
		case "23505":
			if mapped, ok := uniqueViolations[pgErr.ConstraintName]; ok {
				return mapped
			}
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "violates foreign key constraint") {
		return notFound
	}
	for name, mapped := range uniqueViolations {
		if strings.Contains(msg, name) {
			return mapped
		}
	}

	return err
}
