package payrollerrors

import (
	"net/http"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll entry not found",
		http.StatusNotFound,
	)
	ErrSettingsNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll settings are not configured",
		http.StatusNotFound,
	)
	ErrConceptNotFound = apperror.New(
		apperror.CodeNotFound,
		"concept not found",
		http.StatusNotFound,
	)
	ErrDeductionNotFound = apperror.New(
		apperror.CodeNotFound,
		"one or more deductions were not found",
		http.StatusNotFound,
	)
	ErrAdjustmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"adjustment not found",
		http.StatusNotFound,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)

	ErrInvalidPayrollID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll id",
		http.StatusBadRequest,
	)
	ErrInvalidEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll entry id",
		http.StatusBadRequest,
	)
	ErrInvalidAdjustmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid adjustment id",
		http.StatusBadRequest,
	)
	ErrInvalidDeductionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid deduction id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriods = apperror.New(
		apperror.CodeInvalidInput,
		"periods must be one of 1, 2, 4",
		http.StatusBadRequest,
	)
	ErrInvalidDuration = apperror.New(
		apperror.CodeInvalidInput,
		"duration_days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidDeductionName = apperror.New(
		apperror.CodeInvalidInput,
		"deduction name must be one of AFP, SFS, ISR",
		http.StatusBadRequest,
	)
	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"percentage must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrInvalidAdjustmentType = apperror.New(
		apperror.CodeInvalidInput,
		"adjustment type must be B or D",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidEmployees = apperror.New(
		apperror.CodePayloadValidation,
		"employees must be \"__all__\" or a list of usernames",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodePayloadValidation,
		"period_end can not be before period_start",
		http.StatusBadRequest,
	)
	ErrDuplicateDeductionName = apperror.New(
		apperror.CodePayloadValidation,
		"a user can hold only one deduction per name",
		http.StatusBadRequest,
	)
	ErrEmptyUpdate = apperror.New(
		apperror.CodePayloadValidation,
		"at least one field is required",
		http.StatusBadRequest,
	)

	ErrPendingPayrollExists = apperror.New(
		apperror.CodeConflict,
		"there is already a pending payroll, process it before starting a new one",
		http.StatusConflict,
	)
	ErrPeriodLimitReached = apperror.New(
		apperror.CodeConflict,
		"every period of this month already has a payroll",
		http.StatusConflict,
	)
	ErrEmployeeAlreadyInPayroll = apperror.New(
		apperror.CodeConflict,
		"employee already in this payroll",
		http.StatusConflict,
	)
	ErrConceptExists = apperror.New(
		apperror.CodeConflict,
		"concept already exists",
		http.StatusConflict,
	)
	ErrDeductionExists = apperror.New(
		apperror.CodeConflict,
		"a deduction with this name and percentage already exists",
		http.StatusConflict,
	)
	ErrPayrollBusy = apperror.New(
		apperror.CodeConflict,
		"payroll is being processed",
		http.StatusConflict,
	)

	ErrPayrollNotPending = apperror.New(
		apperror.CodeInvalidState,
		"payroll is not pending",
		http.StatusBadRequest,
	)
	ErrEntryAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"payroll entry is already processed",
		http.StatusBadRequest,
	)
	ErrEntryNotProcessed = apperror.New(
		apperror.CodeInvalidState,
		"payroll entry has not been processed yet",
		http.StatusBadRequest,
	)
	ErrAdjustmentCompleted = apperror.New(
		apperror.CodeInvalidState,
		"adjustment was already applied to a payment",
		http.StatusBadRequest,
	)
	ErrNoEligibleEmployees = apperror.New(
		apperror.CodeInvalidState,
		"no eligible employees for this payroll",
		http.StatusBadRequest,
	)
	ErrAutopayDisabled = apperror.New(
		apperror.CodeInvalidState,
		"autopay is disabled",
		http.StatusBadRequest,
	)
)
