package payroll

import (
	"context"
	"fmt"
	"strings"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/entity"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/shopspring/decimal"
)

// CreateAdjustment books a bonus or discount on an employee's entry. The
// concept defaults to BONO or DESCUENTO by type.
func (s *service) CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest, actor string) (AdjustmentResponse, error) {
	kind := strings.ToUpper(strings.TrimSpace(req.Type))
	conceptName, ok := adjustmentConcept[kind]
	if !ok {
		return AdjustmentResponse{}, payrollerrors.ErrInvalidAdjustmentType
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return AdjustmentResponse{}, payrollerrors.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Processing holds the same row lock, so the entry cannot be paid
	// between the check below and the insert.
	if _, err := qtx.LockPayroll(ctx, req.PayrollID); err != nil {
		return AdjustmentResponse{}, mapRepositoryError(err, payrollerrors.ErrPayrollNotFound)
	}

	entries, err := qtx.FindEntries(ctx, req.PayrollID, []string{strings.TrimSpace(req.Username)}, false)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	if len(entries) == 0 {
		return AdjustmentResponse{}, payrollerrors.ErrEntryNotFound
	}
	entry := entries[0]
	if entry.Processed {
		return AdjustmentResponse{}, payrollerrors.ErrEntryAlreadyProcessed
	}

	var conceptID int
	if req.ConceptID != nil {
		c, err := qtx.FindConcept(ctx, *req.ConceptID)
		if err != nil {
			return AdjustmentResponse{}, mapRepositoryError(err, payrollerrors.ErrConceptNotFound)
		}
		conceptID = c.ConceptID
	} else {
		ids, err := qtx.ConceptIDs(ctx)
		if err != nil {
			return AdjustmentResponse{}, err
		}
		if conceptID, ok = ids[conceptName]; !ok {
			return AdjustmentResponse{}, payrollerrors.ErrConceptNotFound
		}
	}

	a := &Adjustment{
		Type:           kind,
		Description:    strings.TrimSpace(req.Description),
		Amount:         req.Amount.Round(2),
		PayrollEntryID: entry.PayrollEntryID,
		ConceptID:      conceptID,
	}
	if err := entity.PrepareCreate(&a.Base, actor, AdjustmentStates...); err != nil {
		return AdjustmentResponse{}, err
	}
	if err := qtx.CreateAdjustment(ctx, a); err != nil {
		return AdjustmentResponse{}, mapRepositoryError(err, payrollerrors.ErrEntryNotFound)
	}
	if err := tx.Commit(); err != nil {
		return AdjustmentResponse{}, err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(adjustmentKind, a.AdjustmentID), actor, activitylog.ActionCreate,
		fmt.Sprintf("%s of %s booked for @%s", strings.ToLower(conceptName), a.Amount.StringFixed(2), entry.Username))

	return mapAdjustment(*a), nil
}

// UpdateAdjustment edits an adjustment until a payment consumes it.
func (s *service) UpdateAdjustment(ctx context.Context, id int, req UpdateAdjustmentRequest, actor string) (AdjustmentResponse, error) {
	raw := req.fields()
	if len(raw) == 0 {
		return AdjustmentResponse{}, payrollerrors.ErrEmptyUpdate
	}
	if req.Amount != nil {
		if !req.Amount.GreaterThan(decimal.Zero) {
			return AdjustmentResponse{}, payrollerrors.ErrInvalidAmount
		}
		raw["amount"] = req.Amount.Round(2)
	}
	if req.State != nil && *req.State == StateCompleted {
		return AdjustmentResponse{}, payrollerrors.ErrAdjustmentCompleted
	}

	current, err := s.repo.FindAdjustment(ctx, id)
	if err != nil {
		return AdjustmentResponse{}, mapRepositoryError(err, payrollerrors.ErrAdjustmentNotFound)
	}
	owner, err := s.repo.FindEntry(ctx, current.PayrollEntryID)
	if err != nil {
		return AdjustmentResponse{}, mapRepositoryError(err, payrollerrors.ErrEntryNotFound)
	}

	fields, err := entity.PrepareUpdate(raw, actor)
	if err != nil {
		return AdjustmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.LockPayroll(ctx, owner.PayrollID); err != nil {
		return AdjustmentResponse{}, mapRepositoryError(err, payrollerrors.ErrPayrollNotFound)
	}

	// Re-read under the lock; a payment may have consumed it meanwhile.
	current, err = qtx.FindAdjustment(ctx, id)
	if err != nil {
		return AdjustmentResponse{}, mapRepositoryError(err, payrollerrors.ErrAdjustmentNotFound)
	}
	if current.State == StateCompleted {
		return AdjustmentResponse{}, payrollerrors.ErrAdjustmentCompleted
	}
	owner, err = qtx.FindEntry(ctx, current.PayrollEntryID)
	if err != nil {
		return AdjustmentResponse{}, mapRepositoryError(err, payrollerrors.ErrEntryNotFound)
	}
	if owner.Processed {
		return AdjustmentResponse{}, payrollerrors.ErrEntryAlreadyProcessed
	}

	if err := qtx.UpdateAdjustment(ctx, id, fields); err != nil {
		return AdjustmentResponse{}, mapRepositoryError(err, payrollerrors.ErrAdjustmentNotFound)
	}
	updated, err := qtx.FindAdjustment(ctx, id)
	if err != nil {
		return AdjustmentResponse{}, mapRepositoryError(err, payrollerrors.ErrAdjustmentNotFound)
	}
	if err := tx.Commit(); err != nil {
		return AdjustmentResponse{}, err
	}

	activitylog.Record(ctx, s.activity, s.logger,
		activitylog.Ref(adjustmentKind, id), actor, activitylog.ActionUpdate,
		fmt.Sprintf("adjustment %d updated", id))

	return mapAdjustment(*updated), nil
}

func (s *service) ListAdjustments(ctx context.Context, res filter.Result, page response.Page) ([]AdjustmentResponse, int64, error) {
	rows, total, err := s.repo.FindAdjustmentPage(ctx, res, page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]AdjustmentResponse, len(rows))
	for i, a := range rows {
		out[i] = mapAdjustment(a)
	}
	return out, total, nil
}
