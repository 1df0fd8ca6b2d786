package payroll

import (
	"context"
	"errors"
	"fmt"

	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	monthNames = [...]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	weekdayNames = [...]string{
		"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
	}
	periodOrdinals = map[int]string{
		1: "Primera",
		2: "Segunda",
		3: "Tercera",
		4: "Cuarta",
	}
)

// payrollLabel names a payroll the way payslips and the dashboard show it,
// e.g. "Nómina de marzo" or "Segunda nómina de marzo".
func payrollLabel(p Payroll, periods int) string {
	month := monthNames[p.PeriodStart.Month()-1]
	if periods <= 1 {
		return "Nómina de " + month
	}
	ord, ok := periodOrdinals[p.Period]
	if !ok {
		ord = fmt.Sprintf("%dª", p.Period)
	}
	return fmt.Sprintf("%s nómina de %s", ord, month)
}

func (s *service) PayrollInfo(ctx context.Context) (PayrollInfoResponse, error) {
	p, err := s.repo.FindPending(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p, err = s.repo.Latest(ctx)
	}
	if err != nil {
		return PayrollInfoResponse{}, mapRepositoryError(err, payrollerrors.ErrPayrollNotFound)
	}

	settings, err := s.repo.ActiveSettings(ctx)
	if err != nil {
		return PayrollInfoResponse{}, mapRepositoryError(err, payrollerrors.ErrSettingsNotFound)
	}

	entries, err := s.repo.FindEntries(ctx, p.PayrollID, nil, false)
	if err != nil {
		return PayrollInfoResponse{}, err
	}

	totals := PayrollTotals{
		Entries:  len(entries),
		Salaries: decimal.Zero,
		Bonus:    decimal.Zero,
		Discount: decimal.Zero,
	}
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.PayrollEntryID
		totals.Salaries = totals.Salaries.Add(e.Salary)
		if e.Processed {
			totals.Processed++
		}
	}
	sums, err := s.repo.AdjustmentTotals(ctx, ids)
	if err != nil {
		return PayrollInfoResponse{}, err
	}
	for _, t := range sums {
		if t.Type == AdjustmentBonus {
			totals.Bonus = totals.Bonus.Add(t.Total)
		} else {
			totals.Discount = totals.Discount.Add(t.Total)
		}
	}

	end := p.PeriodEnd
	return PayrollInfoResponse{
		PayrollID: p.PayrollID,
		Label:     payrollLabel(*p, settings.Periods),
		Status:    p.Status,
		NextPayment: fmt.Sprintf("%s %d de %s de %d",
			weekdayNames[end.Weekday()], end.Day(), monthNames[end.Month()-1], end.Year()),
		CurrentPeriod: p.Period,
		PeriodStart:   p.PeriodStart.Format(dateLayout),
		PeriodEnd:     end.Format(dateLayout),
		Settings:      mapSettings(*settings),
		Totals:        totals,
	}, nil
}

func (s *service) PayrollHistory(ctx context.Context, res filter.Result, page response.Page) ([]HistoryItem, int64, error) {
	rows, total, err := s.repo.FindPayrollPage(ctx, res, page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]HistoryItem, len(rows))
	if len(rows) == 0 {
		return out, total, nil
	}

	periods := 1
	if st, err := s.repo.ActiveSettings(ctx); err == nil {
		periods = st.Periods
	}

	ids := make([]int, len(rows))
	for i, p := range rows {
		ids[i] = p.PayrollID
	}
	counts, err := s.repo.CountEntries(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	ledger, err := s.repo.FindLedger(ctx, ids, 0)
	if err != nil {
		return nil, 0, err
	}
	lines := map[int][]LedgerLineResponse{}
	for _, l := range ledger {
		lines[l.PayrollID] = append(lines[l.PayrollID], mapLedger(l))
	}

	for i, p := range rows {
		item := HistoryItem{
			PayrollResponse: mapPayroll(p, periods, counts[p.PayrollID]),
			Lines:           lines[p.PayrollID],
		}
		if item.Lines == nil {
			item.Lines = []LedgerLineResponse{}
		}
		out[i] = item
	}
	return out, total, nil
}

func (s *service) PayrollEntries(ctx context.Context, res filter.Result, page response.Page) ([]EntryResponse, int64, error) {
	rows, total, err := s.repo.FindEntryPage(ctx, res, page)
	if err != nil {
		return nil, 0, err
	}
	out := make([]EntryResponse, len(rows))
	index := make(map[int]int, len(rows))
	ids := make([]int, len(rows))
	for i, r := range rows {
		out[i] = mapEntry(r)
		index[r.PayrollEntryID] = i
		ids[i] = r.PayrollEntryID
	}
	if len(ids) == 0 {
		return out, total, nil
	}

	sums, err := s.repo.AdjustmentTotals(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, t := range sums {
		i, ok := index[t.PayrollEntryID]
		if !ok {
			continue
		}
		if t.Type == AdjustmentBonus {
			out[i].Bonus = out[i].Bonus.Add(t.Total)
		} else {
			out[i].Discount = out[i].Discount.Add(t.Total)
		}
	}
	return out, total, nil
}

// Ledger returns the lines paid to one entry of a payroll.
func (s *service) Ledger(ctx context.Context, payrollID, entryID int) ([]LedgerLineResponse, error) {
	entry, err := s.repo.FindEntry(ctx, entryID)
	if err != nil {
		return nil, mapRepositoryError(err, payrollerrors.ErrEntryNotFound)
	}
	if entry.PayrollID != payrollID {
		return nil, payrollerrors.ErrEntryNotFound
	}

	rows, err := s.repo.FindLedger(ctx, []int{payrollID}, entryID)
	if err != nil {
		return nil, err
	}
	out := make([]LedgerLineResponse, len(rows))
	for i, r := range rows {
		out[i] = mapLedger(r)
	}
	return out, nil
}
