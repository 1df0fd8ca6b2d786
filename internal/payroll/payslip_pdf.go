package payroll

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	payrollerrors "github.com/fenixfl1/CompuPay/internal/payroll/errors"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.Spanish)

// Payslip renders the ledger of a processed entry as a one page PDF.
func (s *service) Payslip(ctx context.Context, entryID int) ([]byte, string, error) {
	entry, err := s.repo.FindEntry(ctx, entryID)
	if err != nil {
		return nil, "", mapRepositoryError(err, payrollerrors.ErrEntryNotFound)
	}
	if !entry.Processed {
		return nil, "", payrollerrors.ErrEntryNotProcessed
	}
	p, err := s.repo.FindPayroll(ctx, entry.PayrollID)
	if err != nil {
		return nil, "", mapRepositoryError(err, payrollerrors.ErrPayrollNotFound)
	}
	ledger, err := s.repo.FindLedger(ctx, []int{entry.PayrollID}, entryID)
	if err != nil {
		return nil, "", err
	}

	periods := 1
	if st, err := s.repo.ActiveSettings(ctx); err == nil {
		periods = st.Periods
	}

	lines := payslipLines(*entry, *p, periods, ledger)
	pdf, err := buildSimplePayslipPDF(lines)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("payslip-%d-%s.pdf", entryID, entry.Username), nil
}

func payslipLines(entry EntryRow, p Payroll, periods int, ledger []LedgerRow) []string {
	currency := entry.Currency
	lines := []string{
		"CompuPay - Comprobante de pago",
		"",
		fmt.Sprintf("Empleado: %s %s (@%s)", entry.Name, entry.LastName, entry.Username),
		fmt.Sprintf("%s: %s al %s", payrollLabel(p, periods), p.PeriodStart.Format(dateLayout), p.PeriodEnd.Format(dateLayout)),
		fmt.Sprintf("Salario bruto: %s", formatAmount(currency, entry.Salary)),
		"",
	}

	net := decimal.Zero
	for _, l := range ledger {
		if l.ConceptName == ConceptSalary {
			net = l.ConceptAmount
			continue
		}
		comment := ""
		if l.Comment != nil && *l.Comment != "" {
			comment = " - " + *l.Comment
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s%s", l.Operator, l.ConceptName, formatAmount(currency, l.ConceptAmount), comment))
	}

	lines = append(lines, "", fmt.Sprintf("Neto a pagar: %s", formatAmount(currency, net)))
	return lines
}

func formatAmount(currency string, v decimal.Decimal) string {
	return amountPrinter.Sprintf("%s %.2f", currency, v.InexactFloat64())
}

func buildSimplePayslipPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n16 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

// pdfEscape escapes the string delimiters and maps text to WinAnsi so
// accented names render with the standard Helvetica font.
func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	v = replacer.Replace(v)

	var b strings.Builder
	for _, r := range v {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		case r <= 0xFF:
			b.WriteString(fmt.Sprintf("\\%03o", r))
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
