package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// CalcInput is everything needed to pay one entry for one period.
type CalcInput struct {
	Salary     decimal.Decimal
	Periods    int
	LastPeriod bool
	Rules      []RuleRow
	// Adjustments must be the entry's pending adjustments only.
	Adjustments []Adjustment
	Concepts    map[string]int
}

// Line is a ledger line before it is bound to a payroll.
type Line struct {
	ConceptID    int
	Amount       decimal.Decimal
	Operator     string
	Comment      string
	AdjustmentID int
}

type Calculation struct {
	Base     decimal.Decimal
	Bonus    decimal.Decimal
	Discount decimal.Decimal
	AFP      decimal.Decimal
	SFS      decimal.Decimal
	ISR      decimal.Decimal
	Net      decimal.Decimal
	Lines    []Line
}

// Applied returns the ids of the adjustments the calculation consumed.
func (c Calculation) Applied() []int {
	var ids []int
	for _, l := range c.Lines {
		if l.AdjustmentID != 0 {
			ids = append(ids, l.AdjustmentID)
		}
	}
	return ids
}

// Calculate computes an entry's net pay and the ledger lines backing it.
// Statutory withholdings are only charged in the last period of the month;
// ISR is computed on the annualized salary net of AFP and SFS.
func Calculate(in CalcInput) (Calculation, error) {
	periods := in.Periods
	if periods <= 0 {
		periods = 1
	}

	var c Calculation
	if in.LastPeriod {
		rates := map[string]RuleRow{}
		for _, r := range in.Rules {
			rates[r.Name] = r
		}
		if r, ok := rates[ConceptAFP]; ok {
			c.AFP = percentOf(in.Salary, r.Percentage)
		}
		if r, ok := rates[ConceptSFS]; ok {
			c.SFS = percentOf(in.Salary, r.Percentage)
		}
		if r, ok := rates[ConceptISR]; ok {
			taxable := in.Salary.Sub(c.AFP).Sub(c.SFS)
			c.ISR = taxable.Mul(twelve).Mul(r.Percentage).Div(hundred).Div(twelve).Round(2)
		}

		for _, name := range DeductionNames {
			r, ok := rates[name]
			if !ok {
				continue
			}
			conceptID, err := ruleConcept(r, in.Concepts)
			if err != nil {
				return Calculation{}, err
			}
			c.Lines = append(c.Lines, Line{
				ConceptID: conceptID,
				Amount:    c.statutory(name),
				Operator:  OperatorSubtract,
				Comment:   fmt.Sprintf("Descuento mensual por concepto de %s", name),
			})
		}
	}

	for _, a := range in.Adjustments {
		op := OperatorAdd
		switch a.Type {
		case AdjustmentBonus:
			c.Bonus = c.Bonus.Add(a.Amount)
		case AdjustmentDiscount:
			c.Discount = c.Discount.Add(a.Amount)
			op = OperatorSubtract
		default:
			return Calculation{}, fmt.Errorf("adjustment %d has unknown type %q", a.AdjustmentID, a.Type)
		}
		c.Lines = append(c.Lines, Line{
			ConceptID:    a.ConceptID,
			Amount:       a.Amount.Round(2),
			Operator:     op,
			Comment:      a.Description,
			AdjustmentID: a.AdjustmentID,
		})
	}

	salaryConcept, ok := in.Concepts[ConceptSalary]
	if !ok {
		return Calculation{}, fmt.Errorf("concept %s is not configured", ConceptSalary)
	}

	c.Base = in.Salary.Div(decimal.NewFromInt(int64(periods))).Round(2)
	c.Net = c.Base.Add(c.Bonus).Sub(c.Discount).Sub(c.AFP).Sub(c.SFS).Sub(c.ISR).Round(2)
	c.Lines = append(c.Lines, Line{
		ConceptID: salaryConcept,
		Amount:    c.Net,
		Operator:  OperatorAdd,
		Comment:   "Salario neto del periodo",
	})
	return c, nil
}

func (c Calculation) statutory(name string) decimal.Decimal {
	switch name {
	case ConceptAFP:
		return c.AFP
	case ConceptSFS:
		return c.SFS
	}
	return c.ISR
}

func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred).Round(2)
}

func ruleConcept(r RuleRow, concepts map[string]int) (int, error) {
	if r.ConceptID != nil {
		return *r.ConceptID, nil
	}
	id, ok := concepts[r.Name]
	if !ok {
		return 0, fmt.Errorf("concept %s is not configured", r.Name)
	}
	return id, nil
}
