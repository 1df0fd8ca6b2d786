package payroll_test

import (
	"testing"

	"github.com/fenixfl1/CompuPay/internal/payroll"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConcepts = map[string]int{
	"SALARIO":   1,
	"AFP":       2,
	"SFS":       3,
	"ISR":       4,
	"BONO":      5,
	"DESCUENTO": 6,
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func statutoryRules() []payroll.RuleRow {
	return []payroll.RuleRow{
		{Name: "AFP", Percentage: dec("2.87")},
		{Name: "SFS", Percentage: dec("3.04")},
		{Name: "ISR", Percentage: dec("15")},
	}
}

func TestCalculate_LastPeriodWithStatutoryDeductions(t *testing.T) {
	calc, err := payroll.Calculate(payroll.CalcInput{
		Salary:     dec("30000"),
		Periods:    1,
		LastPeriod: true,
		Rules:      statutoryRules(),
		Adjustments: []payroll.Adjustment{
			{AdjustmentID: 9, Type: payroll.AdjustmentBonus, Amount: dec("1000"), ConceptID: 5, Description: "bono"},
		},
		Concepts: testConcepts,
	})
	require.NoError(t, err)

	assert.Equal(t, "861.00", calc.AFP.StringFixed(2))
	assert.Equal(t, "912.00", calc.SFS.StringFixed(2))
	assert.Equal(t, "4234.05", calc.ISR.StringFixed(2))
	assert.Equal(t, "1000.00", calc.Bonus.StringFixed(2))
	assert.Equal(t, "24992.95", calc.Net.StringFixed(2))

	require.Len(t, calc.Lines, 5)
	afp := calc.Lines[0]
	assert.Equal(t, 2, afp.ConceptID)
	assert.True(t, afp.Amount.Equal(dec("861")))
	assert.Equal(t, "-", afp.Operator)
	assert.Equal(t, "Descuento mensual por concepto de AFP", afp.Comment)
	assert.Equal(t, 3, calc.Lines[1].ConceptID)
	assert.Equal(t, 4, calc.Lines[2].ConceptID)
	assert.Equal(t, "+", calc.Lines[3].Operator)
	assert.Equal(t, 9, calc.Lines[3].AdjustmentID)

	last := calc.Lines[4]
	assert.Equal(t, 1, last.ConceptID)
	assert.Equal(t, "+", last.Operator)
	assert.True(t, last.Amount.Equal(dec("24992.95")))

	assert.Equal(t, []int{9}, calc.Applied())
}

func TestCalculate_EarlierPeriodSkipsDeductions(t *testing.T) {
	calc, err := payroll.Calculate(payroll.CalcInput{
		Salary:     dec("30000"),
		Periods:    2,
		LastPeriod: false,
		Rules:      statutoryRules(),
		Adjustments: []payroll.Adjustment{
			{AdjustmentID: 3, Type: payroll.AdjustmentDiscount, Amount: dec("250.50"), ConceptID: 6},
		},
		Concepts: testConcepts,
	})
	require.NoError(t, err)

	assert.True(t, calc.AFP.IsZero())
	assert.True(t, calc.SFS.IsZero())
	assert.True(t, calc.ISR.IsZero())
	assert.Equal(t, "15000.00", calc.Base.StringFixed(2))
	assert.Equal(t, "14749.50", calc.Net.StringFixed(2))

	require.Len(t, calc.Lines, 2)
	assert.Equal(t, "-", calc.Lines[0].Operator)
	assert.Equal(t, 1, calc.Lines[1].ConceptID)
}

func TestCalculate_ISRWithoutOtherRules(t *testing.T) {
	calc, err := payroll.Calculate(payroll.CalcInput{
		Salary:     dec("50000"),
		Periods:    1,
		LastPeriod: true,
		Rules:      []payroll.RuleRow{{Name: "ISR", Percentage: dec("10")}},
		Concepts:   testConcepts,
	})
	require.NoError(t, err)

	assert.Equal(t, "5000.00", calc.ISR.StringFixed(2))
	assert.Equal(t, "45000.00", calc.Net.StringFixed(2))
	assert.Len(t, calc.Lines, 2)
}

func TestCalculate_RuleConceptOverride(t *testing.T) {
	custom := 42
	calc, err := payroll.Calculate(payroll.CalcInput{
		Salary:     dec("10000"),
		Periods:    1,
		LastPeriod: true,
		Rules:      []payroll.RuleRow{{Name: "AFP", Percentage: dec("2.87"), ConceptID: &custom}},
		Concepts:   testConcepts,
	})
	require.NoError(t, err)

	assert.Equal(t, 42, calc.Lines[0].ConceptID)
	assert.Equal(t, "287.00", calc.Lines[0].Amount.StringFixed(2))
}

func TestCalculate_Errors(t *testing.T) {
	t.Run("missing salary concept", func(t *testing.T) {
		_, err := payroll.Calculate(payroll.CalcInput{
			Salary:   dec("1000"),
			Periods:  1,
			Concepts: map[string]int{"AFP": 2},
		})
		assert.Error(t, err)
	})

	t.Run("unknown adjustment type", func(t *testing.T) {
		_, err := payroll.Calculate(payroll.CalcInput{
			Salary:      dec("1000"),
			Periods:     1,
			Adjustments: []payroll.Adjustment{{AdjustmentID: 1, Type: "X", Amount: dec("5")}},
			Concepts:    testConcepts,
		})
		assert.Error(t, err)
	})
}
