package trade

import "github.com/shopspring/decimal"

// AmountScale is the number of decimal places quantities, rates, prices and
// amounts are stored with.
const AmountScale = 4

var (
	hundred = decimal.NewFromInt(100)
	// maxStoredValue bounds the integer part of a DECIMAL(18,4) column
	maxStoredValue = decimal.New(1, 18-AmountScale)
)

// LineAmounts holds the excl-tax, tax and incl-tax amounts of a line or an order
type LineAmounts struct {
	Excl decimal.Decimal
	Tax  decimal.Decimal
	Incl decimal.Decimal
}

// CalculateLineAmounts computes the amounts for a single line.
//
//	excl = quantity * unitPrice
//	tax  = excl * taxRate / 100
//	incl = excl + tax
//
// No rounding is applied and inputs are not validated.
func CalculateLineAmounts(quantity, unitPrice, taxRate decimal.Decimal) LineAmounts {
	excl := quantity.Mul(unitPrice)
	// Mul before Div keeps the result exact for any finite percentage
	tax := excl.Mul(taxRate).Div(hundred)
	return LineAmounts{
		Excl: excl,
		Tax:  tax,
		Incl: excl.Add(tax),
	}
}

// Rounded returns the amounts with Excl and Tax rounded half away from zero to
// AmountScale places and Incl recomputed as their sum.
func (a LineAmounts) Rounded() LineAmounts {
	excl := a.Excl.Round(AmountScale)
	tax := a.Tax.Round(AmountScale)
	return LineAmounts{
		Excl: excl,
		Tax:  tax,
		Incl: excl.Add(tax),
	}
}

// HasStorableScale reports whether d has no more than AmountScale decimal places
func HasStorableScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

func withinStoredRange(d decimal.Decimal) bool {
	return d.Abs().LessThan(maxStoredValue)
}

// SumAmounts returns the element-wise sum of the given amounts.
// An empty input yields zero totals.
func SumAmounts(lines ...LineAmounts) LineAmounts {
	total := LineAmounts{
		Excl: decimal.Zero,
		Tax:  decimal.Zero,
		Incl: decimal.Zero,
	}
	for _, l := range lines {
		total.Excl = total.Excl.Add(l.Excl)
		total.Tax = total.Tax.Add(l.Tax)
		total.Incl = total.Incl.Add(l.Incl)
	}
	return total
}
