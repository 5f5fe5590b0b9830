package helper

import (
	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/shopspring/decimal"
)

// DeriveBillStatus derives a bill status from its total and the full
// current payments sum. Amounts are compared at cent precision; a sum
// equal to the total is PAID, never PARTIALLY_PAID.
func DeriveBillStatus(total, paymentsSum float64) string {
	t := decimal.NewFromFloat(total).Round(2)
	s := decimal.NewFromFloat(paymentsSum).Round(2)

	switch {
	case s.LessThanOrEqual(decimal.Zero):
		return constants.BillPending
	case s.GreaterThanOrEqual(t):
		return constants.BillPaid
	default:
		return constants.BillPartiallyPaid
	}
}

// SumPayments totals a payment ledger at cent precision.
func SumPayments(payments []model.Payment) float64 {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(decimal.NewFromFloat(p.Amount).Round(2))
	}
	f, _ := sum.Float64()
	return f
}

// SumSplits totals the seat shares allocated on a bill.
func SumSplits(splits []model.SplitInput) float64 {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(decimal.NewFromFloat(s.Amount).Round(2))
	}
	f, _ := sum.Float64()
	return f
}
