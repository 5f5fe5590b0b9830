package helper

import (
	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func NewOrderCode() string {
	return "ORD-" + uuid.New().String()[:8]
}

func NewBillCode() string {
	return "BILL-" + uuid.New().String()[:8]
}

func NewPaymentCode() string {
	return "PAY-" + uuid.New().String()[:10]
}

// ComputeOrderTotal sums quantity times unit price over the order's
// non-cancelled items, at cent precision.
func ComputeOrderTotal(items []model.OrderItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		if item.Status == constants.ItemCancelled {
			continue
		}
		line := decimal.NewFromFloat(item.UnitPrice).Round(2).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	f, _ := total.Float64()
	return f
}
