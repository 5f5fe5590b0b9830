package handler_test

import (
	"fmt"
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/model"
)

func TestAddPaymentRecomputesStatus(t *testing.T) {
	app, db := newTestApp(t)
	token := tokenFor(t, constants.RoleCashier)

	order := seedOpenOrder(t, db, nil)
	bill := seedBill(t, db, order.ID, 100.00)

	// 40 of 100 paid
	status, parsed := doJSON(t, app, "POST", "/api/v1/payment", token, map[string]any{
		"billId": bill.ID, "amount": 40.00, "method": "CASH",
	})
	if status != 201 {
		t.Fatalf("add payment: status %d, body %v", status, parsed)
	}
	if got := dataField(t, parsed)["billStatus"]; got != constants.BillPartiallyPaid {
		t.Errorf("after 40.00: bill status %v, want %s", got, constants.BillPartiallyPaid)
	}

	// 100 of 100 paid, boundary is PAID not PARTIALLY_PAID
	status, parsed = doJSON(t, app, "POST", "/api/v1/payment", token, map[string]any{
		"billId": bill.ID, "amount": 60.00, "method": "CARD",
	})
	if status != 201 {
		t.Fatalf("add payment: status %d, body %v", status, parsed)
	}
	if got := dataField(t, parsed)["billStatus"]; got != constants.BillPaid {
		t.Errorf("after 100.00: bill status %v, want %s", got, constants.BillPaid)
	}

	var persisted model.Bill
	if err := db.First(&persisted, bill.ID).Error; err != nil {
		t.Fatalf("reload bill: %v", err)
	}
	if persisted.Status != constants.BillPaid {
		t.Errorf("persisted status %s, want %s", persisted.Status, constants.BillPaid)
	}
}

func TestRemovePaymentRoundTripsStatus(t *testing.T) {
	app, db := newTestApp(t)
	token := tokenFor(t, constants.RoleCashier)

	order := seedOpenOrder(t, db, nil)
	bill := seedBill(t, db, order.ID, 100.00)

	doJSON(t, app, "POST", "/api/v1/payment", token, map[string]any{
		"billId": bill.ID, "amount": 40.00, "method": "CASH",
	})
	status, parsed := doJSON(t, app, "POST", "/api/v1/payment", token, map[string]any{
		"billId": bill.ID, "amount": 60.00, "method": "CASH",
	})
	if status != 201 {
		t.Fatalf("add payment: status %d", status)
	}
	payment := dataField(t, parsed)["payment"].(map[string]any)
	paymentId := uint(payment["id"].(float64))

	// removing the 60.00 payment drops the bill back to PARTIALLY_PAID
	status, parsed = doJSON(t, app, "DELETE", fmt.Sprintf("/api/v1/payment/%d", paymentId), token, nil)
	if status != 200 {
		t.Fatalf("remove payment: status %d, body %v", status, parsed)
	}
	data := dataField(t, parsed)
	if got := data["billStatus"]; got != constants.BillPartiallyPaid {
		t.Errorf("after removal: bill status %v, want %s", got, constants.BillPartiallyPaid)
	}
	removed := data["payment"].(map[string]any)
	if removed["amount"].(float64) != 60.00 {
		t.Errorf("removed snapshot amount %v, want 60", removed["amount"])
	}

	var count int64
	db.Model(&model.Payment{}).Where("bill_id = ?", bill.ID).Count(&count)
	if count != 1 {
		t.Errorf("payments remaining %d, want 1", count)
	}

	var persisted model.Bill
	db.First(&persisted, bill.ID)
	if persisted.Status != constants.BillPartiallyPaid {
		t.Errorf("persisted status %s, want %s", persisted.Status, constants.BillPartiallyPaid)
	}
}

func TestRemoveAllPaymentsBackToPending(t *testing.T) {
	app, db := newTestApp(t)
	token := tokenFor(t, constants.RoleCashier)

	order := seedOpenOrder(t, db, nil)
	bill := seedBill(t, db, order.ID, 50.00)

	_, parsed := doJSON(t, app, "POST", "/api/v1/payment", token, map[string]any{
		"billId": bill.ID, "amount": 50.00, "method": "QR",
	})
	payment := dataField(t, parsed)["payment"].(map[string]any)
	paymentId := uint(payment["id"].(float64))

	status, parsed := doJSON(t, app, "DELETE", fmt.Sprintf("/api/v1/payment/%d", paymentId), token, nil)
	if status != 200 {
		t.Fatalf("remove payment: status %d", status)
	}
	if got := dataField(t, parsed)["billStatus"]; got != constants.BillPending {
		t.Errorf("empty ledger: bill status %v, want %s", got, constants.BillPending)
	}
}

func TestAddPaymentRejectsNonPositiveAmount(t *testing.T) {
	app, db := newTestApp(t)
	token := tokenFor(t, constants.RoleCashier)

	order := seedOpenOrder(t, db, nil)
	bill := seedBill(t, db, order.ID, 100.00)

	for _, amount := range []float64{0, -5} {
		status, _ := doJSON(t, app, "POST", "/api/v1/payment", token, map[string]any{
			"billId": bill.ID, "amount": amount, "method": "CASH",
		})
		if status != 400 {
			t.Errorf("amount %.2f: status %d, want 400", amount, status)
		}
	}

	var count int64
	db.Model(&model.Payment{}).Count(&count)
	if count != 0 {
		t.Errorf("payment rows created %d, want 0", count)
	}
}

func TestAddPaymentRejectsUnknownMethod(t *testing.T) {
	app, db := newTestApp(t)
	token := tokenFor(t, constants.RoleCashier)

	order := seedOpenOrder(t, db, nil)
	bill := seedBill(t, db, order.ID, 100.00)

	status, _ := doJSON(t, app, "POST", "/api/v1/payment", token, map[string]any{
		"billId": bill.ID, "amount": 10.00, "method": "BARTER",
	})
	if status != 400 {
		t.Errorf("unknown method: status %d, want 400", status)
	}
}

func TestAddPaymentMissingBill(t *testing.T) {
	app, _ := newTestApp(t)
	token := tokenFor(t, constants.RoleCashier)

	status, _ := doJSON(t, app, "POST", "/api/v1/payment", token, map[string]any{
		"billId": 9999, "amount": 10.00, "method": "CASH",
	})
	if status != 404 {
		t.Errorf("missing bill: status %d, want 404", status)
	}
}

func TestRemovePaymentMissing(t *testing.T) {
	app, _ := newTestApp(t)
	token := tokenFor(t, constants.RoleCashier)

	status, _ := doJSON(t, app, "DELETE", "/api/v1/payment/9999", token, nil)
	if status != 404 {
		t.Errorf("missing payment: status %d, want 404", status)
	}
}

func TestPaymentRequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/api/v1/payment", "", map[string]any{
		"billId": 1, "amount": 10.00, "method": "CASH",
	})
	if status != 401 {
		t.Errorf("no token: status %d, want 401", status)
	}
}

func TestPaymentRequiresCashierRole(t *testing.T) {
	app, db := newTestApp(t)
	cook := tokenFor(t, constants.RoleCook)

	order := seedOpenOrder(t, db, nil)
	bill := seedBill(t, db, order.ID, 100.00)

	status, _ := doJSON(t, app, "POST", "/api/v1/payment", cook, map[string]any{
		"billId": bill.ID, "amount": 10.00, "method": "CASH",
	})
	if status != 403 {
		t.Errorf("cook adding payment: status %d, want 403", status)
	}
}
