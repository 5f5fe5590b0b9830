package handler_test

import (
	"fmt"
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/model"
)

func TestMergeTablesNeedsAtLeastTwo(t *testing.T) {
	app, db := newTestApp(t)
	token := tokenFor(t, constants.RoleWaiter)

	table := seedTable(t, db, 1)

	status, _ := doJSON(t, app, "POST", "/api/v1/table/merge", token, map[string]any{
		"tableIds": []uint{table.ID},
	})
	if status != 400 {
		t.Errorf("single table merge: status %d, want 400", status)
	}
}

func TestMergeTablesSharesOneOrder(t *testing.T) {
	app, db := newTestApp(t)
	token := tokenFor(t, constants.RoleWaiter)

	t1 := seedTable(t, db, 1)
	t2 := seedTable(t, db, 2)

	status, parsed := doJSON(t, app, "POST", "/api/v1/table/merge", token, map[string]any{
		"tableIds": []uint{t1.ID, t2.ID},
	})
	if status != 201 {
		t.Fatalf("merge: status %d, body %v", status, parsed)
	}
	data := dataField(t, parsed)
	group := data["group"].(map[string]any)
	order := data["order"].(map[string]any)
	groupId := uint(group["id"].(float64))
	orderId := uint(order["id"].(float64))

	var tables []model.Table
	db.Where("id IN ?", []uint{t1.ID, t2.ID}).Find(&tables)
	for _, table := range tables {
		if !table.Occupied {
			t.Errorf("table %d not occupied after merge", table.Number)
		}
		if table.TableGroupID == nil || *table.TableGroupID != groupId {
			t.Errorf("table %d group %v, want %d", table.Number, table.TableGroupID, groupId)
		}
		if table.CurrentOrderID == nil || *table.CurrentOrderID != orderId {
			t.Errorf("table %d order %v, want %d", table.Number, table.CurrentOrderID, orderId)
		}
	}

	var groupCount int64
	db.Model(&model.TableGroup{}).Count(&groupCount)
	if groupCount != 1 {
		t.Errorf("groups %d, want 1", groupCount)
	}

	var merged model.Order
	if err := db.First(&merged, orderId).Error; err != nil {
		t.Fatalf("merged order missing: %v", err)
	}
	if merged.TableGroupID == nil || *merged.TableGroupID != groupId {
		t.Errorf("order group %v, want %d", merged.TableGroupID, groupId)
	}
}

func TestMergeTablesMissingTable(t *testing.T) {
	app, db := newTestApp(t)
	token := tokenFor(t, constants.RoleWaiter)

	t1 := seedTable(t, db, 1)

	status, _ := doJSON(t, app, "POST", "/api/v1/table/merge", token, map[string]any{
		"tableIds": []uint{t1.ID, 9999},
	})
	if status != 404 {
		t.Errorf("merge with ghost table: status %d, want 404", status)
	}
}

func TestMergeAlreadyGroupedTableConflicts(t *testing.T) {
	app, db := newTestApp(t)
	token := tokenFor(t, constants.RoleWaiter)

	t1 := seedTable(t, db, 1)
	t2 := seedTable(t, db, 2)
	t3 := seedTable(t, db, 3)

	status, _ := doJSON(t, app, "POST", "/api/v1/table/merge", token, map[string]any{
		"tableIds": []uint{t1.ID, t2.ID},
	})
	if status != 201 {
		t.Fatalf("first merge: status %d", status)
	}

	status, _ = doJSON(t, app, "POST", "/api/v1/table/merge", token, map[string]any{
		"tableIds": []uint{t2.ID, t3.ID},
	})
	if status != 409 {
		t.Errorf("overlapping merge: status %d, want 409", status)
	}
}

func TestUnmergeClearsGroupReferences(t *testing.T) {
	app, db := newTestApp(t)
	token := tokenFor(t, constants.RoleWaiter)

	t1 := seedTable(t, db, 1)
	t2 := seedTable(t, db, 2)

	_, parsed := doJSON(t, app, "POST", "/api/v1/table/merge", token, map[string]any{
		"tableIds": []uint{t1.ID, t2.ID},
	})
	group := dataField(t, parsed)["group"].(map[string]any)
	groupId := uint(group["id"].(float64))

	status, _ := doJSON(t, app, "DELETE", fmt.Sprintf("/api/v1/table/groups/%d", groupId), token, nil)
	if status != 200 {
		t.Fatalf("unmerge: status %d", status)
	}

	var tables []model.Table
	db.Where("id IN ?", []uint{t1.ID, t2.ID}).Find(&tables)
	for _, table := range tables {
		if table.Occupied {
			t.Errorf("table %d still occupied after unmerge", table.Number)
		}
		if table.TableGroupID != nil {
			t.Errorf("table %d still grouped", table.Number)
		}
		if table.CurrentOrderID != nil {
			t.Errorf("table %d still holds an order ref", table.Number)
		}
	}

	var groupCount int64
	db.Model(&model.TableGroup{}).Count(&groupCount)
	if groupCount != 0 {
		t.Errorf("groups left %d, want 0", groupCount)
	}
}

func TestOpenOrderOccupiesTable(t *testing.T) {
	app, db := newTestApp(t)
	token := tokenFor(t, constants.RoleWaiter)

	table := seedTable(t, db, 5)

	status, parsed := doJSON(t, app, "POST", "/api/v1/order", token, map[string]any{
		"tableId": table.ID,
	})
	if status != 201 {
		t.Fatalf("open order: status %d, body %v", status, parsed)
	}

	var reloaded model.Table
	db.First(&reloaded, table.ID)
	if !reloaded.Occupied {
		t.Error("table not occupied after opening an order")
	}

	// second open on the same table conflicts
	status, _ = doJSON(t, app, "POST", "/api/v1/order", token, map[string]any{
		"tableId": table.ID,
	})
	if status != 409 {
		t.Errorf("double open: status %d, want 409", status)
	}
}

func TestCloseOrderFreesTables(t *testing.T) {
	app, db := newTestApp(t)
	cashier := tokenFor(t, constants.RoleCashier)
	waiter := tokenFor(t, constants.RoleWaiter)

	table := seedTable(t, db, 6)

	_, parsed := doJSON(t, app, "POST", "/api/v1/order", waiter, map[string]any{
		"tableId": table.ID,
	})
	orderId := uint(dataField(t, parsed)["id"].(float64))

	status, parsed := doJSON(t, app, "PATCH", fmt.Sprintf("/api/v1/order/%d/close", orderId), cashier, nil)
	if status != 200 {
		t.Fatalf("close order: status %d, body %v", status, parsed)
	}
	if got := dataField(t, parsed)["status"]; got != constants.OrderClosed {
		t.Errorf("order status %v, want %s", got, constants.OrderClosed)
	}

	var reloaded model.Table
	db.First(&reloaded, table.ID)
	if reloaded.Occupied {
		t.Error("table still occupied after close")
	}

	status, _ = doJSON(t, app, "PATCH", fmt.Sprintf("/api/v1/order/%d/close", orderId), cashier, nil)
	if status != 409 {
		t.Errorf("double close: status %d, want 409", status)
	}
}
