package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/router"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// a single connection keeps the in-memory database alive and serialized
	sqlDB.SetMaxOpenConns(1)

	database.Migrate(db)

	app := fiber.New()
	router.SetupRoutes(app, db, nil)
	return app, db
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	helper.JwtSecret = []byte("test-secret")
	token, err := helper.GenerateAccessToken(model.TokenClaim{
		AccountId: 1,
		Username:  "tester",
		Role:      role,
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var parsed map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil && err.Error() != "EOF" {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, parsed
}

func dataField(t *testing.T, parsed map[string]any) map[string]any {
	t.Helper()
	data, ok := parsed["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", parsed)
	}
	return data
}

// seedMenuItem inserts a catalog row directly.
func seedMenuItem(t *testing.T, db *gorm.DB, name string, price float64) model.MenuItem {
	t.Helper()
	item := model.MenuItem{Name: name, Slug: helper.MakeMenuSlug(name), Category: "FOOD", Price: price, Available: true}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return item
}

func seedTable(t *testing.T, db *gorm.DB, number int) model.Table {
	t.Helper()
	table := model.Table{Number: number, Seats: 4}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	return table
}

func seedOpenOrder(t *testing.T, db *gorm.DB, table *model.Table) model.Order {
	t.Helper()
	order := model.Order{PublicCode: helper.NewOrderCode(), Status: constants.OrderOpen}
	if table != nil {
		order.TableID = &table.ID
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func seedBill(t *testing.T, db *gorm.DB, orderId uint, total float64) model.Bill {
	t.Helper()
	bill := model.Bill{PublicCode: helper.NewBillCode(), OrderID: orderId, Total: total, Status: constants.BillPending}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("seed bill: %v", err)
	}
	return bill
}
