package database

import (
	"log"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/model"

	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	seedAccounts(db)
	seedMenu(db)
	seedTables(db)
}

func seedAccounts(db *gorm.DB) {
	var count int64
	db.Model(&model.Account{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := helper.HashPassword("admin123")
	if err != nil {
		log.Printf("seed: hash password failed: %v", err)
		return
	}

	accounts := []model.Account{
		{Username: "admin", Password: hash, FullName: "Administrator", Role: constants.RoleAdmin, Active: true},
		{Username: "cashier", Password: hash, FullName: "Front Cashier", Role: constants.RoleCashier, Active: true},
		{Username: "waiter", Password: hash, FullName: "Floor Waiter", Role: constants.RoleWaiter, Active: true},
		{Username: "cook", Password: hash, FullName: "Kitchen Cook", Role: constants.RoleCook, Active: true},
	}
	if err := db.Create(&accounts).Error; err != nil {
		log.Printf("seed: create accounts failed: %v", err)
	}
}

func seedMenu(db *gorm.DB) {
	var count int64
	db.Model(&model.MenuItem{}).Count(&count)
	if count > 0 {
		return
	}

	items := []model.MenuItem{
		{Name: "Margherita Pizza", Category: "FOOD", Price: 9.50},
		{Name: "Carbonara", Category: "FOOD", Price: 11.00},
		{Name: "Caesar Salad", Category: "FOOD", Price: 7.50},
		{Name: "Tiramisu", Category: "DESSERT", Price: 5.00},
		{Name: "Espresso", Category: "DRINK", Price: 2.00},
		{Name: "House Red Wine", Category: "DRINK", Price: 4.50},
	}
	for i := range items {
		items[i].Slug = helper.MakeMenuSlug(items[i].Name)
		items[i].Available = true
	}
	if err := db.Create(&items).Error; err != nil {
		log.Printf("seed: create menu failed: %v", err)
	}
}

func seedTables(db *gorm.DB) {
	var count int64
	db.Model(&model.Table{}).Count(&count)
	if count > 0 {
		return
	}

	tables := make([]model.Table, 0, 10)
	for n := 1; n <= 10; n++ {
		seats := 4
		if n > 8 {
			seats = 8
		}
		tables = append(tables, model.Table{Number: n, Seats: seats})
	}
	if err := db.Create(&tables).Error; err != nil {
		log.Printf("seed: create tables failed: %v", err)
	}
}
