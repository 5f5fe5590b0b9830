package handler

import (
	"errors"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemHandler struct {
	DB *gorm.DB
}

func NewOrderItemHandler(db *gorm.DB) *OrderItemHandler {
	return &OrderItemHandler{DB: db}
}

// buildOrderItem snapshots the menu price into a new item with its spot rows.
func buildOrderItem(tx *gorm.DB, orderId uint, input model.AddOrderItemInput) (*model.OrderItem, error) {
	var menuItem model.MenuItem
	if err := tx.First(&menuItem, input.MenuItemId).Error; err != nil {
		return nil, err
	}

	item := model.OrderItem{
		OrderID:    orderId,
		MenuItemID: menuItem.ID,
		Quantity:   input.Quantity,
		UnitPrice:  menuItem.Price,
		Notes:      input.Notes,
		Status:     constants.ItemPending,
	}
	for _, seat := range input.SeatNumbers {
		item.Spots = append(item.Spots, model.Spot{SeatNumber: seat})
	}
	return &item, nil
}

// refreshOrderTotal re-derives the running order total after an item edit.
// Bills already cut from this order keep their snapshot.
func refreshOrderTotal(tx *gorm.DB, orderId uint) error {
	var items []model.OrderItem
	if err := tx.Where("order_id = ?", orderId).Find(&items).Error; err != nil {
		return err
	}
	return tx.Model(&model.Order{}).
		Where("id = ?", orderId).
		Update("total_amount", helper.ComputeOrderTotal(items)).Error
}

// AddItem creates one order item together with its seat spots.
func (h *OrderItemHandler) AddItem(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.AddOrderItemInput)

	tx := h.DB.Begin()

	var order model.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if order.Status == constants.OrderClosed {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ORDER_ALREADY_CLOSED, errors.New("order closed"))
	}

	item, err := buildOrderItem(tx, order.ID, input)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Create(item).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := refreshOrderTotal(tx, order.ID); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

// UpdateItem patches quantity/notes/status on one item and, when seat
// numbers are supplied, replaces its spot rows.
func (h *OrderItemHandler) UpdateItem(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.UpdateOrderItemInput)

	tx := h.DB.Begin()

	var item model.OrderItem
	if err := tx.First(&item, itemId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_ITEM_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// copier only moves the non-nil patch fields onto the row
	if err := copier.CopyWithOption(&item, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.SeatNumbers != nil {
		if err := tx.Where("order_item_id = ?", item.ID).Delete(&model.Spot{}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		for _, seat := range *input.SeatNumbers {
			if err := tx.Create(&model.Spot{OrderItemID: item.ID, SeatNumber: seat}).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
		}
	}

	if err := refreshOrderTotal(tx, item.OrderID); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var updated model.OrderItem
	if err := h.DB.Preload("Spots").Preload("MenuItem").First(&updated, item.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

// RemoveItem deletes the spot rows first, then the item.
func (h *OrderItemHandler) RemoveItem(c *fiber.Ctx) error {
	itemId := c.Locals("inputId").(int)

	tx := h.DB.Begin()

	var item model.OrderItem
	if err := tx.First(&item, itemId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_ITEM_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Where("order_item_id = ?", item.ID).Delete(&model.Spot{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Delete(&model.OrderItem{}, item.ID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := refreshOrderTotal(tx, item.OrderID); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "item removed",
	})
}

// ReplaceItems is the correction path before billing: every existing item
// and spot of the order goes away and the supplied set is recreated, all
// inside one transaction.
func (h *OrderItemHandler) ReplaceItems(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.ReplaceOrderItemsInput)

	tx := h.DB.Begin()

	var order model.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if order.Status == constants.OrderClosed {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ORDER_ALREADY_CLOSED, errors.New("order closed"))
	}

	// spots first, they hang off the items
	if err := tx.Where("order_item_id IN (?)",
		tx.Model(&model.OrderItem{}).Select("id").Where("order_id = ?", order.ID),
	).Delete(&model.Spot{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&model.OrderItem{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	newItems := make([]model.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		item, err := buildOrderItem(tx, order.ID, in)
		if err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, err)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if err := tx.Create(item).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		newItems = append(newItems, *item)
	}

	if err := refreshOrderTotal(tx, order.ID); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, newItems)
}
