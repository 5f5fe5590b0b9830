package handler

import (
	"errors"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderHandler struct {
	DB *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{DB: db}
}

// OpenOrder starts a tab on a free table and marks it occupied.
func (h *OrderHandler) OpenOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.OpenOrderInput)
	claim := helper.GetClaimFromToken(c)

	tx := h.DB.Begin()

	var table model.Table
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&table, input.TableId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TABLE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if table.Occupied {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict, "Table already has an open order", errors.New("table occupied"))
	}

	order := model.Order{
		PublicCode: helper.NewOrderCode(),
		TableID:    &table.ID,
		Status:     constants.OrderOpen,
		CreatedBy:  claim.AccountId,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Model(&table).Updates(map[string]interface{}{
		"occupied":         true,
		"current_order_id": order.ID,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	var order model.Order
	if err := h.DB.
		Preload("Items").
		Preload("Items.MenuItem").
		Preload("Items.Spots").
		Preload("Table").
		Preload("TableGroup").
		First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	var pagination model.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	status := c.Query("status")

	countQuery := h.DB.Model(&model.Order{})
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	var totalCount int64
	countQuery.Count(&totalCount)

	query := h.DB.Preload("Items").Preload("Table").Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []model.Order
	query = utils.ApplyPagination(query, pagination.Limit, pagination.Page)
	if err := query.Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       orders,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

// CloseOrder settles a tab: the order is marked CLOSED and its tables are
// freed. Closing twice is a no-op conflict.
func (h *OrderHandler) CloseOrder(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

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

	now := time.Now()
	if err := tx.Model(&order).Updates(map[string]interface{}{
		"status":    constants.OrderClosed,
		"closed_at": now,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Model(&model.Table{}).
		Where("current_order_id = ?", order.ID).
		Updates(map[string]interface{}{
			"occupied":         false,
			"current_order_id": nil,
		}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	order.Status = constants.OrderClosed
	order.ClosedAt = &now
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}
