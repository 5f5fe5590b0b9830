package handler

import (
	"errors"
	"log"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SplitHandler struct {
	DB *gorm.DB
}

func NewSplitHandler(db *gorm.DB) *SplitHandler {
	return &SplitHandler{DB: db}
}

// CreateSplits allocates seat shares on a bill. Shares do not have to add up
// to the bill total; a mismatch is logged, not rejected.
func (h *SplitHandler) CreateSplits(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateSplitsInput)

	tx := h.DB.Begin()

	var bill model.Bill
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bill, input.BillId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BILL_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if sum := helper.SumSplits(input.Splits); sum != bill.Total {
		log.Printf("splits for bill %s sum to %.2f, total is %.2f", bill.PublicCode, sum, bill.Total)
	}

	splits := make([]model.BillSplit, 0, len(input.Splits))
	for _, s := range input.Splits {
		splits = append(splits, model.BillSplit{
			BillID:     bill.ID,
			SeatNumber: s.SeatNumber,
			Amount:     s.Amount,
		})
	}
	if err := tx.Create(&splits).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"created": len(splits),
	})
}

// PaySplit marks one seat share settled. The flag lives apart from the
// payment ledger and never moves the bill status.
func (h *SplitHandler) PaySplit(c *fiber.Ctx) error {
	splitId := c.Locals("inputId").(int)

	var split model.BillSplit
	if err := h.DB.First(&split, splitId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SPLIT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !split.Paid {
		split.Paid = true
		if err := h.DB.Model(&split).Update("paid", true).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, split)
}

// AssignShares bulk-tags the order items named in each share. Items that
// belong to another order are filtered out by the order-scoped update, not
// treated as an error; unlisted items are untouched.
func (h *SplitHandler) AssignShares(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.AssignSharesInput)

	tx := h.DB.Begin()

	var order model.Order
	if err := tx.First(&order, orderId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	for _, share := range input.Shares {
		if err := tx.Model(&model.OrderItem{}).
			Where("id IN ? AND order_id = ?", share.ItemIds, order.ID).
			Update("share_id", share.ShareId).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "shares assigned",
	})
}
