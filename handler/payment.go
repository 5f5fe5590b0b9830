package handler

import (
	"errors"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentHandler struct {
	DB *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db}
}

// recomputeBillStatus re-derives the bill status from the full current
// payments sum and persists it. Must run inside the same transaction as the
// ledger mutation, with the bill row already locked.
func recomputeBillStatus(tx *gorm.DB, bill *model.Bill) error {
	var payments []model.Payment
	if err := tx.Where("bill_id = ?", bill.ID).Find(&payments).Error; err != nil {
		return err
	}

	status := helper.DeriveBillStatus(bill.Total, helper.SumPayments(payments))
	if status == bill.Status {
		return nil
	}
	bill.Status = status
	return tx.Model(bill).Update("status", status).Error
}

// AddPayment appends a payment to the bill ledger and re-derives the bill
// status in the same transaction. Two concurrent adds on one bill serialize
// on the bill row lock, so neither writes a status computed from a stale sum.
func (h *PaymentHandler) AddPayment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreatePaymentInput)

	tx := h.DB.Begin()

	var bill model.Bill
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bill, input.BillId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BILL_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	payment := model.Payment{
		BillID:      bill.ID,
		Amount:      input.Amount,
		Method:      input.Method,
		PaymentCode: helper.NewPaymentCode(),
		Reference:   input.Reference,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := recomputeBillStatus(tx, &bill); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"payment":    payment,
		"billStatus": bill.Status,
	})
}

// RemovePayment deletes one payment and re-derives the bill status from the
// remaining ledger. Returns a snapshot of the removed payment.
func (h *PaymentHandler) RemovePayment(c *fiber.Ctx) error {
	paymentId := c.Locals("inputId").(int)

	tx := h.DB.Begin()

	var payment model.Payment
	if err := tx.First(&payment, paymentId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PAYMENT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var bill model.Bill
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bill, payment.BillID).Error; err != nil {
		tx.Rollback()
		// A payment without its bill is a broken ledger, never skip the
		// status recompute silently.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR,
				errors.New("payment references missing bill"))
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Delete(&model.Payment{}, payment.ID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := recomputeBillStatus(tx, &bill); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"payment":    payment,
		"billStatus": bill.Status,
	})
}
