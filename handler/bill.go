package handler

import (
	"encoding/base64"
	"errors"
	"log"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BillHandler struct {
	DB *gorm.DB
}

func NewBillHandler(db *gorm.DB) *BillHandler {
	return &BillHandler{DB: db}
}

// CreateBill snapshots the order total into a new PENDING bill. The total is
// never re-derived afterwards; later item edits do not move it.
func (h *BillHandler) CreateBill(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateBillInput)

	tx := h.DB.Begin()

	var order model.Order
	if err := tx.Preload("Items").First(&order, input.OrderId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	total := helper.ComputeOrderTotal(order.Items)
	if input.Total != nil {
		total = *input.Total
	}

	bill := model.Bill{
		PublicCode: helper.NewBillCode(),
		OrderID:    order.ID,
		Total:      total,
		Status:     constants.BillPending,
	}
	if err := tx.Create(&bill).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, bill)
}

func (h *BillHandler) GetBill(c *fiber.Ctx) error {
	billId := c.Locals("inputId").(int)

	var bill model.Bill
	if err := h.DB.
		Preload("Payments").
		Preload("Splits").
		Preload("Order").
		Preload("Order.Items").
		Preload("Order.Items.Spots").
		First(&bill, billId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BILL_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, bill)
}

func (h *BillHandler) GetBills(c *fiber.Ctx) error {
	var pagination model.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var totalCount int64
	h.DB.Model(&model.Bill{}).Count(&totalCount)

	var bills []model.Bill
	query := h.DB.Preload("Payments").Preload("Splits").Order("created_at desc")
	query = utils.ApplyPagination(query, pagination.Limit, pagination.Page)
	if err := query.Find(&bills).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       bills,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

// GetBillReceipt returns the bill with a QR of its public code, for the
// printed receipt the cashier hands over.
func (h *BillHandler) GetBillReceipt(c *fiber.Ctx) error {
	billId := c.Locals("inputId").(int)

	var bill model.Bill
	if err := h.DB.
		Preload("Payments").
		Preload("Splits").
		Preload("Order").
		Preload("Order.Items").
		Preload("Order.Items.MenuItem").
		First(&bill, billId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BILL_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	qrBase64 := ""
	qrBytes, err := utils.GenerateQRCode(bill.PublicCode, 400)
	if err != nil {
		log.Printf("receipt QR failed for bill %s: %v", bill.PublicCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	lines := []fiber.Map{}
	for _, item := range bill.Order.Items {
		if item.Status == constants.ItemCancelled {
			continue
		}
		lines = append(lines, fiber.Map{
			"name":      item.MenuItem.Name,
			"quantity":  item.Quantity,
			"unitPrice": item.UnitPrice,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"billCode":    bill.PublicCode,
		"total":       bill.Total,
		"status":      bill.Status,
		"paymentsSum": helper.SumPayments(bill.Payments),
		"lines":       lines,
		"qrCode":      qrBase64,
	})
}
