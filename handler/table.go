package handler

import (
	"errors"
	"fmt"

	"restaurant_manager/constants"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TableHandler struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewTableHandler(db *gorm.DB, rdb *redis.Client) *TableHandler {
	return &TableHandler{DB: db, RDB: rdb}
}

func (h *TableHandler) GetTables(c *fiber.Ctx) error {
	var tables []model.Table
	if err := h.DB.Order("number").Find(&tables).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tables)
}

func (h *TableHandler) GetTableGroups(c *fiber.Ctx) error {
	var groups []model.TableGroup
	if err := h.DB.Preload("Tables").Find(&groups).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, groups)
}

// MergeTables joins two or more free tables into a group sharing one order.
// Tables already in a group conflict instead of being silently regrouped.
func (h *TableHandler) MergeTables(c *fiber.Ctx) error {
	input := c.Locals("input").(model.MergeTablesInput)
	claim := helper.GetClaimFromToken(c)

	tx := h.DB.Begin()

	var tables []model.Table
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", input.TableIds).
		Find(&tables).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if len(tables) != len(input.TableIds) {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TABLE_NOT_FOUND, errors.New("some table ids do not exist"))
	}

	for _, table := range tables {
		if table.TableGroupID != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.TABLE_ALREADY_GROUPED,
				fmt.Errorf("table %d already grouped", table.Number))
		}
	}

	name := input.Name
	if name == "" {
		name = fmt.Sprintf("Group of %d tables", len(tables))
	}
	group := model.TableGroup{Name: name}
	if err := tx.Create(&group).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	order := model.Order{
		PublicCode:   helper.NewOrderCode(),
		TableGroupID: &group.ID,
		Status:       constants.OrderOpen,
		CreatedBy:    claim.AccountId,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// all members share the group, the order and the occupied flag
	if err := tx.Model(&model.Table{}).
		Where("id IN ?", input.TableIds).
		Updates(map[string]interface{}{
			"table_group_id":   group.ID,
			"current_order_id": order.ID,
			"occupied":         true,
		}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	h.publishTableBoard(c)

	if err := h.DB.Preload("Tables").First(&group, group.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"group": group,
		"order": order,
	})
}

// UnmergeTables dissolves a group: member tables lose the group and order
// references and become free again.
func (h *TableHandler) UnmergeTables(c *fiber.Ctx) error {
	groupId := c.Locals("inputId").(int)

	tx := h.DB.Begin()

	var group model.TableGroup
	if err := tx.Preload("Tables").First(&group, groupId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TABLE_GROUP_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Model(&model.Table{}).
		Where("table_group_id = ?", group.ID).
		Updates(map[string]interface{}{
			"table_group_id":   nil,
			"current_order_id": nil,
			"occupied":         false,
		}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Delete(&model.TableGroup{}, group.ID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	h.publishTableBoard(c)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "group dissolved",
	})
}

// publishTableBoard pushes the fresh table list to the floor board channel.
func (h *TableHandler) publishTableBoard(c *fiber.Ctx) {
	if h.RDB == nil {
		return
	}
	var tables []model.Table
	if err := h.DB.Order("number").Find(&tables).Error; err != nil {
		return
	}
	PublishTableBoard(c.Context(), h.RDB, tables)
}
