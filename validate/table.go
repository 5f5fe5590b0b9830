package validate

import (
	"errors"
	"fmt"

	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func MergeTables() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.MergeTablesInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		// A merge needs at least two tables
		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		seen := map[uint]bool{}
		for _, id := range input.TableIds {
			if seen[id] {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "Duplicate table id in merge", errors.New("duplicate id"))
			}
			seen[id] = true
		}

		c.Locals("input", input)
		return c.Next()
	}
}
