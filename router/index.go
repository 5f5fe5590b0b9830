package router

import (
	"restaurant_manager/constants"
	"restaurant_manager/handler"
	"restaurant_manager/middleware"
	"restaurant_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	authHandler := handler.NewAuthHandler(db)
	tableHandler := handler.NewTableHandler(db, rdb)
	orderHandler := handler.NewOrderHandler(db)
	orderItemHandler := handler.NewOrderItemHandler(db)
	billHandler := handler.NewBillHandler(db)
	paymentHandler := handler.NewPaymentHandler(db)
	splitHandler := handler.NewSplitHandler(db)
	menuHandler := handler.NewMenuHandler(db)

	auth := v1.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.Protected(), authHandler.Me)

	menu := v1.Group("/menu", logger.New())
	menu.Get("/", middleware.Protected(), menuHandler.GetMenu)
	menu.Get("/:menuItemId", middleware.Protected(), validate.GetById("menuItemId"), menuHandler.GetMenuItem)
	menu.Post("/", middleware.Protected(), middleware.RequireRole(constants.RoleAdmin), menuHandler.CreateMenuItem)

	table := v1.Group("/table", logger.New())
	table.Get("/", middleware.Protected(), tableHandler.GetTables)
	table.Get("/groups", middleware.Protected(), tableHandler.GetTableGroups)
	table.Post("/merge", middleware.Protected(), middleware.RequireRole(constants.RoleWaiter, constants.RoleCashier), validate.MergeTables(), tableHandler.MergeTables)
	table.Delete("/groups/:groupId", middleware.Protected(), middleware.RequireRole(constants.RoleWaiter, constants.RoleCashier), validate.GetById("groupId"), tableHandler.UnmergeTables)

	order := v1.Group("/order", logger.New())
	order.Get("/", middleware.Protected(), orderHandler.GetOrders)
	order.Get("/:orderId", middleware.Protected(), validate.GetById("orderId"), orderHandler.GetOrder)
	order.Post("/", middleware.Protected(), middleware.RequireRole(constants.RoleWaiter, constants.RoleCashier), validate.OpenOrder(), orderHandler.OpenOrder)
	order.Patch("/:orderId/close", middleware.Protected(), middleware.RequireRole(constants.RoleCashier), validate.GetById("orderId"), orderHandler.CloseOrder)

	order.Post("/:orderId/items", middleware.Protected(), middleware.RequireRole(constants.RoleWaiter, constants.RoleCashier), validate.GetById("orderId"), validate.AddOrderItem(), orderItemHandler.AddItem)
	order.Put("/:orderId/items", middleware.Protected(), middleware.RequireRole(constants.RoleWaiter, constants.RoleCashier), validate.GetById("orderId"), validate.ReplaceOrderItems(), orderItemHandler.ReplaceItems)
	order.Post("/:orderId/shares", middleware.Protected(), middleware.RequireRole(constants.RoleWaiter, constants.RoleCashier), validate.GetById("orderId"), validate.AssignShares(), splitHandler.AssignShares)

	item := v1.Group("/order-item", logger.New())
	item.Patch("/:itemId", middleware.Protected(), middleware.RequireRole(constants.RoleWaiter, constants.RoleCashier, constants.RoleCook), validate.GetById("itemId"), validate.UpdateOrderItem(), orderItemHandler.UpdateItem)
	item.Delete("/:itemId", middleware.Protected(), middleware.RequireRole(constants.RoleWaiter, constants.RoleCashier), validate.GetById("itemId"), orderItemHandler.RemoveItem)

	bill := v1.Group("/bill", logger.New())
	bill.Get("/", middleware.Protected(), billHandler.GetBills)
	bill.Get("/:billId", middleware.Protected(), validate.GetById("billId"), billHandler.GetBill)
	bill.Get("/:billId/receipt", middleware.Protected(), validate.GetById("billId"), billHandler.GetBillReceipt)
	bill.Post("/", middleware.Protected(), middleware.RequireRole(constants.RoleCashier), validate.CreateBill(), billHandler.CreateBill)
	bill.Post("/splits", middleware.Protected(), middleware.RequireRole(constants.RoleCashier), validate.CreateSplits(), splitHandler.CreateSplits)
	bill.Patch("/splits/:splitId/pay", middleware.Protected(), middleware.RequireRole(constants.RoleCashier), validate.GetById("splitId"), splitHandler.PaySplit)

	payment := v1.Group("/payment", logger.New())
	payment.Post("/", middleware.Protected(), middleware.RequireRole(constants.RoleCashier), validate.CreatePayment(), paymentHandler.AddPayment)
	payment.Delete("/:paymentId", middleware.Protected(), middleware.RequireRole(constants.RoleCashier), validate.GetById("paymentId"), paymentHandler.RemovePayment)

	if rdb != nil {
		ws := app.Group("/ws")
		ws.Use(func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		ws.Get("/tables", websocket.New(handler.TableBoardSocket(db, rdb)))
	}
}
