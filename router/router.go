package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/restohub/restopos/controllers"
	"github.com/restohub/restopos/middlewares"
	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/services"
	"github.com/restohub/restopos/ws"
)

// SetupRouter wires every endpoint. Write access follows the role
// ladder: admin manages the tenant, manager runs the floor, staff
// takes and serves orders. Reads are open to all three.
func SetupRouter(db *gorm.DB, hub *ws.Hub, orderService *services.OrderService, printer services.TicketPrinter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddleware())

	limiter := middlewares.NewRateLimiter(300, 60)
	r.Use(limiter.RateLimit())

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	areaCtrl := controllers.NewAreaController(db)
	tableCtrl := controllers.NewTableController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	itemCtrl := controllers.NewItemController(db)
	stockCtrl := controllers.NewItemStockController(db, orderService.Ledger())
	orderCtrl := controllers.NewOrderController(db, orderService)
	kotCtrl := controllers.NewKOTController(db, printer)
	receiptCtrl := controllers.NewReceiptController(db, printer)
	reportCtrl := controllers.NewReportController(db)
	wsCtrl := controllers.NewWSController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	strict := middlewares.NewStrictRateLimiter()
	r.POST("/register", strict, userCtrl.Register)
	r.POST("/login", strict, userCtrl.Login)

	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/events", wsCtrl.Connect)
	}

	allRoles := []string{models.RoleAdmin, models.RoleManager, models.RoleStaff}
	managers := []string{models.RoleAdmin, models.RoleManager}
	admins := []string{models.RoleAdmin}

	api := r.Group("/")
	{
		api.GET("/profile", middlewares.AuthMiddleware(allRoles...), userCtrl.GetProfile)

		api.GET("/users", middlewares.AuthMiddleware(admins...), userCtrl.GetAllUsers)
		api.POST("/users", middlewares.AuthMiddleware(admins...), userCtrl.CreateUser)
		api.DELETE("/users/:user_id", middlewares.AuthMiddleware(admins...), userCtrl.DeleteUser)

		api.GET("/restaurant", middlewares.AuthMiddleware(allRoles...), restaurantCtrl.GetRestaurant)
		api.PATCH("/restaurant", middlewares.AuthMiddleware(admins...), restaurantCtrl.UpdateRestaurant)

		api.GET("/areas", middlewares.AuthMiddleware(allRoles...), areaCtrl.GetAllAreas)
		api.POST("/areas", middlewares.AuthMiddleware(managers...), areaCtrl.CreateArea)
		api.PATCH("/areas/:area_id", middlewares.AuthMiddleware(managers...), areaCtrl.UpdateArea)
		api.DELETE("/areas/:area_id", middlewares.AuthMiddleware(managers...), areaCtrl.DeleteArea)

		api.GET("/tables", middlewares.AuthMiddleware(allRoles...), tableCtrl.GetAllTables)
		api.POST("/tables", middlewares.AuthMiddleware(managers...), tableCtrl.CreateTable)
		api.PATCH("/tables/:table_id", middlewares.AuthMiddleware(managers...), tableCtrl.UpdateTable)
		api.DELETE("/tables/:table_id", middlewares.AuthMiddleware(managers...), tableCtrl.DeleteTable)

		api.GET("/categories", middlewares.AuthMiddleware(allRoles...), categoryCtrl.GetAllCategories)
		api.POST("/categories", middlewares.AuthMiddleware(managers...), categoryCtrl.CreateCategory)
		api.PATCH("/categories/:cat_id", middlewares.AuthMiddleware(managers...), categoryCtrl.UpdateCategory)
		api.DELETE("/categories/:cat_id", middlewares.AuthMiddleware(managers...), categoryCtrl.DeleteCategory)

		api.GET("/items", middlewares.AuthMiddleware(allRoles...), itemCtrl.GetAllItems)
		api.GET("/items/:item_id", middlewares.AuthMiddleware(allRoles...), itemCtrl.GetItemByID)
		api.POST("/items", middlewares.AuthMiddleware(managers...), itemCtrl.CreateItem)
		api.PATCH("/items/:item_id", middlewares.AuthMiddleware(managers...), itemCtrl.UpdateItem)
		api.DELETE("/items/:item_id", middlewares.AuthMiddleware(managers...), itemCtrl.DeleteItem)

		api.GET("/item-stocks", middlewares.AuthMiddleware(allRoles...), stockCtrl.GetItemStocks)
		api.GET("/item-stocks/:stock_id", middlewares.AuthMiddleware(allRoles...), stockCtrl.GetItemStockByID)
		api.POST("/item-stocks", middlewares.AuthMiddleware(managers...), stockCtrl.AdjustItemStock)
		api.PATCH("/item-stocks/:stock_id", middlewares.AuthMiddleware(managers...), stockCtrl.UpdateItemStock)
		api.DELETE("/item-stocks/:stock_id", middlewares.AuthMiddleware(managers...), stockCtrl.DeleteItemStock)

		api.GET("/orders", middlewares.AuthMiddleware(allRoles...), orderCtrl.GetAllOrders)
		api.GET("/orders/:order_id", middlewares.AuthMiddleware(allRoles...), orderCtrl.GetOrderByID)
		api.POST("/orders", middlewares.AuthMiddleware(allRoles...), orderCtrl.CreateOrder)
		api.PUT("/orders/:order_id", middlewares.AuthMiddleware(allRoles...), orderCtrl.UpdateOrder)
		api.PATCH("/orders/:order_id/cancel", middlewares.AuthMiddleware(managers...), orderCtrl.CancelOrder)
		api.PATCH("/orders/:order_id/checkout", middlewares.AuthMiddleware(allRoles...), orderCtrl.CheckoutOrder)
		api.POST("/orders/checkout-bulk", middlewares.AuthMiddleware(managers...), orderCtrl.BulkCheckout)
		api.DELETE("/orders/:order_id", middlewares.AuthMiddleware(admins...), orderCtrl.DeleteOrder)

		api.GET("/kots", middlewares.AuthMiddleware(allRoles...), kotCtrl.GetAllKOTs)
		api.GET("/kots/:kot_id", middlewares.AuthMiddleware(allRoles...), kotCtrl.GetKOTByID)
		api.POST("/kots/:kot_id/reprint", middlewares.AuthMiddleware(allRoles...), kotCtrl.ReprintKOT)

		api.GET("/receipts", middlewares.AuthMiddleware(allRoles...), receiptCtrl.GetAllReceipts)
		api.GET("/receipts/:receipt_id", middlewares.AuthMiddleware(allRoles...), receiptCtrl.GetReceiptByID)
		api.POST("/receipts/:receipt_id/reprint", middlewares.AuthMiddleware(allRoles...), receiptCtrl.ReprintReceipt)

		api.GET("/reports/sales", middlewares.AuthMiddleware(managers...), reportCtrl.GetSalesReport)
		api.GET("/reports/sales/chart", middlewares.AuthMiddleware(managers...), reportCtrl.GetSalesChart)
		api.GET("/reports/sales/pdf", middlewares.AuthMiddleware(managers...), reportCtrl.GetSalesPDF)
		api.GET("/reports/top-items", middlewares.AuthMiddleware(managers...), reportCtrl.GetTopItems)
		api.GET("/reports/live", middlewares.AuthMiddleware(allRoles...), reportCtrl.GetLiveSnapshot)
	}

	return r
}
