package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/controllers"
	"github.com/tasteline/restaurant-app/middlewares"
	"github.com/tasteline/restaurant-app/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)
	inventoryCtrl := controllers.NewInventoryController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	feedbackCtrl := controllers.NewFeedbackController(db)
	transactionCtrl := controllers.NewTransactionController(db)
	securityCtrl := controllers.NewSecurityController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Brute-force guard on login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- CUSTOMER (no auth) --
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/by-category", menuCtrl.GetMenusByCategory)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)

	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.GET("/my-orders", orderCtrl.GetMyOrders)

	r.POST("/payments", paymentCtrl.CreatePayment)
	r.POST("/payments/validate-upi", paymentCtrl.ValidateUPI)
	r.POST("/payments/:payment_id/confirm", paymentCtrl.ConfirmPayment)

	r.POST("/feedback", feedbackCtrl.CreateFeedback)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/users", middlewares.RequireRoles(models.RoleAdmin), userCtrl.GetAllUsers)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", middlewares.RequireRoles(models.RoleAdmin, models.RoleStaff), tableCtrl.CreateTable)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.GET("/tables/:table_id/order", tableCtrl.GetOrderForTable)
	auth.PATCH("/tables/:table_id", middlewares.RequireRoles(models.RoleAdmin, models.RoleStaff), tableCtrl.UpdateTableStatus)
	auth.DELETE("/tables/:table_id", middlewares.RequireRoles(models.RoleAdmin), tableCtrl.DeleteTable)

	// MENUS (staff/admin)
	auth.POST("/menus", middlewares.RequireRoles(models.RoleAdmin, models.RoleStaff), menuCtrl.CreateMenu)
	auth.PATCH("/menus/:menu_id", middlewares.RequireRoles(models.RoleAdmin, models.RoleStaff), menuCtrl.UpdateMenu)
	auth.DELETE("/menus/:menu_id", middlewares.RequireRoles(models.RoleAdmin), menuCtrl.DeleteMenu)

	// ORDERS (kitchen advances pending->preparing->ready, delivery takes it
	// from there on delivery orders, staff handles the dine-in tail)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/status",
		middlewares.RequireRoles(models.RoleAdmin, models.RoleStaff, models.RoleKitchen, models.RoleDelivery),
		orderCtrl.UpdateOrderStatus)
	auth.DELETE("/orders/:order_id", middlewares.RequireRoles(models.RoleAdmin), orderCtrl.DeleteOrder)

	// PAYMENTS (staff/admin)
	auth.GET("/payments", middlewares.RequireRoles(models.RoleAdmin, models.RoleStaff), paymentCtrl.GetAllPayments)
	auth.GET("/payments/:payment_id", middlewares.RequireRoles(models.RoleAdmin, models.RoleStaff), paymentCtrl.GetPayment)

	// TRANSACTIONS (admin)
	auth.GET("/transactions", middlewares.RequireRoles(models.RoleAdmin), transactionCtrl.GetAllTransactions)
	auth.GET("/transactions/:transaction_id", middlewares.RequireRoles(models.RoleAdmin), transactionCtrl.GetTransaction)

	// INVENTORY (staff/admin)
	inventory := auth.Group("/inventory")
	inventory.Use(middlewares.RequireRoles(models.RoleAdmin, models.RoleStaff))
	{
		inventory.GET("", inventoryCtrl.GetAllItems)
		inventory.POST("", inventoryCtrl.CreateItem)
		inventory.GET("/history", inventoryCtrl.GetHistory)
		inventory.GET("/:item_id", inventoryCtrl.GetItemByID)
		inventory.PATCH("/:item_id", inventoryCtrl.UpdateItem)
		inventory.POST("/:item_id/adjust", inventoryCtrl.AdjustItem)
		inventory.DELETE("/:item_id", inventoryCtrl.DeleteItem)
	}

	// FEEDBACK (staff/admin)
	auth.GET("/feedback", middlewares.RequireRoles(models.RoleAdmin, models.RoleStaff), feedbackCtrl.GetAllFeedback)

	// SECURITY (admin)
	security := auth.Group("/security")
	security.Use(middlewares.RequireRoles(models.RoleAdmin))
	{
		security.GET("/access", securityCtrl.ListAccess)
		security.POST("/access", securityCtrl.AddAccess)
		security.DELETE("/access/:entry_id", securityCtrl.RemoveAccess)
		security.POST("/secret", securityCtrl.RotateSecret)
	}

	// DASHBOARD (admin)
	auth.GET("/dashboard/stats", middlewares.RequireRoles(models.RoleAdmin), adminCtrl.GetDashboardStats)
	auth.GET("/dashboard/popular", middlewares.RequireRoles(models.RoleAdmin), adminCtrl.GetPopularItems)
	auth.GET("/dashboard/analytics", middlewares.RequireRoles(models.RoleAdmin), adminCtrl.GetOrderAnalytics)

	// Live dashboards
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/:role", controllers.EventsHandler)
	}

	return r
}
