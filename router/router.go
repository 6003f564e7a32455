package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tabletap/ordering-app/controllers"
	"github.com/tabletap/ordering-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	customerCtrl := controllers.NewCustomerController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	taxCtrl := controllers.NewTaxConfigController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- DINER (no auth, tenant-scoped by path) --
	tenant := r.Group("/tenants/:tenant_id")
	{
		tenant.GET("/categories", categoryCtrl.GetAllCategories)
		tenant.GET("/menus", menuCtrl.GetAllMenus)
		tenant.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
		tenant.GET("/tables", tableCtrl.GetAllTables)

		tenant.GET("/tables/:table_id/scan", customerCtrl.ScanTable)
		tenant.POST("/sessions/takeaway", customerCtrl.StartTakeawaySession)

		// Cart engine surface
		tenant.POST("/carts/ensure", cartCtrl.EnsureCart)
		tenant.POST("/carts/:cart_id/items", cartCtrl.ApplyItems)
		tenant.GET("/carts/:cart_id/summary", cartCtrl.GetSummary)
		tenant.POST("/carts/:cart_id/checkout", cartCtrl.CheckoutCart)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)

	// TABLES (staff/admin)
	staffOnly := middlewares.RequireRole("staff")
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", staffOnly, tableCtrl.CreateTable)
	auth.PATCH("/tables/:table_id", staffOnly, tableCtrl.UpdateTableStatus)

	// SESSIONS (staff/admin)
	auth.PATCH("/customers/:customer_id/close", staffOnly, customerCtrl.CloseSession)

	// MENU CATEGORIES (staff/admin)
	auth.POST("/categories", staffOnly, categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:cat_id", staffOnly, categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", staffOnly, categoryCtrl.DeleteCategory)

	// MENUS (staff/admin)
	auth.POST("/menus", staffOnly, menuCtrl.CreateMenu)
	auth.PATCH("/menus/:menu_id", staffOnly, menuCtrl.UpdateMenu)
	auth.DELETE("/menus/:menu_id", staffOnly, menuCtrl.DeleteMenu)

	// ORDERS (staff/chef/admin)
	kitchen := middlewares.RequireRole("staff", "chef")
	auth.GET("/orders", kitchen, orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", kitchen, orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id", kitchen, orderCtrl.UpdateOrderStatus)

	// TAX CONFIG (admin)
	adminOnly := middlewares.RequireRole()
	auth.GET("/tax-config", taxCtrl.GetTaxConfig)
	auth.PUT("/tax-config", adminOnly, taxCtrl.UpsertTaxConfig)

	// NOTIFICATIONS (staff/admin)
	auth.GET("/notifications", staffOnly, notificationCtrl.GetAllNotifications)
	auth.DELETE("/notifications/:notif_id", staffOnly, notificationCtrl.DeleteNotification)

	// WebSocket endpoint for staff dashboards
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.AuthMiddleware())
	{
		wsGroup.GET("/events", controllers.EventsHandler)
	}

	return r
}
