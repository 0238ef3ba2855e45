package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-ordering/config"
	"github.com/yeremiapane/restaurant-ordering/controllers"
	"github.com/yeremiapane/restaurant-ordering/kds"
	"github.com/yeremiapane/restaurant-ordering/middlewares"
	"github.com/yeremiapane/restaurant-ordering/services"
)

// SetupRouter wires services and controllers onto a gin engine. The hub
// receives every committed order event.
func SetupRouter(db *gorm.DB, cfg *config.Config, hub *kds.Hub) *gin.Engine {
	if hub == nil {
		hub = kds.NewHub()
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitPerSecond).RateLimit())

	secret := []byte(cfg.JWTSecret)

	pricing := services.PricingEngine{OptionPolicy: cfg.ModifierOptionPolicy}
	orderSvc := services.NewOrderService(db, pricing, cfg.StatusPolicy, hub)
	querySvc := services.NewOrderQueryService(db, cfg.SearchLimit)
	catalogSvc := services.NewCatalogService(db)
	menuSvc := services.NewMenuAdminService(db)
	authSvc := services.NewAuthService(db, secret, cfg.JWTTTL)

	orderCtrl := controllers.NewOrderController(orderSvc, querySvc, catalogSvc)
	menuCtrl := controllers.NewMenuController(catalogSvc, menuSvc)
	categoryCtrl := controllers.NewMenuCategoryController(menuSvc)
	adminCtrl := controllers.NewAdminController(authSvc, querySvc)
	feedCtrl := controllers.NewFeedController(hub, catalogSvc, querySvc, cfg.CORSOrigin)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/restaurants/:slug", menuCtrl.GetRestaurant)
	r.GET("/restaurants/:slug/menu", menuCtrl.GetMenu)

	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/search", orderCtrl.SearchOrders)
	r.GET("/ws/orders/:order_id", feedCtrl.OrderFeed)

	r.POST("/admin/login", middlewares.NewStrictRateLimiter(cfg.LoginAttemptsPerMin).RateLimit(), adminCtrl.Login)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware(secret))

	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)
	auth.PUT("/orders/:order_id", orderCtrl.UpdateOrder)

	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

	auth.GET("/categories", categoryCtrl.GetAllCategories)
	auth.POST("/categories", categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:category_id", categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:category_id", categoryCtrl.DeleteCategory)

	auth.POST("/items", menuCtrl.CreateItem)
	auth.PATCH("/items/:item_id", menuCtrl.UpdateItem)
	auth.DELETE("/items/:item_id", menuCtrl.DeleteItem)

	auth.GET("/ws", feedCtrl.KitchenFeed)

	return r
}
