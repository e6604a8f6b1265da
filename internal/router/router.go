package router

import (
	"time"

	"campuskart/internal/config"
	"campuskart/internal/handler"
	"campuskart/internal/middleware"
	"campuskart/internal/notify"
	"campuskart/internal/repository"
	"campuskart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	notifier := notify.New(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reportRepo := repository.NewReportRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	settingsSvc := service.NewSettingsService(settingRepo, notifier)
	productSvc := service.NewProductService(productRepo, auditRepo, notifier)
	inventorySvc := service.NewInventoryService(inventoryRepo, productRepo, notifier)
	orderSvc := service.NewOrderService(orderRepo, productRepo, inventorySvc, settingsSvc, auditRepo, notifier, cfg.Location())
	reportSvc := service.NewReportService(reportRepo, cfg.Location())
	requestSvc := service.NewRequestService(requestRepo, notifier)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	storefrontH := handler.NewStorefrontHandler(productSvc, orderSvc, settingsSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	productsH := handler.NewProductsHandler(productSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	dashboardH := handler.NewDashboardHandler(reportSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	requestsH := handler.NewRequestsHandler(requestSvc)
	auditH := handler.NewAuditHandler(auditRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public storefront: catalog, checkout, order tracking, service requests
	store := r.Group("/v1/store")
	{
		store.GET("/catalog", storefrontH.Catalog)
		store.GET("/checkout-info", storefrontH.CheckoutInfo)
		store.POST("/orders", storefrontH.PlaceOrder)
		store.GET("/orders/:code", storefrontH.TrackOrder)
		store.POST("/requests", requestsH.Create)
	}

	// Admin board — staff and admin
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	admin := r.Group("/v1/admin", jwtMW, middleware.RequireRole("admin", "staff"))
	{
		admin.GET("/orders", ordersH.List)
		admin.GET("/orders/:id", ordersH.Get)
		admin.PATCH("/orders/:id/status", ordersH.UpdateStatus)
		admin.PATCH("/orders/:id/payment", ordersH.VerifyPayment)
		admin.POST("/orders/:id/cancel", ordersH.Cancel)
		admin.DELETE("/orders/:id", middleware.RequireRole("admin"), ordersH.Delete)

		admin.GET("/products", productsH.List)
		admin.GET("/products/:id", productsH.Get)
		admin.POST("/products", productsH.Create)
		admin.PUT("/products/:id", productsH.Update)
		admin.DELETE("/products/:id", productsH.Deactivate)
		admin.PATCH("/products/:id/reactivate", productsH.Reactivate)
		admin.PATCH("/products/:id/stock", productsH.AdjustStock)

		admin.POST("/inventory/batches", inventoryH.ReceiveBatch)
		admin.GET("/inventory/batches", inventoryH.ListBatches)
		admin.GET("/inventory/batches/:id", inventoryH.GetBatch)

		admin.GET("/reports/daily", dashboardH.DailyProfit)
		admin.GET("/reports/top-products", dashboardH.TopProducts)

		admin.GET("/requests", requestsH.List)
		admin.GET("/requests/:id", requestsH.Get)
		admin.PATCH("/requests/:id/status", requestsH.UpdateStatus)

		admin.GET("/settings/:group", settingsH.GetGroup)
		admin.PUT("/settings/:group", settingsH.UpdateGroup)

		admin.GET("/audit", middleware.RequireRole("admin"), auditH.ListByEntity)

		users := admin.Group("/users", middleware.RequireRole("admin"))
		{
			users.GET("", authH.ListUsers)
			users.POST("", authH.CreateUser)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
		}
	}

	return r
}
