package router

import (
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/config"
	"github.com/srikumaragency/b-admin-prod-03/internal/handler"
	"github.com/srikumaragency/b-admin-prod-03/internal/infra"
	"github.com/srikumaragency/b-admin-prod-03/internal/metrics"
	"github.com/srikumaragency/b-admin-prod-03/internal/middleware"
	"github.com/srikumaragency/b-admin-prod-03/internal/repository"
	"github.com/srikumaragency/b-admin-prod-03/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil; lookups then always go to Postgres.
func New(cfg *config.Config, db *gorm.DB, rdb redis.UniversalClient, reg *metrics.Registry) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics(reg))
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	cache := infra.NewCache(rdb, cfg.CacheTTL())

	// ── Repositories ─────────────────────────────────────────────────────────
	adminRepo := repository.NewAdminRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(adminRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo, productRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, cache)
	storeSvc := service.NewStoreService(storeRepo, cache)
	orderSvc := service.NewOrderService(orderRepo, productRepo, storeSvc)
	invoiceSvc := service.NewInvoiceService(orderRepo, storeSvc, cfg.Letterhead(), cfg.InvoiceFormat(), reg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	storeH := handler.NewStoreHandler(storeSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, cache))
	r.GET("/metrics", gin.WrapH(reg.Handler()))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Storefront: no auth; order routes identify the customer by phone.
	pub := r.Group("/v1")
	{
		pub.GET("/categories", categoriesH.List)
		pub.GET("/products/code/:code", productsH.GetByCode)
		pub.GET("/store/settings", storeH.GetSettings)
		pub.GET("/store/packaging-cost", storeH.PackagingCost)
		pub.GET("/locations/states", storeH.States)
		pub.GET("/locations/districts/:state", storeH.Districts)

		pub.POST("/orders", ordersH.Create)
		pub.GET("/orders/:orderId", ordersH.Track)
		pub.POST("/orders/:orderId/payment-screenshot", ordersH.UploadScreenshot)
		pub.GET("/orders/:orderId/invoice", invoicesH.CustomerDownload)
		pub.GET("/customers/:phone/orders", ordersH.ListByPhone)
	}

	admin := r.Group("/v1/admin", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("admin"))
	{
		admin.POST("/categories", categoriesH.Create)
		admin.PUT("/categories/:id", categoriesH.Update)
		admin.DELETE("/categories/:id", categoriesH.Delete)
		admin.POST("/categories/:id/subcategories", categoriesH.CreateSubcategory)
		admin.GET("/categories/:id/subcategories", categoriesH.ListSubcategories)
		admin.PUT("/subcategories/:id", categoriesH.UpdateSubcategory)
		admin.DELETE("/subcategories/:id", categoriesH.DeleteSubcategory)

		prods := admin.Group("/products")
		{
			prods.GET("", productsH.List)
			prods.POST("", productsH.Create)
			prods.GET("/check-code", productsH.CheckCode)
			prods.POST("/pricing-preview", productsH.PreviewPricing)
			prods.GET("/:id", productsH.Get)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
			prods.PATCH("/:id/restore", productsH.Restore)
			prods.PATCH("/:id/featured", productsH.ToggleFeatured)
			prods.PATCH("/:id/bestseller", productsH.ToggleBestSeller)
			prods.PATCH("/:id/active", productsH.ToggleActive)
		}

		admin.PUT("/store/settings", storeH.UpdateSettings)
		admin.GET("/store/packaging", storeH.GetPackaging)
		admin.PUT("/store/packaging", storeH.UpdatePackaging)

		orders := admin.Group("/orders")
		{
			orders.GET("", ordersH.List)
			orders.GET("/:orderId", ordersH.Get)
			orders.PATCH("/:orderId/payment-status", ordersH.UpdatePaymentStatus)
			orders.PATCH("/:orderId/order-status", ordersH.UpdateOrderStatus)
			orders.PATCH("/:orderId/tracking", ordersH.UpdateTracking)
			orders.PATCH("/:orderId/notes", ordersH.UpdateNotes)
			orders.PATCH("/:orderId/payment-screenshot", ordersH.AttachScreenshot)
			orders.POST("/:orderId/invoice", invoicesH.Generate)
			orders.GET("/:orderId/invoice", invoicesH.Download)
			orders.GET("/:orderId/invoice/debug", invoicesH.Debug)
		}

		admin.GET("/invoices", invoicesH.List)
		admin.POST("/invoices/bulk-generate", invoicesH.GenerateAll)
	}

	// Swagger UI outside production only
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
