package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/infrastructure/auth"
	"github.com/pyasti/backend/internal/interfaces/http/handler"
	"github.com/pyasti/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Order    *handler.OrderHandler
	Report   *handler.ReportHandler
	System   *handler.SystemHandler
}

// Setup mounts all API routes on the engine under /api/v1
func Setup(engine *gin.Engine, jwtService *auth.JWTService, h Handlers) {
	authenticated := middleware.Authenticate(jwtService)
	sellerOnly := middleware.RequireRoles(identity.RoleSeller, identity.RoleAdmin)
	adminOnly := middleware.RequireRoles(identity.RoleAdmin)

	api := engine.Group("/api/v1")

	system := api.Group("/system")
	{
		system.GET("/health", h.System.Health)
		system.GET("/info", h.System.Info)
	}

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
		authRoutes.POST("/refresh", h.Auth.Refresh)
	}

	users := api.Group("/users", authenticated, adminOnly)
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	mainCategories := api.Group("/categories/main")
	{
		mainCategories.GET("", h.Category.ListMain)
		mainCategories.GET("/:id", h.Category.GetMain)
		mainCategories.GET("/:id/subcategories", h.Category.ListSubOfMain)

		mainCategories.POST("", authenticated, adminOnly, h.Category.CreateMain)
		mainCategories.PUT("/:id", authenticated, adminOnly, h.Category.UpdateMain)
		mainCategories.DELETE("/:id", authenticated, adminOnly, h.Category.DeleteMain)
	}

	subCategories := api.Group("/categories/sub")
	{
		subCategories.GET("", h.Category.ListSub)
		subCategories.GET("/:id", h.Category.GetSub)

		subCategories.POST("", authenticated, adminOnly, h.Category.CreateSub)
		subCategories.PUT("/:id", authenticated, adminOnly, h.Category.UpdateSub)
		subCategories.DELETE("/:id", authenticated, adminOnly, h.Category.DeleteSub)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.GET("/slug/:slug", h.Product.GetBySlug)

		products.GET("/mine", authenticated, sellerOnly, h.Product.ListMine)
		products.POST("", authenticated, sellerOnly, h.Product.Create)
		products.PUT("/:id", authenticated, sellerOnly, h.Product.Update)
		products.PATCH("/:id/published", authenticated, sellerOnly, h.Product.SetPublished)
		products.DELETE("/:id", authenticated, sellerOnly, h.Product.Delete)
	}

	orders := api.Group("/orders", authenticated)
	{
		orders.POST("", h.Order.Checkout)
		orders.GET("/mine", h.Order.ListMine)
		orders.GET("/seller", sellerOnly, h.Order.ListForSeller)
		orders.GET("", adminOnly, h.Order.ListAll)
		orders.GET("/:id", h.Order.Get)

		orders.POST("/:id/payment", h.Order.CreatePayment)
		orders.POST("/:id/payment/approve", h.Order.ApprovePayment)
		orders.POST("/:id/pay", adminOnly, h.Order.MarkPaid)
		orders.POST("/:id/deliver", sellerOnly, h.Order.MarkDelivered)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.DELETE("/:id", adminOnly, h.Order.Delete)
	}

	reports := api.Group("/reports", authenticated)
	{
		reports.GET("/admin/summary", adminOnly, h.Report.AdminSummary)
		reports.GET("/seller/summary", h.Report.SellerSummary)
	}
}
