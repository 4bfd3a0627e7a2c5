package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
	"github.com/spicetrade/backend/internal/infrastructure/auth"
	"github.com/spicetrade/backend/internal/infrastructure/config"
	"github.com/spicetrade/backend/internal/infrastructure/logger"
	"github.com/spicetrade/backend/internal/interfaces/http/handler"
	"github.com/spicetrade/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	System     *handler.SystemHandler
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Supplier   *handler.SupplierHandler
	Caterer    *handler.CatererHandler
	Catalog    *handler.CatalogHandler
	Purchase   *handler.PurchaseHandler
	Bill       *handler.BillHandler
	Storefront *handler.StorefrontHandler
	Report     *handler.ReportHandler
}

// RegisterValidators installs custom binding validators.
// The unitcode tag accepts any unit from the closed trading set.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("unitcode", func(fl validator.FieldLevel) bool {
			_, err := valueobject.ParseUnitCode(fl.Field().String())
			return err == nil
		})
	}
}

// New builds the gin engine with middleware and all routes mounted
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	RegisterValidators()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(cfg.HTTP),
		middleware.Secure(),
	)

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	// Public endpoints: login and the customer-facing storefront
	api.POST("/auth/login", h.Auth.Login)

	storefront := api.Group("/storefront")
	{
		storefront.GET("/products", h.Storefront.ListShowcase)
		storefront.POST("/orders", h.Storefront.PlaceOrder)
		storefront.GET("/orders/:id", h.Storefront.GetOrder)
	}

	// Authenticated back-office endpoints
	authed := api.Group("", middleware.JWTAuth(jwtService, log))
	{
		authed.GET("/auth/me", h.Auth.Me)
		authed.POST("/auth/change-password", h.Auth.ChangePassword)

		suppliers := authed.Group("/suppliers")
		{
			suppliers.POST("", h.Supplier.Create)
			suppliers.GET("", h.Supplier.List)
			suppliers.GET("/:id", h.Supplier.GetByID)
			suppliers.PUT("/:id", h.Supplier.Update)
			suppliers.PUT("/:id/payment-terms", h.Supplier.SetPaymentTerms)
			suppliers.POST("/:id/activate", h.Supplier.Activate)
			suppliers.POST("/:id/deactivate", h.Supplier.Deactivate)
			suppliers.POST("/:id/block", h.Supplier.Block)
			suppliers.DELETE("/:id", h.Supplier.Delete)
		}

		caterers := authed.Group("/caterers")
		{
			caterers.POST("", h.Caterer.Create)
			caterers.GET("", h.Caterer.List)
			caterers.GET("/:id", h.Caterer.GetByID)
			caterers.PUT("/:id", h.Caterer.Update)
			caterers.POST("/:id/activate", h.Caterer.Activate)
			caterers.POST("/:id/deactivate", h.Caterer.Deactivate)
			caterers.POST("/:id/suspend", h.Caterer.Suspend)
			caterers.DELETE("/:id", h.Caterer.Delete)
		}

		categories := authed.Group("/categories")
		{
			categories.POST("", h.Catalog.CreateCategory)
			categories.GET("", h.Catalog.ListCategories)
		}

		products := authed.Group("/products")
		{
			products.POST("", h.Catalog.CreateProduct)
			products.GET("", h.Catalog.ListProducts)
			products.GET("/low-stock", h.Catalog.ListLowStock)
			products.GET("/:id", h.Catalog.GetProduct)
			products.PUT("/:id", h.Catalog.UpdateProduct)
			products.POST("/:id/showcase", h.Catalog.Showcase)
			products.POST("/:id/unshowcase", h.Catalog.Unshowcase)
			products.GET("/:id/batches", h.Catalog.ListBatches)
		}

		purchases := authed.Group("/purchases")
		{
			purchases.POST("", h.Purchase.Create)
			purchases.GET("", h.Purchase.List)
			purchases.POST("/preview-line", h.Purchase.PreviewLine)
			purchases.GET("/:id", h.Purchase.GetByID)
			purchases.POST("/:id/items", h.Purchase.AddItem)
			purchases.PUT("/:id/items/:itemId", h.Purchase.UpdateItem)
			purchases.PUT("/:id/items/:itemId/unit", h.Purchase.ChangeItemUnit)
			purchases.DELETE("/:id/items/:itemId", h.Purchase.RemoveItem)
			purchases.POST("/:id/submit", h.Purchase.Submit)
			purchases.POST("/:id/receive", h.Purchase.Receive)
			purchases.POST("/:id/cancel", h.Purchase.Cancel)
			purchases.DELETE("/:id", h.Purchase.Delete)
		}

		bills := authed.Group("/bills")
		{
			bills.POST("", h.Bill.Create)
			bills.GET("", h.Bill.List)
			bills.GET("/outstanding", h.Bill.Outstanding)
			bills.GET("/reminders", h.Bill.Reminders)
			bills.GET("/:id", h.Bill.GetByID)
			bills.POST("/:id/payments", h.Bill.RecordPayment)
			bills.GET("/:id/payments", h.Bill.ListPayments)
			bills.POST("/:id/cancel", h.Bill.Cancel)
			bills.PUT("/:id/due-date", h.Bill.ExtendDueDate)
			bills.POST("/:id/dismiss-reminder", h.Bill.DismissReminder)
		}

		orders := authed.Group("/orders")
		{
			orders.GET("", h.Storefront.ListOrders)
			orders.GET("/:id", h.Storefront.GetOrder)
			orders.POST("/:id/confirm", h.Storefront.ConfirmOrder)
			orders.POST("/:id/fulfill", h.Storefront.FulfillOrder)
			orders.POST("/:id/cancel", h.Storefront.CancelOrder)
		}

		// Owner-only: user management and the dashboard
		owner := authed.Group("", middleware.OwnerOnly())
		{
			users := owner.Group("/users")
			{
				users.POST("", h.User.Create)
				users.GET("", h.User.List)
				users.PUT("/:id", h.User.Update)
				users.POST("/:id/reset-password", h.User.ResetPassword)
				users.POST("/:id/unlock", h.User.Unlock)
				users.POST("/:id/activate", h.User.Activate)
				users.POST("/:id/deactivate", h.User.Deactivate)
			}

			owner.GET("/reports/dashboard", h.Report.Dashboard)
		}
	}

	return engine
}
