package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	billingapp "github.com/spicetrade/backend/internal/application/billing"
	catalogapp "github.com/spicetrade/backend/internal/application/catalog"
	identityapp "github.com/spicetrade/backend/internal/application/identity"
	partnerapp "github.com/spicetrade/backend/internal/application/partner"
	purchasingapp "github.com/spicetrade/backend/internal/application/purchasing"
	reportapp "github.com/spicetrade/backend/internal/application/report"
	storefrontapp "github.com/spicetrade/backend/internal/application/storefront"
	"github.com/spicetrade/backend/internal/infrastructure/auth"
	"github.com/spicetrade/backend/internal/infrastructure/cache"
	"github.com/spicetrade/backend/internal/infrastructure/config"
	"github.com/spicetrade/backend/internal/infrastructure/logger"
	"github.com/spicetrade/backend/internal/infrastructure/persistence"
	"github.com/spicetrade/backend/internal/interfaces/http/handler"
	"github.com/spicetrade/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting spice trade backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Session-scoped reminder dismissals live in Redis; fall back to the
	// in-process store when Redis is unreachable so the app still starts.
	var dismissals billingapp.DismissalStore
	redisStore, err := cache.NewRedisDismissalStore(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory dismissal store", zap.Error(err))
		dismissals = cache.NewInMemoryDismissalStore()
	} else {
		defer func() {
			_ = redisStore.Close()
		}()
		dismissals = redisStore
	}

	// Repositories
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	catererRepo := persistence.NewGormCatererRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	batchRepo := persistence.NewGormStockBatchRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	defaultGST := decimal.NewFromFloat(cfg.Purchasing.DefaultGSTPercentage)

	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	catererService := partnerapp.NewCatererService(catererRepo, log)
	catalogService := catalogapp.NewService(productRepo, categoryRepo, batchRepo, log)
	purchasingService := purchasingapp.NewService(purchaseRepo, supplierRepo, productRepo, batchRepo, defaultGST, log)
	billingService := billingapp.NewService(billRepo, paymentRepo, catererRepo, log)
	reminderService := billingapp.NewReminderService(billRepo, dismissals, log)
	storefrontService := storefrontapp.NewService(orderRepo, productRepo, batchRepo, log)
	reportService := reportapp.NewService(purchaseRepo, billRepo, productRepo, log)

	engine := router.New(cfg, log, jwtService, router.Handlers{
		System:     handler.NewSystemHandler(db),
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(userService),
		Supplier:   handler.NewSupplierHandler(supplierService),
		Caterer:    handler.NewCatererHandler(catererService),
		Catalog:    handler.NewCatalogHandler(catalogService),
		Purchase:   handler.NewPurchaseHandler(purchasingService),
		Bill:       handler.NewBillHandler(billingService, reminderService),
		Storefront: handler.NewStorefrontHandler(storefrontService),
		Report:     handler.NewReportHandler(reportService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
