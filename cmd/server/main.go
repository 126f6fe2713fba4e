package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/pyasti/backend/internal/application/catalog"
	identityapp "github.com/pyasti/backend/internal/application/identity"
	"github.com/pyasti/backend/internal/application/notification"
	orderingapp "github.com/pyasti/backend/internal/application/ordering"
	reportapp "github.com/pyasti/backend/internal/application/report"
	"github.com/pyasti/backend/internal/infrastructure/auth"
	"github.com/pyasti/backend/internal/infrastructure/cache"
	"github.com/pyasti/backend/internal/infrastructure/config"
	"github.com/pyasti/backend/internal/infrastructure/event"
	"github.com/pyasti/backend/internal/infrastructure/logger"
	"github.com/pyasti/backend/internal/infrastructure/mail"
	"github.com/pyasti/backend/internal/infrastructure/payment"
	"github.com/pyasti/backend/internal/infrastructure/persistence"
	"github.com/pyasti/backend/internal/interfaces/http/handler"
	"github.com/pyasti/backend/internal/interfaces/http/middleware"
	"github.com/pyasti/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Pyasti backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	statsReader := persistence.NewGormStatsReader(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Order view cache. Optional: the API keeps working without Redis.
	var viewCache orderingapp.OrderViewCache
	if redisCache, err := cache.NewRedisOrderViewCache(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, order view caching disabled", zap.Error(err))
	} else {
		viewCache = redisCache
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	// Outbound adapters
	transport := mail.NewSMTPTransport(cfg.Mail, log)
	notifier := notification.NewDispatcher(transport, log)
	gateway := payment.NewPayPalGateway(cfg.Payment, log)
	jwtService := auth.NewJWTService(cfg.JWT)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, log)
	productService := catalogapp.NewProductService(productRepo, log)
	productService.SetEventPublisher(eventBus)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, log)

	checkoutService := orderingapp.NewCheckoutService(productRepo, orderRepo, userRepo, notifier, cfg.App.AdminEmail, log)
	checkoutService.SetEventPublisher(eventBus)

	orderService := orderingapp.NewOrderService(orderRepo, userRepo, gateway, notifier, cfg.App.AdminEmail, log)
	orderService.SetEventPublisher(eventBus)
	if viewCache != nil {
		orderService.SetViewCache(viewCache)
	}

	summaryService := reportapp.NewSummaryService(statsReader, log)

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Setup(engine, jwtService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService),
		Product:  handler.NewProductHandler(productService),
		Category: handler.NewCategoryHandler(categoryService),
		Order:    handler.NewOrderHandler(checkoutService, orderService),
		Report:   handler.NewReportHandler(summaryService),
		System:   handler.NewSystemHandler(db, cfg.App.Name),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
