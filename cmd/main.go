package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fraccio/internal/handler"
	"fraccio/internal/middleware"
	"fraccio/internal/service"
	"fraccio/internal/store"
	"fraccio/pkg/config"
	"fraccio/pkg/database"
	"fraccio/pkg/jwtutil"
	"fraccio/pkg/logger"
	"fraccio/pkg/stripeutil"
	"fraccio/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting fraccio service...", cfg.LogConfig()...)

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Optional tenant cache
	var cache *store.TenantCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = store.NewTenantCache(rdb, cfg.Redis.TTL)
		defer cache.Close()
		log.Info("Tenant cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// Stripe client
	stripeClient := stripeutil.New(&cfg.Stripe)
	if cfg.Stripe.SecretKey == "" {
		log.Warn("Stripe secret key not set, checkout is disabled")
	}

	// Repositories and services
	stores := store.New(database.GetDB(), cache)

	authService := service.NewAuthService(stores.Profiles, stores.Houses, stores.Invites, log)
	tenantService := service.NewTenantService(stores.Tenants, log)
	inviteService := service.NewInviteService(stores.Invites, log)
	houseService := service.NewHouseService(stores.Houses, log)
	announcementService := service.NewAnnouncementService(stores.Announcements, log)
	paymentService := service.NewPaymentService(stores.Payments, stores.Houses, stripeClient, cfg.Server.BaseURL, log)
	webhookService := service.NewWebhookService(stores.Payments, stores.Events, log)
	adminService := service.NewAdminService(stores.Tenants, stores.Profiles, stores.Houses, stores.Announcements, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	inviteHandler := handler.NewInviteHandler(inviteService)
	tenantHandler := handler.NewTenantHandler(houseService, announcementService)
	houseHandler := handler.NewHouseHandler(houseService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	webhookHandler := handler.NewWebhookHandler(stripeClient, webhookService)
	adminHandler := handler.NewAdminHandler(adminService, tenantService)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Stripe webhook - authenticated by signature, not by session
	e.POST("/api/stripe/webhook", webhookHandler.HandleStripe)

	// Authentication routes
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/signup", authHandler.Signup)

	// Public invite resolver for the signup page
	e.GET("/api/invites/:token", inviteHandler.Get)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.Auth(stores.Profiles))

	api.GET("/me", authHandler.Me)

	// Tenant-scoped operations - :tenant is the URL path slug
	tenantGroup := api.Group("/t/:tenant")
	tenantGroup.Use(middleware.TenantGuard(tenantService))

	tenantGroup.GET("", tenantHandler.Dashboard)
	tenantGroup.GET("/announcements", announcementHandler.List)
	tenantGroup.POST("/announcements", announcementHandler.Create)
	tenantGroup.GET("/house", houseHandler.MyHouse)
	tenantGroup.GET("/houses", houseHandler.List)
	tenantGroup.POST("/houses", houseHandler.Create)
	tenantGroup.GET("/users", adminHandler.TenantUsers)
	tenantGroup.POST("/invites", inviteHandler.Create)
	tenantGroup.DELETE("/invites/:token", inviteHandler.Remove)
	tenantGroup.GET("/payment-items", paymentHandler.ListItems)
	tenantGroup.POST("/payment-items", paymentHandler.CreateItem)
	tenantGroup.POST("/checkout", paymentHandler.Checkout)
	tenantGroup.GET("/payments", paymentHandler.History)
	tenantGroup.GET("/payments/session/:sessionID", paymentHandler.BySession)
	tenantGroup.GET("/admin/payments", paymentHandler.AdminPayments)

	// Superadmin area
	admin := api.Group("/admin")
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/tenants", adminHandler.Tenants)
	admin.POST("/tenants", adminHandler.CreateTenant)
	admin.GET("/users", adminHandler.Users)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
