package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"relove/internal/config"
	"relove/internal/database"
	"relove/internal/gateway/midtrans"
	"relove/internal/handler"
	"relove/internal/middleware"
	"relove/internal/monitor"
	"relove/internal/redis"
	"relove/internal/repository"
	"relove/internal/service/auth"
	"relove/internal/service/cart"
	"relove/internal/service/catalog"
	"relove/internal/service/checkout"
	"relove/internal/service/notification"
	"relove/internal/service/order"
	"relove/internal/service/reconcile"
	"relove/internal/utils"
	"relove/pkg/bloom"
	"relove/pkg/log"
)

func main() {
	cfg := config.MustLoadConfig("")
	config.GlobalConfig = cfg

	log.Init(log.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		Filename:   cfg.Log.Filename,
		MaxSize:    cfg.Log.MaxSize,
		MaxAge:     cfg.Log.MaxAge,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   cfg.Log.Compress,
	})

	if err := database.Init(cfg); err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close()

	if err := database.AutoMigrate(database.GetDB()); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	if err := redis.Init(cfg); err != nil {
		log.WithError(err).Fatal("Failed to initialize redis")
	}
	defer redis.Close()

	tracer, err := monitor.NewTracer(&cfg.Tracing)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize tracer")
	}
	defer tracer.Shutdown(context.Background())

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	db := database.GetDB()
	redisClient := redis.GetClient()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	shippingRepo := repository.NewShippingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	checkoutRepo := repository.NewCheckoutRepository(db)

	jwtManager := utils.NewJWTManager(
		cfg.Security.JWT.Secret,
		cfg.Security.JWT.Issuer,
		cfg.Security.JWT.Expire,
		cfg.Security.JWT.RefreshTTL,
	)

	gateway := midtrans.NewClient(&cfg.Midtrans)
	orderFilter := bloom.NewOrderFilter(1000000, 0.01)

	// Services
	authService := auth.NewAuthService(userRepo, jwtManager, redisClient, cfg.Security.JWT.Expire)
	catalogService := catalog.NewCatalogService(productRepo, redisClient, cfg.Redis.ProductTTL)
	cartService := cart.NewCartService(cartRepo, productRepo)
	checkoutService := checkout.NewCheckoutService(userRepo, cartRepo, checkoutRepo, gateway, orderFilter)
	reconcileService := reconcile.NewReconcileService(paymentRepo, transactionRepo, productRepo, notificationRepo, orderFilter)
	notificationService := notification.NewNotificationService(notificationRepo)
	orderService := order.NewOrderService(transactionRepo, shippingRepo, notificationRepo)

	if err := reconcileService.WarmOrderFilter(context.Background()); err != nil {
		log.WithError(err).Warn("Failed to warm order filter")
	}

	router := setupRouter(
		cfg,
		authService,
		catalogService,
		cartService,
		checkoutService,
		reconcileService,
		notificationService,
		orderService,
	)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}

func setupRouter(
	cfg *config.Config,
	authService auth.AuthService,
	catalogService catalog.CatalogService,
	cartService cart.CartService,
	checkoutService checkout.CheckoutService,
	reconcileService reconcile.ReconcileService,
	notificationService notification.NotificationService,
	orderService order.OrderService,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	if cfg.Metrics.Enabled {
		router.Use(middleware.Metrics())
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	router.GET("/health", healthCheck)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	webhookHandler := handler.NewWebhookHandler(reconcileService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	orderHandler := handler.NewOrderHandler(orderService)

	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		// Public catalog
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/:id", productHandler.GetProduct)

		// Gateway callbacks are authenticated by order id lookup, not JWT
		api.POST("/payments/notification", webhookHandler.HandleNotification)

		protected := api.Group("")
		protected.Use(middleware.Auth(authService.ValidateToken))
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/me", authHandler.Me)

			protected.POST("/products", productHandler.CreateProduct)
			protected.PUT("/products/:id", productHandler.UpdateProduct)
			protected.DELETE("/products/:id", productHandler.DeleteProduct)

			protected.GET("/cart", cartHandler.GetCart)
			protected.POST("/cart/items", cartHandler.AddItem)
			protected.PUT("/cart/items/:id", cartHandler.UpdateItem)
			protected.DELETE("/cart/items/:id", cartHandler.RemoveItem)

			protected.POST("/checkout", checkoutHandler.Checkout)

			protected.GET("/orders", orderHandler.ListPurchases)
			protected.GET("/orders/:id", orderHandler.GetOrder)
			protected.GET("/sales", orderHandler.ListSales)
			protected.PUT("/sales/:id/status", orderHandler.UpdateOrderStatus)

			protected.GET("/notifications", notificationHandler.List)
			protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			protected.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
		}
	}

	return router
}

func healthCheck(c *gin.Context) {
	status := gin.H{
		"status":   "ok",
		"database": database.Health() == nil,
	}
	c.JSON(http.StatusOK, status)
}
