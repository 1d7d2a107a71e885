package main

import (
	"context"
	"log"
	"time"

	"github.com/RahulBiswas1704/bowlit-app/internal/cache"
	"github.com/RahulBiswas1704/bowlit-app/internal/config"
	"github.com/RahulBiswas1704/bowlit-app/internal/database"
	"github.com/RahulBiswas1704/bowlit-app/internal/handlers"
	"github.com/RahulBiswas1704/bowlit-app/internal/migrations"
	"github.com/RahulBiswas1704/bowlit-app/internal/models"
	"github.com/RahulBiswas1704/bowlit-app/internal/realtime"
	"github.com/RahulBiswas1704/bowlit-app/internal/repository"
	"github.com/RahulBiswas1704/bowlit-app/internal/services"
	"github.com/RahulBiswas1704/bowlit-app/pkg/notify"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	cacheClient, err := cache.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize SMS gateway client
	smsClient := notify.NewClient(cfg.SMSGatewayURL, cfg.SMSUsername, cfg.SMSPassword, cfg.SMSSenderID)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	riderRepo := repository.NewRiderRepository(db)
	menuRepo := repository.NewMenuRepository(db)

	// Initialize realtime fan-out
	hub := realtime.NewHub()
	publisher := realtime.NewPublisher(cacheClient)

	// Initialize services
	userService := services.NewUserService(userRepo)
	menuService := services.NewMenuService(menuRepo)
	cartService := services.NewCartService(cacheClient, time.Duration(cfg.CartTTL)*time.Second)
	walletService := services.NewWalletService(walletRepo)
	notificationService := services.NewNotificationService(smsClient)
	orderService := services.NewOrderService(orderRepo, riderRepo, publisher, notificationService)
	riderService := services.NewRiderService(riderRepo, orderRepo)
	checkoutService := services.NewCheckoutService(cartService, walletService, userRepo, orderRepo, publisher, notificationService)
	planExpiryService := services.NewPlanExpiryService(userRepo, notificationService)

	// Bridge redis order events into the websocket hub
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.RunFromSubscription(ctx, cacheClient.SubscribeOrders(ctx))

	// Plan expiry sweeper
	go planExpiryService.Run(ctx, 6*time.Hour)

	// Initialize handlers
	sessionTTL := time.Duration(cfg.SessionTimeout) * time.Second
	authHandler := handlers.NewAuthHandler(userService, cacheClient, sessionTTL)
	customerHandler := handlers.NewCustomerHandler(menuService, cartService, walletService, checkoutService, orderService, userService)
	adminHandler := handlers.NewAdminHandler(orderService, menuService, riderService, checkoutService)
	riderHandler := handlers.NewRiderHandler(riderService, orderService, userService)

	// Setup routes
	router := gin.Default()

	// Realtime dashboard feed
	router.GET("/ws/orders", func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	})

	api := router.Group("/api")
	{
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// Public storefront
		api.GET("/menu", customerHandler.GetMenu)
		api.GET("/plans", customerHandler.GetPlans)
		api.GET("/plans/:slug", customerHandler.GetPlanQuote)
		api.GET("/weekly-menu", customerHandler.GetWeeklyMenu)

		// Customer endpoints
		customer := api.Group("", handlers.AuthRequired(cacheClient))
		{
			customer.GET("/cart", customerHandler.GetCart)
			customer.POST("/cart/items", customerHandler.AddCartItem)
			customer.PATCH("/cart/items/:item_id", customerHandler.UpdateCartItem)
			customer.DELETE("/cart/items/:item_id", customerHandler.RemoveCartItem)
			customer.DELETE("/cart", customerHandler.ClearCart)

			customer.GET("/wallet", customerHandler.GetWallet)
			customer.POST("/wallet/topup", customerHandler.TopUpWallet)

			customer.POST("/checkout", customerHandler.Checkout)
			customer.GET("/orders", customerHandler.GetMyOrders)

			customer.GET("/profile", customerHandler.GetProfile)
			customer.PUT("/profile", customerHandler.UpdateProfile)
		}

		// Admin endpoints
		admin := api.Group("/admin", handlers.AuthRequired(cacheClient, string(models.RoleAdmin)))
		{
			admin.GET("/orders", adminHandler.GetOrders)
			admin.POST("/orders/:id/cooking", adminHandler.StartCooking)
			admin.POST("/orders/:id/assign", adminHandler.AssignRider)
			admin.POST("/orders/:id/unassign", adminHandler.UnassignRider)
			admin.POST("/orders/:id/complete", adminHandler.ForceComplete)

			admin.GET("/menu", adminHandler.GetMenuItems)
			admin.POST("/menu", adminHandler.CreateMenuItem)
			admin.PUT("/menu/:id", adminHandler.UpdateMenuItem)
			admin.POST("/menu/:id/toggle", adminHandler.ToggleMenuItem)
			admin.DELETE("/menu/:id", adminHandler.DeleteMenuItem)

			admin.GET("/riders", adminHandler.GetRiders)
			admin.POST("/riders", adminHandler.CreateRider)

			admin.GET("/sagas", adminHandler.GetSagas)
			admin.GET("/sagas/:id", adminHandler.GetSaga)
		}

		// Rider endpoints
		rider := api.Group("/rider", handlers.AuthRequired(cacheClient, string(models.RoleRider)))
		{
			rider.GET("/orders", riderHandler.GetActiveOrders)
			rider.GET("/history", riderHandler.GetHistory)
			rider.GET("/stats", riderHandler.GetStats)
			rider.POST("/status", riderHandler.SetStatus)
			rider.POST("/orders/:id/delivered", riderHandler.MarkDelivered)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
