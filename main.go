package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boutique-service/config"
	"boutique-service/consumers"
	"boutique-service/controllers"
	"boutique-service/database"
	"boutique-service/middlewares"
	"boutique-service/rabbitmq"
)

func main() {
	cfg := config.LoadConfig()

	if err := database.InitDB(cfg.MongoURI, cfg.MongoDatabase); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer database.CloseDB()

	rmq, err := rabbitmq.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("RabbitMQ initialization failed: %v", err)
	}
	defer rmq.Close()

	if err := rmq.SetupQueues(); err != nil {
		log.Fatalf("Failed to setup RabbitMQ queues: %v", err)
	}

	go consumers.StartEventConsumer(rmq.Channel, cfg)

	controllers.SetRabbitMQ(rmq)

	r := gin.Default()
	r.Use(middlewares.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Storefront-facing routes: checkout, contact form, catalog browsing.
	public := r.Group("/api")
	{
		public.POST("/orders", controllers.CreateOrder)
		public.POST("/contacts", controllers.CreateContact)
		public.GET("/products", controllers.GetProducts)
		public.GET("/products/:id", controllers.GetProduct)
		public.GET("/categories", controllers.GetCategories)
		public.GET("/brands", controllers.GetBrands)
		public.GET("/advertisements/active", controllers.GetActiveAdvertisements)
	}

	// Admin dashboard routes.
	admin := r.Group("/api")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.GET("/orders", controllers.GetOrders)
		admin.GET("/orders/:id", controllers.GetOrderDetails)
		admin.GET("/orders/user/:id", controllers.GetUserOrders)
		admin.PUT("/orders/:id", controllers.UpdateOrder)
		admin.DELETE("/orders/:id", controllers.DeleteOrder)

		admin.GET("/sales", controllers.GetSales)
		admin.POST("/sales", controllers.CreateSale)
		admin.PUT("/sales/:id", controllers.UpdateSale)
		admin.DELETE("/sales/:id", controllers.DeleteSale)

		admin.GET("/notifications", controllers.GetNotifications)
		admin.PUT("/notifications", controllers.MarkAllNotificationsRead)
		admin.PUT("/notifications/:id", controllers.MarkNotificationRead)

		admin.GET("/dashboard/stats", controllers.GetDashboardStats)

		admin.POST("/products", controllers.CreateProduct)
		admin.PUT("/products/:id", controllers.UpdateProduct)
		admin.DELETE("/products/:id", controllers.DeleteProduct)

		admin.POST("/categories", controllers.CreateCategory)
		admin.PUT("/categories/:id", controllers.UpdateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)

		admin.POST("/brands", controllers.CreateBrand)
		admin.PUT("/brands/:id", controllers.UpdateBrand)
		admin.DELETE("/brands/:id", controllers.DeleteBrand)

		admin.GET("/users", controllers.GetUsers)
		admin.GET("/users/:id", controllers.GetUser)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.GET("/contacts", controllers.GetContacts)
		admin.DELETE("/contacts/:id", controllers.DeleteContact)

		admin.GET("/advertisements", controllers.GetAdvertisements)
		admin.POST("/advertisements", controllers.CreateAdvertisement)
		admin.PUT("/advertisements/:id", controllers.UpdateAdvertisement)
		admin.DELETE("/advertisements/:id", controllers.DeleteAdvertisement)
	}

	addr := ":" + cfg.Port
	log.Printf("Boutique service starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
