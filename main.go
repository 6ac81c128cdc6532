package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ngocminh/bookstore-chatbot-api/config"
	"github.com/ngocminh/bookstore-chatbot-api/controllers"
	"github.com/ngocminh/bookstore-chatbot-api/middleware"
	"github.com/ngocminh/bookstore-chatbot-api/models"
	"github.com/ngocminh/bookstore-chatbot-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Bookstore Chatbot API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.Book{}, &models.Order{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Fill an empty catalog with the sample books
	if cfg.SeedOnStartup {
		if err := config.SeedBooks(db); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	// Wire services
	services.InitCatalogService(db)
	services.InitChatService(services.GetCatalogService())

	// Initialize Gin router
	router := setupRouter()

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter creates the Gin router with all API routes
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Chatbot conversation endpoint
		v1.POST("/chat", middleware.ConversationID(), controllers.HandleChatMessage)

		// Catalog endpoints
		v1.GET("/books", controllers.ListBooks)
		v1.GET("/books/search", controllers.SearchBooks)
		v1.GET("/books/:id", controllers.GetBook)

		// Order endpoints
		v1.POST("/orders", controllers.CreateOrder)
		v1.GET("/orders", controllers.ListOrders)
		v1.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bookstore Chatbot API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables through the migrator, which works for both
	// SQLite and PostgreSQL
	tables, err := db.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
