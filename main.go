package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/adamstosho/GroChain-sub004/database"
	"github.com/adamstosho/GroChain-sub004/internal/jobs"
	"github.com/adamstosho/GroChain-sub004/internal/models"
	"github.com/adamstosho/GroChain-sub004/internal/routes"
	"github.com/adamstosho/GroChain-sub004/internal/services"
	"github.com/adamstosho/GroChain-sub004/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		err := godotenv.Load(".env")
		if err != nil {
			err = godotenv.Load("environments/.env.development")
			if err != nil {
				log.Println("⚠️  No .env file found - checking environment variables")
			}
		}
	}

	// Initialize storage
	var store storage.Store

	// Check if we should use memory store (for testing)
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		// Connect to database
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		// Run migrations
		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.Session{},
			&models.SessionLog{},
			&models.HarvestRecord{},
			&models.Product{},
			&models.CreditCheck{},
			&models.SupportTicket{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		dbStore := storage.NewDatabaseStore(database.DB)
		if err := dbStore.SeedProducts(); err != nil {
			log.Printf("⚠️  Failed to seed product catalog: %v", err)
		}
		store = dbStore
		log.Println("✅ Using PostgreSQL database storage")
	}

	// Optional Redis session cache (cache-aside, database stays the source
	// of truth)
	sessionManager := services.NewSessionManager(store)
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		store = storage.NewCachedStore(store, client, sessionManager.TTL())
		sessionManager = services.NewSessionManager(store)
		log.Printf("✅ Redis session cache enabled (%s)", redisAddr)
	}

	// Set global instances
	storage.SetStore(store)
	services.SetSessionManager(sessionManager)

	// Initialize aggregator push delivery (optional)
	aggregatorService, err := services.NewAggregatorService()
	if err != nil {
		log.Println("⚠️  Aggregator push delivery not configured - responding synchronously only")
	} else {
		services.SetAggregatorService(aggregatorService)
		log.Println("✅ Aggregator push delivery configured")
	}

	// Initialize verification and USSD services
	verificationService := services.NewVerificationService()
	services.SetVerificationService(verificationService)
	ussdService := services.NewUSSDService(store, sessionManager, verificationService)

	// Start the session expiry sweeper
	sweeperJob := jobs.NewSweeperJob(sessionManager)
	sweeperJob.Start()

	log.Println("✅ All services initialized and scheduled jobs started")

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "GroChain USSD Gateway v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Setup routes
	routes.SetupRoutes(app, store, ussdService, sessionManager)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping session sweeper...")
		sweeperJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 GroChain USSD Gateway starting on port %s", port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Printf("🌍 Environment: %s", getEnvironment())
	log.Printf("⏳ Session TTL: %v", sessionManager.TTL())
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func getEnvironment() string {
	if os.Getenv("INSTANCE_CONNECTION_NAME") != "" {
		return "Production (Cloud Run)"
	}
	return "Development (Local)"
}

func getStorageType() string {
	storageType := "PostgreSQL Database"
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		storageType = "In-Memory (Testing)"
	}
	if os.Getenv("REDIS_ADDR") != "" {
		storageType += " + Redis cache"
	}
	return storageType
}
