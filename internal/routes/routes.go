package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/adamstosho/GroChain-sub004/internal/handlers"
	"github.com/adamstosho/GroChain-sub004/internal/middleware"
	"github.com/adamstosho/GroChain-sub004/internal/services"
	"github.com/adamstosho/GroChain-sub004/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, ussdService *services.USSDService, sessions *services.SessionManager) {

	ussdHandler := handlers.NewUSSDHandler(ussdService)
	adminHandler := handlers.NewAdminHandler(store, sessions)

	// Root and health endpoints
	app.Get("/", handlers.Root)
	app.Get("/health", handlers.Health)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	rateLimiter := middleware.NewPhoneRateLimiter(2, 5)

	// USSD webhook - ENVIRONMENT-AWARE VALIDATION
	if os.Getenv("ENVIRONMENT") == "development" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		// Development: skip signature validation for local tunnels
		webhooks.Post("/ussd", rateLimiter.Handler(), ussdHandler.HandleCallback)
		if os.Getenv("ENVIRONMENT") == "development" {
			println("⚠️  USSD webhook validation DISABLED for development")
		}
	} else {
		// Production: validate webhook signature
		webhooks.Post("/ussd", middleware.ValidateAggregatorSignature(), rateLimiter.Handler(), ussdHandler.HandleCallback)
	}

	// ========== TEST ROUTES (Development Only) ==========
	if os.Getenv("ENVIRONMENT") == "development" {
		app.Post("/test/ussd", ussdHandler.HandleCallback)
	}

	// ========== ADMIN ROUTES ==========
	admin := app.Group("/admin", middleware.RequireAdminJWT())
	admin.Get("/sessions/stats", adminHandler.GetSessionStats)
	admin.Post("/sessions/sweep", adminHandler.TriggerSweep)
	admin.Get("/sessions/logs", adminHandler.GetSessionLogs)
}
