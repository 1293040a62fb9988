package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adamstosho/GroChain-sub004/database"
)

// Root describes the service.
func Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "GroChain USSD Gateway",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"health":  "/health",
			"webhook": "/webhook/ussd",
			"admin":   "/admin",
		},
	})
}

// Health reports gateway and database health for monitoring.
func Health(c *fiber.Ctx) error {
	status := "healthy"
	statusCode := fiber.StatusOK
	dbHealthy := true

	if database.DB != nil {
		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			status = "unhealthy"
			statusCode = fiber.StatusServiceUnavailable
			dbHealthy = false
		}
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status": status,
		"services": fiber.Map{
			"database": dbHealthy,
		},
	})
}
