package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/adamstosho/GroChain-sub004/internal/services"
	"github.com/adamstosho/GroChain-sub004/internal/storage"
)

// AdminHandler serves the operational endpoints behind admin auth.
type AdminHandler struct {
	store    storage.Store
	sessions *services.SessionManager
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(store storage.Store, sessions *services.SessionManager) *AdminHandler {
	return &AdminHandler{store: store, sessions: sessions}
}

// GetSessionStats returns active session counts broken down by menu.
func (h *AdminHandler) GetSessionStats(c *fiber.Ctx) error {
	stats, err := h.sessions.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load session stats",
		})
	}
	return c.JSON(stats)
}

// TriggerSweep runs the expiry sweep on demand.
func (h *AdminHandler) TriggerSweep(c *fiber.Ctx) error {
	swept, err := h.sessions.SweepExpiredSessions()
	if err != nil {
		log.Printf("❌ Manual sweep failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Sweep failed",
		})
	}
	return c.JSON(fiber.Map{"swept": swept})
}

// GetSessionLogs returns the most recent audit log rows.
func (h *AdminHandler) GetSessionLogs(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	logs, err := h.store.GetRecentSessionLogs(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load session logs",
		})
	}
	return c.JSON(fiber.Map{"logs": logs, "count": len(logs)})
}
