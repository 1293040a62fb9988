package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/adamstosho/GroChain-sub004/internal/services"
)

// USSDHandler handles aggregator webhook requests.
type USSDHandler struct {
	ussdService *services.USSDService
}

// NewUSSDHandler creates a new USSD handler.
func NewUSSDHandler(ussdService *services.USSDService) *USSDHandler {
	return &USSDHandler{ussdService: ussdService}
}

// HandleCallback processes one inbound USSD request from the aggregator.
// The aggregator posts form-encoded fields in production; the test console
// posts JSON. BodyParser handles both via content type.
func (h *USSDHandler) HandleCallback(c *fiber.Ctx) error {
	var req services.Request
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing USSD callback: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid callback payload",
		})
	}

	if req.SessionID == "" || req.PhoneNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "sessionId and phoneNumber are required",
		})
	}

	log.Printf("📱 USSD request %s from %s: %q", req.SessionID, req.PhoneNumber, req.Text)

	resp := h.ussdService.ProcessRequest(req)

	// Optional push delivery: some aggregators poll the synchronous reply,
	// others want it posted to their callback. Fire and forget either way.
	if aggregator := services.GetAggregatorService(); aggregator != nil {
		go func() {
			_ = aggregator.PushResponse(resp)
		}()
	}

	return c.JSON(resp)
}
