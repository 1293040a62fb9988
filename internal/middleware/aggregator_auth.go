package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
)

// ValidateAggregatorSignature validates that a webhook request is from the
// telecom aggregator: HMAC-SHA256 over the raw body with the shared signing
// key, base64-encoded in the X-Aggregator-Signature header.
func ValidateAggregatorSignature() fiber.Handler {
	return func(c *fiber.Ctx) error {
		signature := c.Get("X-Aggregator-Signature")
		if signature == "" {
			return c.Status(401).JSON(fiber.Map{
				"error": "Missing aggregator signature",
			})
		}

		signingKey := os.Getenv("AGGREGATOR_SIGNING_KEY")
		if signingKey == "" {
			// Log error but don't expose to client
			fmt.Println("ERROR: AGGREGATOR_SIGNING_KEY not set")
			return c.Status(500).JSON(fiber.Map{
				"error": "Server configuration error",
			})
		}

		expected := calculateSignature(signingKey, c.Body())
		if !hmac.Equal([]byte(signature), []byte(expected)) {
			return c.Status(401).JSON(fiber.Map{
				"error": "Invalid signature",
			})
		}

		return c.Next()
	}
}

// calculateSignature computes the expected body signature.
func calculateSignature(signingKey string, body []byte) string {
	h := hmac.New(sha256.New, []byte(signingKey))
	h.Write(body)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
