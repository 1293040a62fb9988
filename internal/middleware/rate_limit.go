package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// PhoneRateLimiter throttles webhook traffic per caller phone number. USSD
// taps arrive at human speed; anything faster is a misbehaving aggregator
// or a replay storm.
type PhoneRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	r        rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewPhoneRateLimiter creates a limiter allowing r requests per second with
// the given burst per phone number.
func NewPhoneRateLimiter(r float64, burst int) *PhoneRateLimiter {
	rl := &PhoneRateLimiter{
		limiters: make(map[string]*limiterEntry),
		r:        rate.Limit(r),
		burst:    burst,
	}

	go rl.cleanup()
	return rl
}

// Handler returns the Fiber middleware.
func (rl *PhoneRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.FormValue("phoneNumber")
		if key == "" {
			key = c.IP()
		}

		if !rl.allow(key) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		}
		return c.Next()
	}
}

func (rl *PhoneRateLimiter) allow(key string) bool {
	rl.mu.Lock()
	entry, exists := rl.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.r, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	rl.mu.Unlock()

	return entry.limiter.Allow()
}

// cleanup removes entries not used in the last 10 minutes.
func (rl *PhoneRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, entry := range rl.limiters {
			if now.Sub(entry.lastSeen) > 10*time.Minute {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}
