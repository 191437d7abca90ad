package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

// RateLimiter counts requests per client IP over a fixed window. It is built
// in main and handed to the router, so a multi-instance deployment can swap
// it for a distributed limiter without touching handlers. Windows reset
// lazily when the cache entry expires.
type RateLimiter struct {
	max    int
	window time.Duration
	hits   *cache.Cache
}

// NewRateLimiter creates a limiter allowing max requests per window
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:    max,
		window: window,
		hits:   cache.New(window, 2*window),
	}
}

// Handle is the fiber middleware enforcing the limit
func (rl *RateLimiter) Handle(c *fiber.Ctx) error {
	key := c.IP()

	if current, found := rl.hits.Get(key); found {
		if current.(int) >= rl.max {
			return ErrorResponse(c, fiber.StatusTooManyRequests, CodeRateLimited,
				"Too many requests. Please try again later.")
		}
		// Increment keeps the TTL of the original Set, so the window is
		// anchored at the client's first request.
		if _, err := rl.hits.IncrementInt(key, 1); err != nil {
			// Entry expired between Get and Increment; start a new window.
			rl.hits.Set(key, 1, rl.window)
		}
		return c.Next()
	}

	rl.hits.Set(key, 1, rl.window)
	return c.Next()
}
