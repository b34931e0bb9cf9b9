package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "schoolku_backend/internals/helpers"
)

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter(max int, window time.Duration) fiber.Handler {
	return newLimiter(max, window, "Terlalu banyak permintaan. Silakan coba lagi nanti.")
}

// Rate limiter untuk generate report (lebih ketat, query agregasinya berat)
func GenerateRateLimiter(max int, window time.Duration) fiber.Handler {
	if max > 10 {
		max = max / 10
	}
	return newLimiter(max, window, "Terlalu banyak permintaan generate report. Coba beberapa saat lagi.")
}

func newLimiter(max int, window time.Duration, msg string) fiber.Handler {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, msg)
		},
	})
}
