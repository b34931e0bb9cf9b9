package middlewares

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	helper "schoolku_backend/internals/helpers"
	appLogger "schoolku_backend/internals/logger"
)

// RecoveryMiddleware menangkap panic dan mengembalikan error 500
func RecoveryMiddleware() fiber.Handler {
	log := appLogger.Get("app")
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			log.WithFields(map[string]any{
				"request_id": c.Locals(RequestIDKey),
				"method":     c.Method(),
				"path":       c.Path(),
			}).Errorf("panic: %v\n%s", e, debug.Stack())
		},
	})
}

// ErrorHandler: fallback fiber untuk error yang lolos dari handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return helper.FromError(c, err)
}
