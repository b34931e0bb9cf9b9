// middlewares/cors_middleware.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware membuat middleware CORS dari daftar origin (CORS_ORIGINS).
func CorsMiddleware(origins []string) fiber.Handler {
	allow := strings.Join(origins, ", ")
	if allow == "" {
		allow = "http://localhost:5173"
	}
	return cors.New(cors.Config{
		AllowOrigins:     allow,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: allow != "*",
	})
}
