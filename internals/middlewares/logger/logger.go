package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	appLogger "schoolku_backend/internals/logger"
)

// LoggerMiddleware mencatat semua request ke logger "http".
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Format:     "[${time}] ${locals:requestid} ${ip} - ${method} ${path} - ${status} - ${latency}\n",
		Output:     appLogger.Get("http").Writer(),
	})
}
