package routes

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/middlewares"
)

func BaseRoutes(app *fiber.App, db *gorm.DB, gatherer prometheus.Gatherer) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Schoolku report service 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if db == nil || database.Ping(ctx, db) != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})

	if gatherer != nil {
		app.Get("/metrics", middlewares.MetricsHandler(gatherer))
	}
}
