// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	ReportRoutes "schoolku_backend/internals/features/school/reports/route"
	appLogger "schoolku_backend/internals/logger"
	schoolkuMiddleware "schoolku_backend/internals/middlewares/auth_school"
	routeDetails "schoolku_backend/internals/route/details"
)

var startTime time.Time

type Options struct {
	Config   configs.Config
	Gatherer prometheus.Gatherer
	Reports  ReportRoutes.Deps
}

func SetupRoutes(app *fiber.App, db *gorm.DB, o Options) {
	startTime = time.Now()
	log := appLogger.Get("app")

	log.Info("Setting up BaseRoutes...")
	BaseRoutes(app, db, o.Gatherer)

	auth := schoolkuMiddleware.AuthJWT(schoolkuMiddleware.AuthJWTOpts{
		Secret:              o.Config.JWTSecret,
		AllowCookieFallback: true,
	})

	// ===================== PRIVATE (USER) =====================
	log.Info("Setting up PRIVATE (user) group...")
	user := app.Group("/api/u", auth)

	// ===================== ADMIN (per school) =====================
	log.Info("Setting up ADMIN group...")
	admin := app.Group("/api/a", auth)

	log.Info("Mounting School routes...")
	routeDetails.SchoolUserRoutes(user, o.Reports)
	routeDetails.SchoolAdminRoutes(admin, o.Reports)
}
