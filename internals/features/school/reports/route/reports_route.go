// internals/features/school/reports/route/reports_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportCtl "schoolku_backend/internals/features/school/reports/controller"
	"schoolku_backend/internals/features/school/reports/repository"
	"schoolku_backend/internals/features/school/reports/service"
)

// Deps: service yang dipakai bersama oleh route admin & user.
type Deps struct {
	Reports   *service.ReportService
	Templates *service.TemplateService

	// GenerateLimiter opsional, dipasang hanya di POST /generate.
	GenerateLimiter fiber.Handler
}

// NewDeps merangkai repository GORM → service.
func NewDeps(db *gorm.DB, opts service.Options) Deps {
	templates := repository.NewTemplateRepo(db)
	return Deps{
		Reports:   service.NewReportService(repository.NewDataPort(db), templates, repository.NewReportRepo(db), opts),
		Templates: service.NewTemplateService(templates),
	}
}

// Dipanggil dari SchoolAdminRoutes(r, deps); r sudah diproteksi AuthJWT.
func ReportsAdminRoutes(r fiber.Router, d Deps) {
	tplCtl := reportCtl.NewTemplateController(d.Templates)
	repCtl := reportCtl.NewReportController(d.Reports)

	reports := r.Group("/:school_id/reports")

	// templates didaftarkan sebelum /:id
	tpl := reports.Group("/templates")
	tpl.Post("/", tplCtl.Create)
	tpl.Get("/", tplCtl.List)
	tpl.Get("/:id", tplCtl.GetByID)
	tpl.Patch("/:id", tplCtl.Update)
	tpl.Delete("/:id", tplCtl.Delete)

	if d.GenerateLimiter != nil {
		reports.Post("/generate", d.GenerateLimiter, repCtl.Generate)
	} else {
		reports.Post("/generate", repCtl.Generate)
	}
	reports.Get("/", repCtl.List)
	reports.Get("/:id", repCtl.GetByID)
	reports.Patch("/:id", repCtl.Update)
	reports.Delete("/:id", repCtl.Delete)
}

// Read-only untuk user login.
func ReportsUserRoutes(r fiber.Router, d Deps) {
	tplCtl := reportCtl.NewTemplateController(d.Templates)
	repCtl := reportCtl.NewReportController(d.Reports)

	reports := r.Group("/:school_id/reports")

	tpl := reports.Group("/templates")
	tpl.Get("/", tplCtl.List)
	tpl.Get("/:id", tplCtl.GetByID)

	reports.Get("/", repCtl.List)
	reports.Get("/:id", repCtl.GetByID)
}
