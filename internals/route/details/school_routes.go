// internals/route/details/school_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"

	ReportRoutes "schoolku_backend/internals/features/school/reports/route"
)

/* ===================== USER (PRIVATE) ===================== */
// Endpoint yang butuh login user biasa (token user)
func SchoolUserRoutes(r fiber.Router, reports ReportRoutes.Deps) {
	ReportRoutes.ReportsUserRoutes(r, reports)
}

/* ===================== ADMIN ===================== */
// Endpoint admin sekolah; keputusan akses sudah dilakukan policy layer di luar service ini.
func SchoolAdminRoutes(r fiber.Router, reports ReportRoutes.Deps) {
	ReportRoutes.ReportsAdminRoutes(r, reports)
}
