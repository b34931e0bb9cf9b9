// internals/features/school/reports/controller/report_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/reports/dto"
	"schoolku_backend/internals/features/school/reports/model"
	"schoolku_backend/internals/features/school/reports/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type ReportController struct {
	Svc       *service.ReportService
	Validator *validator.Validate
}

func NewReportController(svc *service.ReportService) *ReportController {
	return &ReportController{Svc: svc, Validator: newValidator()}
}

// POST /:school_id/reports/generate
func (h *ReportController) Generate(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return fail(c, err)
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return fail(c, err)
	}
	req, err := bindAndValidate[dto.GenerateReportRequest](c, h.Validator)
	if err != nil {
		return fail(c, err)
	}

	m, err := h.Svc.Generate(c.UserContext(), schoolID, userID, service.GenerateRequest{
		TemplateID: req.TemplateID,
		Type:       model.ReportType(strings.TrimSpace(req.Type)),
		Title:      req.Title,
		StudentID:  req.StudentID,
		ClassID:    req.ClassID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonCreated(c, constants.MsgReportGenerated, dto.NewReportResponse(m))
}

// GET /:school_id/reports?type=&student_id=&class_id=&page=&per_page=
func (h *ReportController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return fail(c, err)
	}

	var f service.ReportFilter
	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		t := model.ReportType(raw)
		f.Type = &t
	}
	if f.StudentID, err = helperAuth.ParseOptionalUUIDQuery(c, "student_id"); err != nil {
		return fail(c, err)
	}
	if f.ClassID, err = helperAuth.ParseOptionalUUIDQuery(c, "class_id"); err != nil {
		return fail(c, err)
	}

	p := helper.ResolvePaging(c, constants.DefaultPerPage, constants.MaxPerPage)
	f.Limit, f.Offset = p.Limit, p.Offset

	rows, total, err := h.Svc.List(c.UserContext(), schoolID, f)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonList(c, constants.MsgReportList, dto.NewReportResponses(rows), helper.BuildPagination(total, p, len(rows)))
}

// GET /:school_id/reports/:id
func (h *ReportController) GetByID(c *fiber.Ctx) error {
	schoolID, id, err := tenantAndID(c)
	if err != nil {
		return fail(c, err)
	}
	m, err := h.Svc.Get(c.UserContext(), schoolID, id)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonOK(c, constants.MsgReportDetail, dto.NewReportResponse(m))
}

// PATCH /:school_id/reports/:id (metadata saja)
func (h *ReportController) Update(c *fiber.Ctx) error {
	schoolID, id, err := tenantAndID(c)
	if err != nil {
		return fail(c, err)
	}
	req, err := bindAndValidate[dto.UpdateReportRequest](c, h.Validator)
	if err != nil {
		return fail(c, err)
	}

	m, err := h.Svc.UpdateMetadata(c.UserContext(), schoolID, id, service.MetadataPatch{
		Title:         req.Title,
		TemplateID:    req.TemplateID,
		ClearTemplate: req.ClearTemplate,
	})
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonUpdated(c, constants.MsgReportUpdated, dto.NewReportResponse(m))
}

// DELETE /:school_id/reports/:id
func (h *ReportController) Delete(c *fiber.Ctx) error {
	schoolID, id, err := tenantAndID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), schoolID, id); err != nil {
		return fail(c, err)
	}
	return helper.JsonDeleted(c, constants.MsgReportDeleted, fiber.Map{"report_id": id})
}
