// internals/features/school/reports/controller/template_controller.go
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

type TemplateController struct {
	Svc       *service.TemplateService
	Validator *validator.Validate
}

func NewTemplateController(svc *service.TemplateService) *TemplateController {
	return &TemplateController{Svc: svc, Validator: newValidator()}
}

// POST /:school_id/reports/templates
func (h *TemplateController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return fail(c, err)
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return fail(c, err)
	}
	req, err := bindAndValidate[dto.CreateTemplateRequest](c, h.Validator)
	if err != nil {
		return fail(c, err)
	}

	m, err := h.Svc.Create(c.UserContext(), schoolID, userID, service.TemplateInput{
		Name:   req.ReportTemplateName,
		Type:   model.ReportType(strings.TrimSpace(req.ReportTemplateType)),
		Format: req.ReportTemplateFormat,
	})
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonCreated(c, constants.MsgTemplateCreated, dto.NewTemplateResponse(m))
}

// GET /:school_id/reports/templates
func (h *TemplateController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolID(c)
	if err != nil {
		return fail(c, err)
	}
	rows, err := h.Svc.List(c.UserContext(), schoolID)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonOK(c, constants.MsgTemplateList, dto.NewTemplateResponses(rows))
}

// GET /:school_id/reports/templates/:id
func (h *TemplateController) GetByID(c *fiber.Ctx) error {
	schoolID, id, err := tenantAndID(c)
	if err != nil {
		return fail(c, err)
	}
	m, err := h.Svc.Get(c.UserContext(), schoolID, id)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonOK(c, constants.MsgTemplateDetail, dto.NewTemplateResponse(m))
}

// PATCH /:school_id/reports/templates/:id
func (h *TemplateController) Update(c *fiber.Ctx) error {
	schoolID, id, err := tenantAndID(c)
	if err != nil {
		return fail(c, err)
	}
	req, err := bindAndValidate[dto.UpdateTemplateRequest](c, h.Validator)
	if err != nil {
		return fail(c, err)
	}

	patch := service.TemplatePatch{
		Name:   req.ReportTemplateName,
		Format: req.ReportTemplateFormat,
	}
	if req.ReportTemplateType != nil {
		t := model.ReportType(strings.TrimSpace(*req.ReportTemplateType))
		patch.Type = &t
	}

	m, err := h.Svc.Update(c.UserContext(), schoolID, id, patch)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonUpdated(c, constants.MsgTemplateUpdated, dto.NewTemplateResponse(m))
}

// DELETE /:school_id/reports/templates/:id (409 jika masih dipakai report)
func (h *TemplateController) Delete(c *fiber.Ctx) error {
	schoolID, id, err := tenantAndID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), schoolID, id); err != nil {
		return fail(c, err)
	}
	return helper.JsonDeleted(c, constants.MsgTemplateDeleted, fiber.Map{"report_template_id": id})
}
