// internals/features/school/reports/service/templates.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/reports/model"
	"schoolku_backend/internals/helpers/apperror"
)

type TemplateInput struct {
	Name   string
	Type   model.ReportType
	Format string
}

// TemplateService: registry template per sekolah.
type TemplateService struct {
	store TemplateStore
}

func NewTemplateService(store TemplateStore) *TemplateService {
	return &TemplateService{store: store}
}

func (s *TemplateService) Create(ctx context.Context, schoolID, createdByID uuid.UUID, in TemplateInput) (*model.ReportTemplateModel, error) {
	const op = "templates.create"

	name, err := requireText(op, "name", in.Name)
	if err != nil {
		return nil, err
	}
	format, err := requireText(op, "format", in.Format)
	if err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, apperror.Validation(op, "type", "type must be one of ACADEMIC_PROGRESS, ATTENDANCE_SUMMARY, CLASS_PERFORMANCE, EXAM_RESULTS")
	}

	m := &model.ReportTemplateModel{
		ReportTemplateSchoolID:    schoolID,
		ReportTemplateName:        name,
		ReportTemplateType:        in.Type,
		ReportTemplateFormat:      format,
		ReportTemplateCreatedByID: createdByID,
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *TemplateService) List(ctx context.Context, schoolID uuid.UUID) ([]model.ReportTemplateModel, error) {
	return s.store.List(ctx, schoolID)
}

func (s *TemplateService) Get(ctx context.Context, schoolID, id uuid.UUID) (*model.ReportTemplateModel, error) {
	return s.store.Get(ctx, schoolID, id)
}

func (s *TemplateService) Update(ctx context.Context, schoolID, id uuid.UUID, patch TemplatePatch) (*model.ReportTemplateModel, error) {
	const op = "templates.update"

	if patch.Name != nil {
		v, err := requireText(op, "name", *patch.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &v
	}
	if patch.Format != nil {
		v, err := requireText(op, "format", *patch.Format)
		if err != nil {
			return nil, err
		}
		patch.Format = &v
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, apperror.Validation(op, "type", "type must be one of ACADEMIC_PROGRESS, ATTENDANCE_SUMMARY, CLASS_PERFORMANCE, EXAM_RESULTS")
	}
	return s.store.Update(ctx, schoolID, id, patch)
}

func (s *TemplateService) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	return s.store.Delete(ctx, schoolID, id)
}

func requireText(op, field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", apperror.Validation(op, field, field+" is required")
	}
	return v, nil
}
