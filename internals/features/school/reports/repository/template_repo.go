// internals/features/school/reports/repository/template_repo.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/school/reports/model"
	"schoolku_backend/internals/features/school/reports/service"
	"schoolku_backend/internals/helpers/apperror"
)

type TemplateRepo struct {
	DB *gorm.DB
}

func NewTemplateRepo(db *gorm.DB) *TemplateRepo {
	return &TemplateRepo{DB: db}
}

var _ service.TemplateStore = (*TemplateRepo)(nil)

func (r *TemplateRepo) Create(ctx context.Context, m *model.ReportTemplateModel) error {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.DataAccess("templates.create", err)
	}
	return nil
}

func (r *TemplateRepo) List(ctx context.Context, schoolID uuid.UUID) ([]model.ReportTemplateModel, error) {
	rows := make([]model.ReportTemplateModel, 0)
	err := r.DB.WithContext(ctx).
		Where("report_template_school_id = ?", schoolID).
		Order("report_template_created_at ASC, report_template_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperror.DataAccess("templates.list", err)
	}
	return rows, nil
}

func (r *TemplateRepo) Get(ctx context.Context, schoolID, id uuid.UUID) (*model.ReportTemplateModel, error) {
	return findTemplate(r.DB.WithContext(ctx), schoolID, id, false)
}

func (r *TemplateRepo) Update(ctx context.Context, schoolID, id uuid.UUID, patch service.TemplatePatch) (*model.ReportTemplateModel, error) {
	var out *model.ReportTemplateModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findTemplate(tx, schoolID, id, true)
		if err != nil {
			return err
		}

		// tipe template harus tetap sama dengan tipe report yang mereferensikannya
		if patch.Type != nil && *patch.Type != m.ReportTemplateType {
			refs, err := countReferences(tx, id)
			if err != nil {
				return apperror.DataAccess("templates.update", err)
			}
			if refs > 0 {
				return apperror.Conflict("templates.update", "template type cannot change while reports reference it")
			}
		}

		updates := map[string]any{}
		if patch.Name != nil {
			updates["report_template_name"] = *patch.Name
		}
		if patch.Type != nil {
			updates["report_template_type"] = *patch.Type
		}
		if patch.Format != nil {
			updates["report_template_format"] = *patch.Format
		}
		if len(updates) > 0 {
			if err := tx.Model(m).Updates(updates).Error; err != nil {
				return apperror.DataAccess("templates.update", err)
			}
		}

		out, err = findTemplate(tx, schoolID, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete menolak (ConflictError) selama masih ada report yang mereferensikan template.
func (r *TemplateRepo) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findTemplate(tx, schoolID, id, true); err != nil {
			return err
		}

		refs, err := countReferences(tx, id)
		if err != nil {
			return apperror.DataAccess("templates.delete", err)
		}
		if refs > 0 {
			return apperror.Conflict("templates.delete", "template is still referenced by reports")
		}

		if err := tx.Where("report_template_school_id = ? AND report_template_id = ?", schoolID, id).
			Delete(&model.ReportTemplateModel{}).Error; err != nil {
			return apperror.DataAccess("templates.delete", err)
		}
		return nil
	})
}

func findTemplate(db *gorm.DB, schoolID, id uuid.UUID, lock bool) (*model.ReportTemplateModel, error) {
	q := db
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m model.ReportTemplateModel
	err := q.Where("report_template_school_id = ? AND report_template_id = ?", schoolID, id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("templates.get", "report template not found")
	}
	if err != nil {
		return nil, apperror.DataAccess("templates.get", err)
	}
	return &m, nil
}

func countReferences(tx *gorm.DB, templateID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.ReportModel{}).
		Where("report_template_id = ?", templateID).
		Count(&n).Error
	return n, err
}
