// internals/features/school/reports/repository/report_repo.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/school/reports/model"
	"schoolku_backend/internals/features/school/reports/service"
	"schoolku_backend/internals/helpers/apperror"
)

type ReportRepo struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewReportRepo(db *gorm.DB) *ReportRepo {
	return &ReportRepo{DB: db, Now: time.Now}
}

var _ service.ReportStore = (*ReportRepo)(nil)

// Save menyimpan snapshot dalam satu transaksi. Template (jika ada) harus milik sekolah yang sama.
func (r *ReportRepo) Save(ctx context.Context, m *model.ReportModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.ReportTemplateID != nil {
			if err := ensureTemplateInSchool(tx, m.ReportSchoolID, *m.ReportTemplateID); err != nil {
				return err
			}
		}

		m.ReportID = uuid.New()
		m.ReportGeneratedAt = r.Now().UTC()
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return apperror.DataAccess("reports.save", err)
		}
		return nil
	})
}

func (r *ReportRepo) Get(ctx context.Context, schoolID, id uuid.UUID) (*model.ReportModel, error) {
	return findReport(r.DB.WithContext(ctx), schoolID, id)
}

func (r *ReportRepo) List(ctx context.Context, schoolID uuid.UUID, f service.ReportFilter) ([]model.ReportModel, int64, error) {
	const op = "reports.list"

	q := r.DB.WithContext(ctx).Model(&model.ReportModel{}).
		Where("report_school_id = ?", schoolID)
	if f.Type != nil {
		q = q.Where("report_type = ?", *f.Type)
	}
	if f.StudentID != nil {
		q = q.Where("report_student_id = ?", *f.StudentID)
	}
	if f.ClassID != nil {
		q = q.Where("report_class_id = ?", *f.ClassID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, apperror.DataAccess(op, err)
	}

	rows := make([]model.ReportModel, 0)
	page := q.Session(&gorm.Session{}).Order("report_generated_at DESC, report_id DESC")
	if f.Limit > 0 {
		page = page.Limit(f.Limit)
	}
	if f.Offset > 0 {
		page = page.Offset(f.Offset)
	}
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, apperror.DataAccess(op, err)
	}
	return rows, total, nil
}

// UpdateMetadata hanya menulis kolom metadata (title, template).
func (r *ReportRepo) UpdateMetadata(ctx context.Context, schoolID, id uuid.UUID, patch service.MetadataPatch) (*model.ReportModel, error) {
	var out *model.ReportModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findReport(tx.Clauses(clause.Locking{Strength: "UPDATE"}), schoolID, id)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if patch.Title != nil {
			updates["report_title"] = *patch.Title
		}
		switch {
		case patch.ClearTemplate:
			updates["report_template_id"] = nil
		case patch.TemplateID != nil:
			if err := ensureTemplateInSchool(tx, schoolID, *patch.TemplateID); err != nil {
				return err
			}
			updates["report_template_id"] = *patch.TemplateID
		}

		if len(updates) > 0 {
			updates["report_updated_at"] = r.Now().UTC()
			err := tx.Model(&model.ReportModel{}).
				Where("report_school_id = ? AND report_id = ?", schoolID, m.ReportID).
				Updates(updates).Error
			if err != nil {
				return apperror.DataAccess("reports.update", err)
			}
		}

		out, err = findReport(tx, schoolID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete: hard delete.
func (r *ReportRepo) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("report_school_id = ? AND report_id = ?", schoolID, id).
		Delete(&model.ReportModel{})
	if res.Error != nil {
		return apperror.DataAccess("reports.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("reports.delete", "report not found")
	}
	return nil
}

func findReport(db *gorm.DB, schoolID, id uuid.UUID) (*model.ReportModel, error) {
	var m model.ReportModel
	err := db.Where("report_school_id = ? AND report_id = ?", schoolID, id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("reports.get", "report not found")
	}
	if err != nil {
		return nil, apperror.DataAccess("reports.get", err)
	}
	return &m, nil
}

func ensureTemplateInSchool(tx *gorm.DB, schoolID, templateID uuid.UUID) error {
	var n int64
	err := tx.Model(&model.ReportTemplateModel{}).
		Where("report_template_school_id = ? AND report_template_id = ?", schoolID, templateID).
		Count(&n).Error
	if err != nil {
		return apperror.DataAccess("reports.template_check", err)
	}
	if n == 0 {
		return apperror.NotFound("reports.template_check", "report template not found in this school")
	}
	return nil
}
