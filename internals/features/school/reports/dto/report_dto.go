// internals/features/school/reports/dto/report_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schoolku_backend/internals/features/school/reports/model"
)

/* ===================== REQUESTS ===================== */

// school_id diambil dari path, created_by dari token
type CreateTemplateRequest struct {
	ReportTemplateName   string `json:"report_template_name"   validate:"required,max=160"`
	ReportTemplateType   string `json:"report_template_type"   validate:"required,oneof=ACADEMIC_PROGRESS ATTENDANCE_SUMMARY CLASS_PERFORMANCE EXAM_RESULTS"`
	ReportTemplateFormat string `json:"report_template_format" validate:"required"`
}

// Update: semua optional (partial update)
type UpdateTemplateRequest struct {
	ReportTemplateName   *string `json:"report_template_name"   validate:"omitempty,max=160"`
	ReportTemplateType   *string `json:"report_template_type"   validate:"omitempty,oneof=ACADEMIC_PROGRESS ATTENDANCE_SUMMARY CLASS_PERFORMANCE EXAM_RESULTS"`
	ReportTemplateFormat *string `json:"report_template_format"`
}

// type boleh kosong jika template_id diisi (type diambil dari template)
type GenerateReportRequest struct {
	TemplateID *uuid.UUID `json:"template_id"`
	Type       string     `json:"type"       validate:"omitempty,oneof=ACADEMIC_PROGRESS ATTENDANCE_SUMMARY CLASS_PERFORMANCE EXAM_RESULTS"`
	Title      string     `json:"title"      validate:"required,max=200"`
	StudentID  *uuid.UUID `json:"student_id"`
	ClassID    *uuid.UUID `json:"class_id"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
}

// Hanya metadata; report_data tidak bisa diubah.
type UpdateReportRequest struct {
	Title         *string    `json:"title"          validate:"omitempty,max=200"`
	TemplateID    *uuid.UUID `json:"template_id"`
	ClearTemplate bool       `json:"clear_template"`
}

/* ===================== RESPONSES ===================== */

type TemplateResponse struct {
	ReportTemplateID          uuid.UUID        `json:"report_template_id"`
	ReportTemplateSchoolID    uuid.UUID        `json:"report_template_school_id"`
	ReportTemplateName        string           `json:"report_template_name"`
	ReportTemplateType        model.ReportType `json:"report_template_type"`
	ReportTemplateFormat      string           `json:"report_template_format"`
	ReportTemplateCreatedByID uuid.UUID        `json:"report_template_created_by_id"`
	ReportTemplateCreatedAt   time.Time        `json:"report_template_created_at"`
	ReportTemplateUpdatedAt   time.Time        `json:"report_template_updated_at"`
}

func NewTemplateResponse(m *model.ReportTemplateModel) *TemplateResponse {
	if m == nil {
		return nil
	}
	return &TemplateResponse{
		ReportTemplateID:          m.ReportTemplateID,
		ReportTemplateSchoolID:    m.ReportTemplateSchoolID,
		ReportTemplateName:        m.ReportTemplateName,
		ReportTemplateType:        m.ReportTemplateType,
		ReportTemplateFormat:      m.ReportTemplateFormat,
		ReportTemplateCreatedByID: m.ReportTemplateCreatedByID,
		ReportTemplateCreatedAt:   m.ReportTemplateCreatedAt,
		ReportTemplateUpdatedAt:   m.ReportTemplateUpdatedAt,
	}
}

func NewTemplateResponses(rows []model.ReportTemplateModel) []TemplateResponse {
	out := make([]TemplateResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *NewTemplateResponse(&rows[i]))
	}
	return out
}

type ReportResponse struct {
	ReportID            uuid.UUID        `json:"report_id"`
	ReportSchoolID      uuid.UUID        `json:"report_school_id"`
	ReportTemplateID    *uuid.UUID       `json:"report_template_id"`
	ReportType          model.ReportType `json:"report_type"`
	ReportTitle         string           `json:"report_title"`
	ReportStudentID     *uuid.UUID       `json:"report_student_id"`
	ReportClassID       *uuid.UUID       `json:"report_class_id"`
	ReportData          datatypes.JSON   `json:"report_data"`
	ReportGeneratedByID uuid.UUID        `json:"report_generated_by_id"`
	ReportGeneratedAt   time.Time        `json:"report_generated_at"`
	ReportUpdatedAt     time.Time        `json:"report_updated_at"`
}

// NewReportResponse mengirim snapshot apa adanya (tidak di-decode ulang).
func NewReportResponse(m *model.ReportModel) *ReportResponse {
	if m == nil {
		return nil
	}
	return &ReportResponse{
		ReportID:            m.ReportID,
		ReportSchoolID:      m.ReportSchoolID,
		ReportTemplateID:    m.ReportTemplateID,
		ReportType:          m.ReportType,
		ReportTitle:         m.ReportTitle,
		ReportStudentID:     m.ReportStudentID,
		ReportClassID:       m.ReportClassID,
		ReportData:          m.ReportData,
		ReportGeneratedByID: m.ReportGeneratedByID,
		ReportGeneratedAt:   m.ReportGeneratedAt,
		ReportUpdatedAt:     m.ReportUpdatedAt,
	}
}

func NewReportResponses(rows []model.ReportModel) []ReportResponse {
	out := make([]ReportResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *NewReportResponse(&rows[i]))
	}
	return out
}
