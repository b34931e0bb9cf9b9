// internals/features/school/reports/model/report_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM: report type
========================================================= */

type ReportType string

const (
	ReportTypeAcademicProgress  ReportType = "ACADEMIC_PROGRESS"
	ReportTypeAttendanceSummary ReportType = "ATTENDANCE_SUMMARY"
	ReportTypeClassPerformance  ReportType = "CLASS_PERFORMANCE"
	ReportTypeExamResults       ReportType = "EXAM_RESULTS"
)

var ReportTypes = []ReportType{
	ReportTypeAcademicProgress,
	ReportTypeAttendanceSummary,
	ReportTypeClassPerformance,
	ReportTypeExamResults,
}

func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeAcademicProgress, ReportTypeAttendanceSummary,
		ReportTypeClassPerformance, ReportTypeExamResults:
		return true
	}
	return false
}

/* =========================================================
   report_templates
========================================================= */

type ReportTemplateModel struct {
	ReportTemplateID uuid.UUID `json:"report_template_id" gorm:"column:report_template_id;type:uuid;primaryKey"`

	// Tenant scope
	ReportTemplateSchoolID uuid.UUID `json:"report_template_school_id" gorm:"column:report_template_school_id;type:uuid;not null;index:idx_report_templates_school_created,priority:1"`

	ReportTemplateName   string     `json:"report_template_name"   gorm:"column:report_template_name;type:varchar(160);not null"`
	ReportTemplateType   ReportType `json:"report_template_type"   gorm:"column:report_template_type;type:varchar(32);not null"`
	ReportTemplateFormat string     `json:"report_template_format" gorm:"column:report_template_format;type:text;not null"`

	ReportTemplateCreatedByID uuid.UUID `json:"report_template_created_by_id" gorm:"column:report_template_created_by_id;type:uuid;not null"`

	ReportTemplateCreatedAt time.Time `json:"report_template_created_at" gorm:"column:report_template_created_at;autoCreateTime;index:idx_report_templates_school_created,priority:2"`
	ReportTemplateUpdatedAt time.Time `json:"report_template_updated_at" gorm:"column:report_template_updated_at;autoUpdateTime"`

	// FK di tabel reports; RESTRICT: template tidak bisa dihapus selama masih direferensikan
	Reports []ReportModel `json:"-" gorm:"foreignKey:ReportTemplateID;references:ReportTemplateID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (ReportTemplateModel) TableName() string { return "report_templates" }

func (m *ReportTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReportTemplateID == uuid.Nil {
		m.ReportTemplateID = uuid.New()
	}
	return nil
}

/* =========================================================
   reports (snapshot immutable; hanya title & template yg boleh berubah)
========================================================= */

type ReportModel struct {
	ReportID uuid.UUID `json:"report_id" gorm:"column:report_id;type:uuid;primaryKey"`

	ReportSchoolID   uuid.UUID  `json:"report_school_id"             gorm:"column:report_school_id;type:uuid;not null;index:idx_reports_school_generated,priority:1"`
	ReportTemplateID *uuid.UUID `json:"report_template_id,omitempty" gorm:"column:report_template_id;type:uuid;index:idx_reports_template"`

	ReportType  ReportType `json:"report_type"  gorm:"column:report_type;type:varchar(32);not null;index:idx_reports_school_type"`
	ReportTitle string     `json:"report_title" gorm:"column:report_title;type:varchar(200);not null"`

	// Scope
	ReportStudentID *uuid.UUID `json:"report_student_id,omitempty" gorm:"column:report_student_id;type:uuid;index:idx_reports_student"`
	ReportClassID   *uuid.UUID `json:"report_class_id,omitempty"   gorm:"column:report_class_id;type:uuid;index:idx_reports_class"`

	// Payload snapshot (JSONB di Postgres)
	ReportData datatypes.JSON `json:"report_data" gorm:"column:report_data;not null"`

	ReportGeneratedByID uuid.UUID `json:"report_generated_by_id" gorm:"column:report_generated_by_id;type:uuid;not null"`
	ReportGeneratedAt   time.Time `json:"report_generated_at"    gorm:"column:report_generated_at;not null;index:idx_reports_school_generated,priority:2"`
	ReportUpdatedAt     time.Time `json:"report_updated_at"      gorm:"column:report_updated_at;autoUpdateTime"`
}

func (ReportModel) TableName() string { return "reports" }

func (m *ReportModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReportID == uuid.Nil {
		m.ReportID = uuid.New()
	}
	return nil
}
