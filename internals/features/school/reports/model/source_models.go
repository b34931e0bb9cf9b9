// internals/features/school/reports/model/source_models.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Read model untuk tabel sumber yang dimiliki modul lain.
// Report engine hanya membaca; penulisan hanya lewat seeds.

type ClassModel struct {
	ClassID        uuid.UUID      `json:"class_id"        gorm:"column:class_id;type:uuid;primaryKey"`
	ClassSchoolID  uuid.UUID      `json:"class_school_id" gorm:"column:class_school_id;type:uuid;not null;index"`
	ClassName      string         `json:"class_name"      gorm:"column:class_name;type:varchar(120);not null"`
	ClassDeletedAt gorm.DeletedAt `json:"-"               gorm:"column:class_deleted_at;index"`
}

func (ClassModel) TableName() string { return "classes" }

type StudentModel struct {
	StudentID        uuid.UUID      `json:"student_id"         gorm:"column:student_id;type:uuid;primaryKey"`
	StudentSchoolID  uuid.UUID      `json:"student_school_id"  gorm:"column:student_school_id;type:uuid;not null;index"`
	StudentClassID   *uuid.UUID     `json:"student_class_id"   gorm:"column:student_class_id;type:uuid;index"`
	StudentFirstName string         `json:"student_first_name" gorm:"column:student_first_name;type:varchar(80);not null"`
	StudentLastName  string         `json:"student_last_name"  gorm:"column:student_last_name;type:varchar(80)"`
	StudentDeletedAt gorm.DeletedAt `json:"-"                  gorm:"column:student_deleted_at;index"`
}

func (StudentModel) TableName() string { return "students" }

type SubjectModel struct {
	SubjectID        uuid.UUID      `json:"subject_id"        gorm:"column:subject_id;type:uuid;primaryKey"`
	SubjectSchoolID  uuid.UUID      `json:"subject_school_id" gorm:"column:subject_school_id;type:uuid;not null;index"`
	SubjectName      string         `json:"subject_name"      gorm:"column:subject_name;type:varchar(120);not null"`
	SubjectDeletedAt gorm.DeletedAt `json:"-"                 gorm:"column:subject_deleted_at;index"`
}

func (SubjectModel) TableName() string { return "subjects" }

type CourseModel struct {
	CourseID        uuid.UUID      `json:"course_id"         gorm:"column:course_id;type:uuid;primaryKey"`
	CourseSchoolID  uuid.UUID      `json:"course_school_id"  gorm:"column:course_school_id;type:uuid;not null;index"`
	CourseSubjectID uuid.UUID      `json:"course_subject_id" gorm:"column:course_subject_id;type:uuid;not null"`
	CourseClassID   *uuid.UUID     `json:"course_class_id"   gorm:"column:course_class_id;type:uuid"`
	CourseName      string         `json:"course_name"       gorm:"column:course_name;type:varchar(160);not null"`
	CourseDeletedAt gorm.DeletedAt `json:"-"                 gorm:"column:course_deleted_at;index"`
}

func (CourseModel) TableName() string { return "courses" }

type ExamModel struct {
	ExamID         uuid.UUID      `json:"exam_id"          gorm:"column:exam_id;type:uuid;primaryKey"`
	ExamSchoolID   uuid.UUID      `json:"exam_school_id"   gorm:"column:exam_school_id;type:uuid;not null;index"`
	ExamCourseID   uuid.UUID      `json:"exam_course_id"   gorm:"column:exam_course_id;type:uuid;not null"`
	ExamName       string         `json:"exam_name"        gorm:"column:exam_name;type:varchar(160);not null"`
	ExamDate       time.Time      `json:"exam_date"        gorm:"column:exam_date;not null;index"`
	ExamTotalMarks float64        `json:"exam_total_marks" gorm:"column:exam_total_marks;not null"`
	ExamDeletedAt  gorm.DeletedAt `json:"-"                gorm:"column:exam_deleted_at;index"`
}

func (ExamModel) TableName() string { return "exams" }

type GradeModel struct {
	GradeID        uuid.UUID      `json:"grade_id"         gorm:"column:grade_id;type:uuid;primaryKey"`
	GradeSchoolID  uuid.UUID      `json:"grade_school_id"  gorm:"column:grade_school_id;type:uuid;not null;index"`
	GradeStudentID uuid.UUID      `json:"grade_student_id" gorm:"column:grade_student_id;type:uuid;not null;index"`
	GradeExamID    uuid.UUID      `json:"grade_exam_id"    gorm:"column:grade_exam_id;type:uuid;not null;index"`
	GradeMarks     float64        `json:"grade_marks"      gorm:"column:grade_marks;not null"`
	GradeLetter    *string        `json:"grade_letter"     gorm:"column:grade_letter;type:varchar(8)"`
	GradeRemarks   *string        `json:"grade_remarks"    gorm:"column:grade_remarks;type:text"`
	GradeCreatedAt time.Time      `json:"grade_created_at" gorm:"column:grade_created_at;not null;index"`
	GradeDeletedAt gorm.DeletedAt `json:"-"                gorm:"column:grade_deleted_at;index"`
}

func (GradeModel) TableName() string { return "grades" }

type AttendanceModel struct {
	AttendanceID        uuid.UUID      `json:"attendance_id"         gorm:"column:attendance_id;type:uuid;primaryKey"`
	AttendanceSchoolID  uuid.UUID      `json:"attendance_school_id"  gorm:"column:attendance_school_id;type:uuid;not null;index"`
	AttendanceStudentID uuid.UUID      `json:"attendance_student_id" gorm:"column:attendance_student_id;type:uuid;not null;index"`
	AttendanceClassID   uuid.UUID      `json:"attendance_class_id"   gorm:"column:attendance_class_id;type:uuid;not null;index"`
	AttendanceDate      time.Time      `json:"attendance_date"       gorm:"column:attendance_date;not null;index"`
	AttendanceStatus    string         `json:"attendance_status"     gorm:"column:attendance_status;type:varchar(16);not null"`
	AttendanceDeletedAt gorm.DeletedAt `json:"-"                     gorm:"column:attendance_deleted_at;index"`
}

func (AttendanceModel) TableName() string { return "attendances" }

// AllModels urutannya aman untuk AutoMigrate (parent dulu).
func AllModels() []any {
	return []any{
		&ClassModel{},
		&StudentModel{},
		&SubjectModel{},
		&CourseModel{},
		&ExamModel{},
		&GradeModel{},
		&AttendanceModel{},
		&ReportTemplateModel{},
		&ReportModel{},
	}
}
