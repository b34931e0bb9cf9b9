// internals/features/school/reports/repository/data_port.go
package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/reports/model"
	"schoolku_backend/internals/features/school/reports/service"
	"schoolku_backend/internals/helpers/apperror"
)

// DataPort: implementasi GORM atas tabel sumber (students, classes, grades, ...).
type DataPort struct {
	DB *gorm.DB
}

func NewDataPort(db *gorm.DB) *DataPort {
	return &DataPort{DB: db}
}

var _ service.DataPort = (*DataPort)(nil)

/* =========================================================
   Existence
========================================================= */

func (p *DataPort) StudentExists(ctx context.Context, schoolID, studentID uuid.UUID) (bool, error) {
	var n int64
	err := p.DB.WithContext(ctx).Model(&model.StudentModel{}).
		Where("student_school_id = ? AND student_id = ?", schoolID, studentID).
		Count(&n).Error
	if err != nil {
		return false, apperror.DataAccess("port.student_exists", err)
	}
	return n > 0, nil
}

func (p *DataPort) ClassExists(ctx context.Context, schoolID, classID uuid.UUID) (bool, error) {
	var n int64
	err := p.DB.WithContext(ctx).Model(&model.ClassModel{}).
		Where("class_school_id = ? AND class_id = ?", schoolID, classID).
		Count(&n).Error
	if err != nil {
		return false, apperror.DataAccess("port.class_exists", err)
	}
	return n > 0, nil
}

/* =========================================================
   Grades (exam → course → subject)
========================================================= */

type gradeRow struct {
	GradeID          uuid.UUID  `gorm:"column:grade_id"`
	GradeStudentID   uuid.UUID  `gorm:"column:grade_student_id"`
	GradeMarks       float64    `gorm:"column:grade_marks"`
	GradeLetter      *string    `gorm:"column:grade_letter"`
	GradeRemarks     *string    `gorm:"column:grade_remarks"`
	GradeCreatedAt   time.Time  `gorm:"column:grade_created_at"`
	ExamID           uuid.UUID  `gorm:"column:exam_id"`
	ExamName         string     `gorm:"column:exam_name"`
	ExamDate         time.Time  `gorm:"column:exam_date"`
	ExamTotalMarks   float64    `gorm:"column:exam_total_marks"`
	CourseName       string     `gorm:"column:course_name"`
	SubjectName      string     `gorm:"column:subject_name"`
	StudentFirstName string     `gorm:"column:student_first_name"`
	StudentLastName  string     `gorm:"column:student_last_name"`
	StudentClassID   *uuid.UUID `gorm:"column:student_class_id"`
}

func (r gradeRow) toRecord() service.GradeRecord {
	return service.GradeRecord{
		ID:          r.GradeID,
		StudentID:   r.GradeStudentID,
		StudentName: fullName(r.StudentFirstName, r.StudentLastName),
		ClassID:     r.StudentClassID,
		ExamID:      r.ExamID,
		ExamName:    r.ExamName,
		ExamDate:    r.ExamDate.UTC(),
		TotalMarks:  r.ExamTotalMarks,
		Subject:     r.SubjectName,
		Course:      r.CourseName,
		Marks:       r.GradeMarks,
		Letter:      r.GradeLetter,
		Remarks:     r.GradeRemarks,
		CreatedAt:   r.GradeCreatedAt.UTC(),
	}
}

func (p *DataPort) gradeQuery(ctx context.Context, schoolID uuid.UUID) *gorm.DB {
	return p.DB.WithContext(ctx).
		Table("grades AS g").
		Select(`g.grade_id, g.grade_student_id, g.grade_marks, g.grade_letter, g.grade_remarks, g.grade_created_at,
			e.exam_id, e.exam_name, e.exam_date, e.exam_total_marks,
			c.course_name, sb.subject_name,
			s.student_first_name, s.student_last_name, s.student_class_id`).
		Joins("JOIN exams e ON e.exam_id = g.grade_exam_id AND e.exam_deleted_at IS NULL").
		Joins("JOIN courses c ON c.course_id = e.exam_course_id AND c.course_deleted_at IS NULL").
		Joins("JOIN subjects sb ON sb.subject_id = c.course_subject_id AND sb.subject_deleted_at IS NULL").
		Joins("JOIN students s ON s.student_id = g.grade_student_id AND s.student_deleted_at IS NULL").
		Where("g.grade_school_id = ? AND g.grade_deleted_at IS NULL", schoolID)
}

func (p *DataPort) scanGrades(q *gorm.DB, op string) ([]service.GradeRecord, error) {
	var rows []gradeRow
	if err := q.Order("e.exam_date ASC, g.grade_id ASC").Scan(&rows).Error; err != nil {
		return nil, apperror.DataAccess(op, err)
	}
	out := make([]service.GradeRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toRecord())
	}
	return out, nil
}

func (p *DataPort) GradesByStudent(ctx context.Context, schoolID, studentID uuid.UUID, w service.Window) ([]service.GradeRecord, error) {
	q := p.gradeQuery(ctx, schoolID).
		Where("g.grade_student_id = ?", studentID).
		Where("g.grade_created_at BETWEEN ? AND ?", w.Start, w.End)
	return p.scanGrades(q, "port.grades_by_student")
}

func (p *DataPort) GradesByClass(ctx context.Context, schoolID, classID uuid.UUID, w service.Window) ([]service.GradeRecord, error) {
	q := p.gradeQuery(ctx, schoolID).
		Where("s.student_class_id = ?", classID).
		Where("g.grade_created_at BETWEEN ? AND ?", w.Start, w.End)
	return p.scanGrades(q, "port.grades_by_class")
}

// ExamResults memfilter berdasarkan tanggal exam, bukan tanggal input nilai.
func (p *DataPort) ExamResults(ctx context.Context, schoolID uuid.UUID, scope service.Scope, w service.Window) ([]service.GradeRecord, error) {
	q := p.gradeQuery(ctx, schoolID).
		Where("e.exam_date BETWEEN ? AND ?", w.Start, w.End)
	if scope.StudentID != nil {
		q = q.Where("g.grade_student_id = ?", *scope.StudentID)
	}
	if scope.ClassID != nil {
		q = q.Where("s.student_class_id = ?", *scope.ClassID)
	}
	return p.scanGrades(q, "port.exam_results")
}

/* =========================================================
   Attendance
========================================================= */

type attendanceRow struct {
	AttendanceID        uuid.UUID `gorm:"column:attendance_id"`
	AttendanceDate      time.Time `gorm:"column:attendance_date"`
	AttendanceStatus    string    `gorm:"column:attendance_status"`
	AttendanceStudentID uuid.UUID `gorm:"column:attendance_student_id"`
	AttendanceClassID   uuid.UUID `gorm:"column:attendance_class_id"`
	StudentFirstName    string    `gorm:"column:student_first_name"`
	StudentLastName     string    `gorm:"column:student_last_name"`
	ClassName           string    `gorm:"column:class_name"`
}

func (p *DataPort) AttendanceByScope(ctx context.Context, schoolID uuid.UUID, scope service.Scope, w service.Window) ([]service.AttendanceRecord, error) {
	const op = "port.attendance_by_scope"

	q := p.DB.WithContext(ctx).
		Table("attendances AS a").
		Select(`a.attendance_id, a.attendance_date, a.attendance_status, a.attendance_student_id, a.attendance_class_id,
			s.student_first_name, s.student_last_name, c.class_name`).
		Joins("JOIN students s ON s.student_id = a.attendance_student_id AND s.student_deleted_at IS NULL").
		Joins("JOIN classes c ON c.class_id = a.attendance_class_id AND c.class_deleted_at IS NULL").
		Where("a.attendance_school_id = ? AND a.attendance_deleted_at IS NULL", schoolID).
		Where("a.attendance_date BETWEEN ? AND ?", w.Start, w.End)
	if scope.StudentID != nil {
		q = q.Where("a.attendance_student_id = ?", *scope.StudentID)
	}
	if scope.ClassID != nil {
		q = q.Where("a.attendance_class_id = ?", *scope.ClassID)
	}

	var rows []attendanceRow
	if err := q.Order("a.attendance_date ASC, a.attendance_id ASC").Scan(&rows).Error; err != nil {
		return nil, apperror.DataAccess(op, err)
	}
	out := make([]service.AttendanceRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, service.AttendanceRecord{
			ID:          r.AttendanceID,
			Date:        r.AttendanceDate.UTC(),
			Status:      r.AttendanceStatus,
			StudentID:   r.AttendanceStudentID,
			StudentName: fullName(r.StudentFirstName, r.StudentLastName),
			ClassID:     r.AttendanceClassID,
			ClassName:   r.ClassName,
		})
	}
	return out, nil
}

/* =========================================================
   Roster
========================================================= */

func (p *DataPort) StudentsInClass(ctx context.Context, schoolID, classID uuid.UUID) ([]service.StudentRecord, error) {
	var rows []model.StudentModel
	err := p.DB.WithContext(ctx).
		Where("student_school_id = ? AND student_class_id = ?", schoolID, classID).
		Order("student_first_name ASC, student_last_name ASC, student_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperror.DataAccess("port.students_in_class", err)
	}
	out := make([]service.StudentRecord, 0, len(rows))
	for _, s := range rows {
		out = append(out, service.StudentRecord{
			ID:   s.StudentID,
			Name: fullName(s.StudentFirstName, s.StudentLastName),
		})
	}
	return out, nil
}

func fullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
