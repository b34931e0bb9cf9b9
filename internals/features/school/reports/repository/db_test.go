package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"schoolku_backend/internals/features/school/reports/model"
)

// newTestDB membuka SQLite in-memory yang terisolasi per test, dengan skema hasil AutoMigrate.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func at(m time.Month, d, h int) time.Time {
	return time.Date(2024, m, d, h, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

// sourceData: dua sekolah; sekolah utama punya kelas 7A berisi Ani & Budi.
type sourceData struct {
	school, otherSchool uuid.UUID
	class, otherClass   uuid.UUID
	ani, budi, gone     uuid.UUID
	outsider            uuid.UUID
	examMar, examApr    uuid.UUID
	gradeAniMar         uuid.UUID
	gradeAniApr         uuid.UUID
	gradeBudiMar        uuid.UUID
}

func seedSource(t *testing.T, db *gorm.DB) sourceData {
	t.Helper()

	d := sourceData{
		school: uuid.New(), otherSchool: uuid.New(),
		class: uuid.New(), otherClass: uuid.New(),
		ani: uuid.New(), budi: uuid.New(), gone: uuid.New(), outsider: uuid.New(),
		examMar: uuid.New(), examApr: uuid.New(),
		gradeAniMar: uuid.New(), gradeAniApr: uuid.New(), gradeBudiMar: uuid.New(),
	}
	subject, course := uuid.New(), uuid.New()

	ctx := context.Background()
	tx := db.WithContext(ctx)
	require.NoError(t, tx.Create(&[]model.ClassModel{
		{ClassID: d.class, ClassSchoolID: d.school, ClassName: "7A"},
		{ClassID: d.otherClass, ClassSchoolID: d.otherSchool, ClassName: "9C"},
	}).Error)
	require.NoError(t, tx.Create(&[]model.StudentModel{
		{StudentID: d.ani, StudentSchoolID: d.school, StudentClassID: &d.class, StudentFirstName: "Ani", StudentLastName: "Lestari"},
		{StudentID: d.budi, StudentSchoolID: d.school, StudentClassID: &d.class, StudentFirstName: "Budi", StudentLastName: "Santoso"},
		{StudentID: d.gone, StudentSchoolID: d.school, StudentClassID: &d.class, StudentFirstName: "Cici", StudentLastName: "Keluar"},
		{StudentID: d.outsider, StudentSchoolID: d.otherSchool, StudentClassID: &d.otherClass, StudentFirstName: "Dodi"},
	}).Error)
	require.NoError(t, tx.Delete(&model.StudentModel{}, "student_id = ?", d.gone).Error)

	require.NoError(t, tx.Create(&model.SubjectModel{SubjectID: subject, SubjectSchoolID: d.school, SubjectName: "Matematika"}).Error)
	require.NoError(t, tx.Create(&model.CourseModel{
		CourseID: course, CourseSchoolID: d.school, CourseSubjectID: subject, CourseClassID: &d.class, CourseName: "Matematika 7A",
	}).Error)
	require.NoError(t, tx.Create(&[]model.ExamModel{
		{ExamID: d.examMar, ExamSchoolID: d.school, ExamCourseID: course, ExamName: "UTS", ExamDate: at(3, 10, 8), ExamTotalMarks: 100},
		{ExamID: d.examApr, ExamSchoolID: d.school, ExamCourseID: course, ExamName: "Kuis", ExamDate: at(4, 15, 8), ExamTotalMarks: 50},
	}).Error)
	require.NoError(t, tx.Create(&[]model.GradeModel{
		{GradeID: d.gradeAniMar, GradeSchoolID: d.school, GradeStudentID: d.ani, GradeExamID: d.examMar, GradeMarks: 80, GradeLetter: strPtr("B"), GradeCreatedAt: at(3, 12, 10)},
		{GradeID: d.gradeAniApr, GradeSchoolID: d.school, GradeStudentID: d.ani, GradeExamID: d.examApr, GradeMarks: 45, GradeLetter: strPtr("A"), GradeRemarks: strPtr("bagus"), GradeCreatedAt: at(4, 16, 10)},
		{GradeID: d.gradeBudiMar, GradeSchoolID: d.school, GradeStudentID: d.budi, GradeExamID: d.examMar, GradeMarks: 60, GradeCreatedAt: at(3, 12, 11)},
	}).Error)

	require.NoError(t, tx.Create(&[]model.AttendanceModel{
		{AttendanceID: uuid.New(), AttendanceSchoolID: d.school, AttendanceStudentID: d.ani, AttendanceClassID: d.class, AttendanceDate: at(3, 1, 7), AttendanceStatus: "PRESENT"},
		{AttendanceID: uuid.New(), AttendanceSchoolID: d.school, AttendanceStudentID: d.ani, AttendanceClassID: d.class, AttendanceDate: at(3, 2, 7), AttendanceStatus: "LATE"},
		{AttendanceID: uuid.New(), AttendanceSchoolID: d.school, AttendanceStudentID: d.budi, AttendanceClassID: d.class, AttendanceDate: at(3, 1, 7), AttendanceStatus: "ABSENT"},
		{AttendanceID: uuid.New(), AttendanceSchoolID: d.school, AttendanceStudentID: d.budi, AttendanceClassID: d.class, AttendanceDate: at(5, 1, 7), AttendanceStatus: "PRESENT"},
		{AttendanceID: uuid.New(), AttendanceSchoolID: d.otherSchool, AttendanceStudentID: d.outsider, AttendanceClassID: d.otherClass, AttendanceDate: at(3, 1, 7), AttendanceStatus: "PRESENT"},
	}).Error)

	return d
}
