package service_test

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/reports/reporttest"
	"schoolku_backend/internals/features/school/reports/service"
	"schoolku_backend/internals/logger"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 9, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// world: satu sekolah, satu kelas berisi Ani (punya nilai & presensi) dan Budi (kosong),
// plus sekolah lain dengan data yang tidak boleh bocor.
type world struct {
	school, otherSchool uuid.UUID
	class, emptyClass   uuid.UUID
	ani, budi, stranger uuid.UUID
	user                uuid.UUID

	port      *reporttest.Port
	templates *reporttest.TemplateStore
	reports   *reporttest.ReportStore
	svc       *service.ReportService
	tplSvc    *service.TemplateService
}

func newWorld() *world {
	w := &world{
		school:      uuid.New(),
		otherSchool: uuid.New(),
		class:       uuid.New(),
		emptyClass:  uuid.New(),
		ani:         uuid.New(),
		budi:        uuid.New(),
		stranger:    uuid.New(),
		user:        uuid.New(),
	}

	w.port = &reporttest.Port{
		Students: []reporttest.Student{
			{ID: w.ani, SchoolID: w.school, ClassID: &w.class, Name: "Ani Lestari"},
			{ID: w.budi, SchoolID: w.school, ClassID: &w.class, Name: "Budi Santoso"},
			{ID: w.stranger, SchoolID: w.otherSchool, ClassID: &w.class, Name: "Orang Lain"},
		},
		Classes: []reporttest.Class{
			{ID: w.class, SchoolID: w.school, Name: "7A"},
			{ID: w.emptyClass, SchoolID: w.school, Name: "7B"},
		},
	}
	w.templates, w.reports = reporttest.Stores()
	w.reports.Now = func() time.Time { return fixedNow }
	w.svc = service.NewReportService(w.port, w.templates, w.reports, service.Options{
		Logger: logger.Discard(),
		Now:    func() time.Time { return fixedNow },
	})
	w.tplSvc = service.NewTemplateService(w.templates)
	return w
}

func (w *world) addGrade(student uuid.UUID, name string, marks, total float64, examDate time.Time) uuid.UUID {
	id := uuid.New()
	w.port.Grades = append(w.port.Grades, reporttest.Grade{
		SchoolID: w.school,
		GradeRecord: service.GradeRecord{
			ID:          id,
			StudentID:   student,
			StudentName: name,
			ClassID:     &w.class,
			ExamID:      uuid.New(),
			ExamName:    "UTS " + examDate.Format("Jan 2"),
			ExamDate:    examDate,
			TotalMarks:  total,
			Subject:     "Matematika",
			Course:      "Matematika 7A",
			Marks:       marks,
			Letter:      ptr("B"),
			CreatedAt:   examDate.Add(24 * time.Hour),
		},
	})
	return id
}

func (w *world) addAttendance(student uuid.UUID, name, status string, date time.Time) {
	w.port.Attendances = append(w.port.Attendances, reporttest.Attendance{
		SchoolID: w.school,
		AttendanceRecord: service.AttendanceRecord{
			ID:          uuid.New(),
			Date:        date,
			Status:      status,
			StudentID:   student,
			StudentName: name,
			ClassID:     w.class,
			ClassName:   "7A",
		},
	})
}
