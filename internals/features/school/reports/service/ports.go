// internals/features/school/reports/service/ports.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/reports/model"
)

// Window rentang waktu inklusif [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

type Scope struct {
	StudentID *uuid.UUID
	ClassID   *uuid.UUID
}

/* =========================================================
   Records yang dikembalikan Data Access Port
========================================================= */

// GradeRecord: satu nilai siswa, sudah di-join ke exam, course, subject.
type GradeRecord struct {
	ID          uuid.UUID
	StudentID   uuid.UUID
	StudentName string
	ClassID     *uuid.UUID
	ExamID      uuid.UUID
	ExamName    string
	ExamDate    time.Time
	TotalMarks  float64
	Subject     string
	Course      string
	Marks       float64
	Letter      *string
	Remarks     *string
	CreatedAt   time.Time
}

type AttendanceRecord struct {
	ID          uuid.UUID
	Date        time.Time
	Status      string
	StudentID   uuid.UUID
	StudentName string
	ClassID     uuid.UUID
	ClassName   string
}

type StudentRecord struct {
	ID   uuid.UUID
	Name string
}

/* =========================================================
   Ports
========================================================= */

// DataPort membaca data akademik & presensi milik satu sekolah.
// Tidak ada match => slice kosong, bukan error.
type DataPort interface {
	StudentExists(ctx context.Context, schoolID, studentID uuid.UUID) (bool, error)
	ClassExists(ctx context.Context, schoolID, classID uuid.UUID) (bool, error)
	// by grade created_at
	GradesByStudent(ctx context.Context, schoolID, studentID uuid.UUID, w Window) ([]GradeRecord, error)
	// grade siswa yang terdaftar di kelas, by grade created_at
	GradesByClass(ctx context.Context, schoolID, classID uuid.UUID, w Window) ([]GradeRecord, error)
	AttendanceByScope(ctx context.Context, schoolID uuid.UUID, scope Scope, w Window) ([]AttendanceRecord, error)
	StudentsInClass(ctx context.Context, schoolID, classID uuid.UUID) ([]StudentRecord, error)
	// by exam date
	ExamResults(ctx context.Context, schoolID uuid.UUID, scope Scope, w Window) ([]GradeRecord, error)
}

type TemplatePatch struct {
	Name   *string
	Type   *model.ReportType
	Format *string
}

type TemplateStore interface {
	Create(ctx context.Context, m *model.ReportTemplateModel) error
	List(ctx context.Context, schoolID uuid.UUID) ([]model.ReportTemplateModel, error)
	Get(ctx context.Context, schoolID, id uuid.UUID) (*model.ReportTemplateModel, error)
	Update(ctx context.Context, schoolID, id uuid.UUID, patch TemplatePatch) (*model.ReportTemplateModel, error)
	// ConflictError jika masih direferensikan report.
	Delete(ctx context.Context, schoolID, id uuid.UUID) error
}

type ReportFilter struct {
	Type      *model.ReportType
	StudentID *uuid.UUID
	ClassID   *uuid.UUID
	Limit     int
	Offset    int
}

type MetadataPatch struct {
	Title         *string
	TemplateID    *uuid.UUID
	ClearTemplate bool
}

type ReportStore interface {
	// Save mengisi ReportID & ReportGeneratedAt.
	Save(ctx context.Context, m *model.ReportModel) error
	Get(ctx context.Context, schoolID, id uuid.UUID) (*model.ReportModel, error)
	List(ctx context.Context, schoolID uuid.UUID, f ReportFilter) ([]model.ReportModel, int64, error)
	UpdateMetadata(ctx context.Context, schoolID, id uuid.UUID, patch MetadataPatch) (*model.ReportModel, error)
	Delete(ctx context.Context, schoolID, id uuid.UUID) error
}
