// internals/features/school/reports/dto/payload.go
package dto

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/reports/model"
)

// Payload adalah isi snapshot report; satu varian per ReportType.
type Payload interface {
	ReportType() model.ReportType
}

/* =========================================================
   ACADEMIC_PROGRESS
========================================================= */

type StudentGradeItem struct {
	ID         uuid.UUID `json:"id"`
	ExamID     uuid.UUID `json:"examId"`
	ExamName   string    `json:"examName"`
	Subject    string    `json:"subject"`
	Course     string    `json:"course"`
	ExamDate   time.Time `json:"examDate"`
	Marks      float64   `json:"marks"`
	TotalMarks float64   `json:"totalMarks"`
	Score      float64   `json:"score"`
	Grade      *string   `json:"grade"`
	Remarks    *string   `json:"remarks"`
}

type AcademicProgressPayload struct {
	StudentGrades []StudentGradeItem `json:"studentGrades"`
	AverageGrade  *float64           `json:"averageGrade"`
	TotalExams    int                `json:"totalExams"`
}

func (AcademicProgressPayload) ReportType() model.ReportType {
	return model.ReportTypeAcademicProgress
}

/* =========================================================
   ATTENDANCE_SUMMARY
========================================================= */

type AttendanceRecordItem struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	StudentID   uuid.UUID `json:"studentId"`
	StudentName string    `json:"studentName"`
	ClassID     uuid.UUID `json:"classId"`
	ClassName   string    `json:"className"`
}

type AttendanceSummaryPayload struct {
	TotalDays         int                    `json:"totalDays"`
	PresentDays       int                    `json:"presentDays"`
	AbsentDays        int                    `json:"absentDays"`
	LateDays          int                    `json:"lateDays"`
	OtherDays         int                    `json:"otherDays"`
	AttendanceRecords []AttendanceRecordItem `json:"attendanceRecords"`
}

func (AttendanceSummaryPayload) ReportType() model.ReportType {
	return model.ReportTypeAttendanceSummary
}

/* =========================================================
   CLASS_PERFORMANCE
========================================================= */

type StudentPerformanceItem struct {
	StudentID    uuid.UUID `json:"studentId"`
	Name         string    `json:"name"`
	AverageGrade *float64  `json:"averageGrade"`
	TotalExams   int       `json:"totalExams"`
}

type ClassPerformancePayload struct {
	TotalStudents      int                      `json:"totalStudents"`
	AverageClassGrade  *float64                 `json:"averageClassGrade"`
	StudentPerformance []StudentPerformanceItem `json:"studentPerformance"`
}

func (ClassPerformancePayload) ReportType() model.ReportType {
	return model.ReportTypeClassPerformance
}

/* =========================================================
   EXAM_RESULTS
========================================================= */

type ExamResultItem struct {
	ID          uuid.UUID `json:"id"`
	ExamID      uuid.UUID `json:"examId"`
	ExamName    string    `json:"examName"`
	ExamDate    time.Time `json:"examDate"`
	Subject     string    `json:"subject"`
	Course      string    `json:"course"`
	StudentID   uuid.UUID `json:"studentId"`
	StudentName string    `json:"studentName"`
	Marks       float64   `json:"marks"`
	TotalMarks  float64   `json:"totalMarks"`
	Score       float64   `json:"score"`
	Grade       *string   `json:"grade"`
	Remarks     *string   `json:"remarks"`
}

type ExamResultsPayload struct {
	TotalExams  int              `json:"totalExams"`
	ExamResults []ExamResultItem `json:"examResults"`
}

func (ExamResultsPayload) ReportType() model.ReportType {
	return model.ReportTypeExamResults
}

/* =========================================================
   Codec
========================================================= */

func EncodePayload(p Payload) ([]byte, error) {
	b, err := sonic.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", p.ReportType(), err)
	}
	return b, nil
}

// DecodePayload membaca snapshot sesuai tipe report.
func DecodePayload(t model.ReportType, raw []byte) (Payload, error) {
	var (
		p   Payload
		err error
	)
	switch t {
	case model.ReportTypeAcademicProgress:
		var v AcademicProgressPayload
		err = sonic.Unmarshal(raw, &v)
		p = v
	case model.ReportTypeAttendanceSummary:
		var v AttendanceSummaryPayload
		err = sonic.Unmarshal(raw, &v)
		p = v
	case model.ReportTypeClassPerformance:
		var v ClassPerformancePayload
		err = sonic.Unmarshal(raw, &v)
		p = v
	case model.ReportTypeExamResults:
		var v ExamResultsPayload
		err = sonic.Unmarshal(raw, &v)
		p = v
	default:
		return nil, fmt.Errorf("unknown report type %q", t)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", t, err)
	}
	return p, nil
}
