// internals/features/school/reports/service/aggregate.go
package service

import (
	"bytes"
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/reports/dto"
	"schoolku_backend/internals/helpers/apperror"
)

const opAggregate = "reports.aggregate"

// Status presensi yang dikenali; selain ini masuk otherDays.
const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
)

/* =========================================================
   Numeric grade
========================================================= */

// Score = marks / totalMarks * 100, dibulatkan 2 desimal.
func Score(marks, totalMarks float64) (float64, error) {
	if math.IsNaN(totalMarks) || math.IsInf(totalMarks, 0) || totalMarks <= 0 {
		return 0, apperror.Aggregation(opAggregate, "exam total marks must be positive, got %v", totalMarks)
	}
	if math.IsNaN(marks) || math.IsInf(marks, 0) || marks < 0 {
		return 0, apperror.Aggregation(opAggregate, "marks must be a non-negative number, got %v", marks)
	}
	return round2(marks / totalMarks * 100), nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// mean mengembalikan nil untuk himpunan kosong.
func mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	avg := round2(sum / float64(len(xs)))
	return &avg
}

func compareByDateThenID(ad, bd time.Time, aid, bid uuid.UUID) int {
	if c := ad.Compare(bd); c != 0 {
		return c
	}
	return bytes.Compare(aid[:], bid[:])
}

func sortGrades(gs []GradeRecord) []GradeRecord {
	out := slices.Clone(gs)
	slices.SortFunc(out, func(a, b GradeRecord) int {
		return compareByDateThenID(a.ExamDate, b.ExamDate, a.ID, b.ID)
	})
	return out
}

/* =========================================================
   Reducers (pure)
========================================================= */

func ReduceAcademicProgress(grades []GradeRecord) (dto.AcademicProgressPayload, error) {
	sorted := sortGrades(grades)

	items := make([]dto.StudentGradeItem, 0, len(sorted))
	scores := make([]float64, 0, len(sorted))
	for _, g := range sorted {
		s, err := Score(g.Marks, g.TotalMarks)
		if err != nil {
			return dto.AcademicProgressPayload{}, withGrade(err, g)
		}
		scores = append(scores, s)
		items = append(items, dto.StudentGradeItem{
			ID:         g.ID,
			ExamID:     g.ExamID,
			ExamName:   g.ExamName,
			Subject:    g.Subject,
			Course:     g.Course,
			ExamDate:   g.ExamDate,
			Marks:      g.Marks,
			TotalMarks: g.TotalMarks,
			Score:      s,
			Grade:      g.Letter,
			Remarks:    g.Remarks,
		})
	}

	return dto.AcademicProgressPayload{
		StudentGrades: items,
		AverageGrade:  mean(scores),
		TotalExams:    len(items),
	}, nil
}

// ReduceAttendanceSummary juga mengembalikan status yang tidak dikenali (untuk di-log).
func ReduceAttendanceSummary(records []AttendanceRecord) (dto.AttendanceSummaryPayload, []string) {
	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(a, b AttendanceRecord) int {
		return compareByDateThenID(a.Date, b.Date, a.ID, b.ID)
	})

	out := dto.AttendanceSummaryPayload{
		TotalDays:         len(sorted),
		AttendanceRecords: make([]dto.AttendanceRecordItem, 0, len(sorted)),
	}
	var unknown []string
	for _, r := range sorted {
		switch strings.ToUpper(strings.TrimSpace(r.Status)) {
		case StatusPresent:
			out.PresentDays++
		case StatusAbsent:
			out.AbsentDays++
		case StatusLate:
			out.LateDays++
		default:
			out.OtherDays++
			if !slices.Contains(unknown, r.Status) {
				unknown = append(unknown, r.Status)
			}
		}
		out.AttendanceRecords = append(out.AttendanceRecords, dto.AttendanceRecordItem{
			ID:          r.ID,
			Date:        r.Date,
			Status:      r.Status,
			StudentID:   r.StudentID,
			StudentName: r.StudentName,
			ClassID:     r.ClassID,
			ClassName:   r.ClassName,
		})
	}
	return out, unknown
}

// ReduceClassPerformance: grade milik siswa di luar roster diabaikan.
func ReduceClassPerformance(students []StudentRecord, grades []GradeRecord) (dto.ClassPerformancePayload, error) {
	roster := slices.Clone(students)
	slices.SortFunc(roster, func(a, b StudentRecord) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})

	scoresByStudent := make(map[uuid.UUID][]float64, len(roster))
	for _, s := range roster {
		scoresByStudent[s.ID] = nil
	}
	for _, g := range sortGrades(grades) {
		if _, ok := scoresByStudent[g.StudentID]; !ok {
			continue
		}
		s, err := Score(g.Marks, g.TotalMarks)
		if err != nil {
			return dto.ClassPerformancePayload{}, withGrade(err, g)
		}
		scoresByStudent[g.StudentID] = append(scoresByStudent[g.StudentID], s)
	}

	perf := make([]dto.StudentPerformanceItem, 0, len(roster))
	var averages []float64
	for _, s := range roster {
		scores := scoresByStudent[s.ID]
		avg := mean(scores)
		if avg != nil {
			averages = append(averages, *avg)
		}
		perf = append(perf, dto.StudentPerformanceItem{
			StudentID:    s.ID,
			Name:         s.Name,
			AverageGrade: avg,
			TotalExams:   len(scores),
		})
	}

	return dto.ClassPerformancePayload{
		TotalStudents:      len(roster),
		AverageClassGrade:  mean(averages),
		StudentPerformance: perf,
	}, nil
}

func ReduceExamResults(grades []GradeRecord) (dto.ExamResultsPayload, error) {
	sorted := sortGrades(grades)

	items := make([]dto.ExamResultItem, 0, len(sorted))
	for _, g := range sorted {
		s, err := Score(g.Marks, g.TotalMarks)
		if err != nil {
			return dto.ExamResultsPayload{}, withGrade(err, g)
		}
		items = append(items, dto.ExamResultItem{
			ID:          g.ID,
			ExamID:      g.ExamID,
			ExamName:    g.ExamName,
			ExamDate:    g.ExamDate,
			Subject:     g.Subject,
			Course:      g.Course,
			StudentID:   g.StudentID,
			StudentName: g.StudentName,
			Marks:       g.Marks,
			TotalMarks:  g.TotalMarks,
			Score:       s,
			Grade:       g.Letter,
			Remarks:     g.Remarks,
		})
	}
	return dto.ExamResultsPayload{TotalExams: len(items), ExamResults: items}, nil
}

func withGrade(err error, g GradeRecord) error {
	if ae, ok := err.(*apperror.Error); ok {
		cp := *ae
		cp.Message = "grade " + g.ID.String() + " (exam " + g.ExamID.String() + "): " + ae.Message
		return &cp
	}
	return err
}
