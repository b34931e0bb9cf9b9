// internals/features/school/reports/service/reports.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"schoolku_backend/internals/features/school/reports/dto"
	"schoolku_backend/internals/features/school/reports/model"
	"schoolku_backend/internals/helpers/apperror"
)

type GenerateRequest struct {
	TemplateID *uuid.UUID
	Type       model.ReportType // boleh kosong jika TemplateID diisi
	Title      string
	StudentID  *uuid.UUID
	ClassID    *uuid.UUID
	StartDate  string // RFC3339 atau YYYY-MM-DD
	EndDate    string
}

type Options struct {
	// FetchTimeout membatasi fase baca data (0 = ikut ctx).
	FetchTimeout time.Duration
	Metrics      *Metrics
	Logger       *logrus.Logger
	Now          func() time.Time
}

type ReportService struct {
	port      DataPort
	templates TemplateStore
	reports   ReportStore

	fetchTimeout time.Duration
	metrics      *Metrics
	log          *logrus.Logger
	now          func() time.Time
}

func NewReportService(port DataPort, templates TemplateStore, reports ReportStore, opts Options) *ReportService {
	s := &ReportService{
		port:         port,
		templates:    templates,
		reports:      reports,
		fetchTimeout: opts.FetchTimeout,
		metrics:      opts.Metrics,
		log:          opts.Logger,
		now:          opts.Now,
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

/* =========================================================
   Generate
========================================================= */

// Generate: validasi → template → fetch paralel → reduksi → simpan snapshot.
func (s *ReportService) Generate(ctx context.Context, schoolID, generatedByID uuid.UUID, req GenerateRequest) (out *model.ReportModel, err error) {
	const op = "reports.generate"

	started := s.now()
	reportType := req.Type
	defer func() {
		s.metrics.observe(string(reportType), started, err)
	}()

	title, err := requireText(op, "title", req.Title)
	if err != nil {
		return nil, err
	}
	win, err := ParseWindow(req.StartDate, req.EndDate, s.now())
	if err != nil {
		return nil, err
	}
	scope := Scope{StudentID: req.StudentID, ClassID: req.ClassID}

	if reportType == "" && req.TemplateID == nil {
		return nil, apperror.Validation(op, "type", "type is required when template_id is not set")
	}
	if reportType != "" {
		if !reportType.Valid() {
			return nil, apperror.Validation(op, "type", "type must be one of ACADEMIC_PROGRESS, ATTENDANCE_SUMMARY, CLASS_PERFORMANCE, EXAM_RESULTS")
		}
		if err := ValidateScope(reportType, scope); err != nil {
			return nil, err
		}
	}

	if req.TemplateID != nil {
		tpl, err := s.templates.Get(ctx, schoolID, *req.TemplateID)
		if err != nil {
			return nil, err
		}
		switch {
		case reportType == "":
			reportType = tpl.ReportTemplateType
			if err := ValidateScope(reportType, scope); err != nil {
				return nil, err
			}
		case tpl.ReportTemplateType != reportType:
			return nil, apperror.Validation(op, "template_id",
				"template type "+string(tpl.ReportTemplateType)+" does not match report type "+string(reportType))
		}
	}

	payload, err := s.Aggregate(ctx, schoolID, reportType, scope, win)
	if err != nil {
		return nil, err
	}

	raw, err := dto.EncodePayload(payload)
	if err != nil {
		return nil, apperror.Aggregation(op, "%v", err)
	}

	m := &model.ReportModel{
		ReportSchoolID:      schoolID,
		ReportTemplateID:    req.TemplateID,
		ReportType:          reportType,
		ReportTitle:         title,
		ReportStudentID:     req.StudentID,
		ReportClassID:       req.ClassID,
		ReportData:          raw,
		ReportGeneratedByID: generatedByID,
	}
	if err := s.reports.Save(ctx, m); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"school_id": schoolID,
		"report_id": m.ReportID,
		"type":      reportType,
	}).Info("report generated")
	return m, nil
}

// ValidateScope memastikan identifier yang wajib per tipe tersedia.
func ValidateScope(t model.ReportType, scope Scope) error {
	const op = "reports.scope"

	switch t {
	case model.ReportTypeAcademicProgress:
		if scope.StudentID == nil {
			return apperror.Validation(op, "student_id", "student_id is required for ACADEMIC_PROGRESS")
		}
	case model.ReportTypeClassPerformance:
		if scope.ClassID == nil {
			return apperror.Validation(op, "class_id", "class_id is required for CLASS_PERFORMANCE")
		}
	case model.ReportTypeAttendanceSummary, model.ReportTypeExamResults:
		if scope.StudentID == nil && scope.ClassID == nil {
			return apperror.Validation(op, "student_id", "student_id or class_id is required for "+string(t))
		}
	default:
		return apperror.Validation(op, "type", "unsupported report type "+string(t))
	}
	return nil
}

/* =========================================================
   Aggregate (fetch + reduce, tanpa persist)
========================================================= */

// Aggregate membaca data lewat DataPort lalu mereduksinya menjadi payload.
// Semua pembacaan selesai sebelum reduksi dimulai.
func (s *ReportService) Aggregate(ctx context.Context, schoolID uuid.UUID, t model.ReportType, scope Scope, w Window) (dto.Payload, error) {
	if !t.Valid() {
		return nil, apperror.Aggregation(opAggregate, "no aggregator for report type %q", t)
	}
	if err := ValidateScope(t, scope); err != nil {
		return nil, err
	}

	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	g, gctx := errgroup.WithContext(fetchCtx)
	s.checkScopeExists(gctx, g, schoolID, scope)

	var (
		grades     []GradeRecord
		attendance []AttendanceRecord
		students   []StudentRecord
	)

	switch t {
	case model.ReportTypeAcademicProgress:
		g.Go(func() error {
			var err error
			grades, err = s.port.GradesByStudent(gctx, schoolID, *scope.StudentID, w)
			return apperror.DataAccess("port.grades_by_student", err)
		})
	case model.ReportTypeAttendanceSummary:
		g.Go(func() error {
			var err error
			attendance, err = s.port.AttendanceByScope(gctx, schoolID, scope, w)
			return apperror.DataAccess("port.attendance_by_scope", err)
		})
	case model.ReportTypeClassPerformance:
		g.Go(func() error {
			var err error
			students, err = s.port.StudentsInClass(gctx, schoolID, *scope.ClassID)
			return apperror.DataAccess("port.students_in_class", err)
		})
		g.Go(func() error {
			var err error
			grades, err = s.port.GradesByClass(gctx, schoolID, *scope.ClassID, w)
			return apperror.DataAccess("port.grades_by_class", err)
		})
	case model.ReportTypeExamResults:
		g.Go(func() error {
			var err error
			grades, err = s.port.ExamResults(gctx, schoolID, scope, w)
			return apperror.DataAccess("port.exam_results", err)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		payload dto.Payload
		err     error
	)
	switch t {
	case model.ReportTypeAcademicProgress:
		payload, err = ReduceAcademicProgress(grades)
	case model.ReportTypeAttendanceSummary:
		var unknown []string
		payload, unknown = ReduceAttendanceSummary(attendance)
		if len(unknown) > 0 {
			s.log.WithFields(logrus.Fields{
				"school_id": schoolID,
				"statuses":  unknown,
			}).Warn("unknown attendance status counted as other")
		}
	case model.ReportTypeClassPerformance:
		payload, err = ReduceClassPerformance(students, grades)
	case model.ReportTypeExamResults:
		payload, err = ReduceExamResults(grades)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"school_id":  schoolID,
			"type":       t,
			"student_id": scope.StudentID,
			"class_id":   scope.ClassID,
		}).WithError(err).Error("report aggregation failed")
		return nil, err
	}
	return payload, nil
}

func (s *ReportService) checkScopeExists(ctx context.Context, g *errgroup.Group, schoolID uuid.UUID, scope Scope) {
	if scope.StudentID != nil {
		id := *scope.StudentID
		g.Go(func() error {
			ok, err := s.port.StudentExists(ctx, schoolID, id)
			if err != nil {
				return apperror.DataAccess("port.student_exists", err)
			}
			if !ok {
				return apperror.NotFound("reports.generate", "student not found")
			}
			return nil
		})
	}
	if scope.ClassID != nil {
		id := *scope.ClassID
		g.Go(func() error {
			ok, err := s.port.ClassExists(ctx, schoolID, id)
			if err != nil {
				return apperror.DataAccess("port.class_exists", err)
			}
			if !ok {
				return apperror.NotFound("reports.generate", "class not found")
			}
			return nil
		})
	}
}

/* =========================================================
   Read / metadata
========================================================= */

func (s *ReportService) Get(ctx context.Context, schoolID, id uuid.UUID) (*model.ReportModel, error) {
	return s.reports.Get(ctx, schoolID, id)
}

func (s *ReportService) List(ctx context.Context, schoolID uuid.UUID, f ReportFilter) ([]model.ReportModel, int64, error) {
	if f.Type != nil && !f.Type.Valid() {
		return nil, 0, apperror.Validation("reports.list", "type", "unsupported report type "+string(*f.Type))
	}
	return s.reports.List(ctx, schoolID, f)
}

// UpdateMetadata hanya menyentuh title & template; snapshot tidak berubah.
func (s *ReportService) UpdateMetadata(ctx context.Context, schoolID, id uuid.UUID, patch MetadataPatch) (*model.ReportModel, error) {
	const op = "reports.update"

	if patch.Title != nil {
		v, err := requireText(op, "title", *patch.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &v
	}
	if patch.ClearTemplate && patch.TemplateID != nil {
		return nil, apperror.Validation(op, "template_id", "template_id and clear_template are mutually exclusive")
	}
	if patch.TemplateID != nil {
		current, err := s.reports.Get(ctx, schoolID, id)
		if err != nil {
			return nil, err
		}
		tpl, err := s.templates.Get(ctx, schoolID, *patch.TemplateID)
		if err != nil {
			return nil, err
		}
		if tpl.ReportTemplateType != current.ReportType {
			return nil, apperror.Validation(op, "template_id",
				"template type "+string(tpl.ReportTemplateType)+" does not match report type "+string(current.ReportType))
		}
	}
	return s.reports.UpdateMetadata(ctx, schoolID, id, patch)
}

func (s *ReportService) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	return s.reports.Delete(ctx, schoolID, id)
}
