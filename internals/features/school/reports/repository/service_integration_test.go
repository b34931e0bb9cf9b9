package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/reports/dto"
	"schoolku_backend/internals/features/school/reports/model"
	"schoolku_backend/internals/features/school/reports/repository"
	"schoolku_backend/internals/features/school/reports/service"
	"schoolku_backend/internals/helpers/apperror"
	"schoolku_backend/internals/logger"
)

func newGormService(db *gorm.DB) (*service.ReportService, *service.TemplateService) {
	templates := repository.NewTemplateRepo(db)
	svc := service.NewReportService(repository.NewDataPort(db), templates, repository.NewReportRepo(db), service.Options{
		Logger: logger.Discard(),
	})
	return svc, service.NewTemplateService(templates)
}

func TestGenerateClassPerformanceOverGorm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	d := seedSource(t, db)
	svc, _ := newGormService(db)

	m, err := svc.Generate(ctx, d.school, uuid.New(), service.GenerateRequest{
		Type:    model.ReportTypeClassPerformance,
		Title:   "Kelas 7A",
		ClassID: &d.class,
	})
	require.NoError(t, err)

	stored, err := svc.Get(ctx, d.school, m.ReportID)
	require.NoError(t, err)
	p, err := dto.DecodePayload(stored.ReportType, stored.ReportData)
	require.NoError(t, err)

	perf := p.(dto.ClassPerformancePayload)
	assert.Equal(t, 2, perf.TotalStudents, "soft-deleted student excluded")
	require.Len(t, perf.StudentPerformance, 2)
	assert.Equal(t, "Ani Lestari", perf.StudentPerformance[0].Name)
	require.NotNil(t, perf.StudentPerformance[0].AverageGrade)
	assert.InDelta(t, 85.0, *perf.StudentPerformance[0].AverageGrade, 1e-9)
	require.NotNil(t, perf.AverageClassGrade)
	assert.InDelta(t, 72.5, *perf.AverageClassGrade, 1e-9)
}

func TestGenerateAttendanceSummaryOverGorm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	d := seedSource(t, db)
	svc, _ := newGormService(db)

	m, err := svc.Generate(ctx, d.school, uuid.New(), service.GenerateRequest{
		Type:    model.ReportTypeAttendanceSummary,
		Title:   "Presensi 7A",
		ClassID: &d.class,
	})
	require.NoError(t, err)

	p, err := dto.DecodePayload(m.ReportType, m.ReportData)
	require.NoError(t, err)
	sum := p.(dto.AttendanceSummaryPayload)
	assert.Equal(t, 4, sum.TotalDays)
	assert.Equal(t, 2, sum.PresentDays)
	assert.Equal(t, 1, sum.AbsentDays)
	assert.Equal(t, 1, sum.LateDays)
	assert.Zero(t, sum.OtherDays)
}

func TestGenerateForOtherTenantStudentIsNotFoundOverGorm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	d := seedSource(t, db)
	svc, _ := newGormService(db)

	_, err := svc.Generate(ctx, d.school, uuid.New(), service.GenerateRequest{
		Type:      model.ReportTypeAcademicProgress,
		Title:     "x",
		StudentID: &d.outsider,
	})
	require.ErrorIs(t, err, apperror.ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&model.ReportModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestTemplateBoundReportLifecycleOverGorm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	d := seedSource(t, db)
	svc, tplSvc := newGormService(db)
	user := uuid.New()

	tpl, err := tplSvc.Create(ctx, d.school, user, service.TemplateInput{
		Name: "Rapor", Type: model.ReportTypeAcademicProgress, Format: "{}",
	})
	require.NoError(t, err)

	m, err := svc.Generate(ctx, d.school, user, service.GenerateRequest{
		TemplateID: &tpl.ReportTemplateID,
		Title:      "Rapor Ani",
		StudentID:  &d.ani,
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReportTypeAcademicProgress, m.ReportType)

	p, err := dto.DecodePayload(m.ReportType, m.ReportData)
	require.NoError(t, err)
	ap := p.(dto.AcademicProgressPayload)
	assert.Equal(t, 1, ap.TotalExams)
	require.NotNil(t, ap.AverageGrade)
	assert.InDelta(t, 80.0, *ap.AverageGrade, 1e-9)

	require.ErrorIs(t, tplSvc.Delete(ctx, d.school, tpl.ReportTemplateID), apperror.ErrConflict)

	_, err = svc.UpdateMetadata(ctx, d.school, m.ReportID, service.MetadataPatch{ClearTemplate: true})
	require.NoError(t, err)
	require.NoError(t, tplSvc.Delete(ctx, d.school, tpl.ReportTemplateID))
}
