package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/reports/model"
	"schoolku_backend/internals/features/school/reports/repository"
	"schoolku_backend/internals/features/school/reports/service"
)

var everything = service.Window{Start: time.Unix(0, 0).UTC(), End: at(12, 31, 23)}

func TestDataPortExistenceIsTenantScoped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	d := seedSource(t, db)
	port := repository.NewDataPort(db)

	ok, err := port.StudentExists(ctx, d.school, d.ani)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = port.StudentExists(ctx, d.school, d.outsider)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = port.StudentExists(ctx, d.school, d.gone)
	require.NoError(t, err)
	assert.False(t, ok, "soft-deleted student")

	ok, err = port.ClassExists(ctx, d.school, d.class)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = port.ClassExists(ctx, d.otherSchool, d.class)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDataPortGradesByStudentJoinsExamCourseSubject(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	d := seedSource(t, db)
	port := repository.NewDataPort(db)

	all, err := port.GradesByStudent(ctx, d.school, d.ani, everything)
	require.NoError(t, err)
	require.Len(t, all, 2)

	first := all[0]
	assert.Equal(t, d.gradeAniMar, first.ID)
	assert.Equal(t, "UTS", first.ExamName)
	assert.Equal(t, "Matematika", first.Subject)
	assert.Equal(t, "Matematika 7A", first.Course)
	assert.Equal(t, "Ani Lestari", first.StudentName)
	assert.InDelta(t, 100.0, first.TotalMarks, 1e-9)
	assert.True(t, first.ExamDate.Equal(at(3, 10, 8)))
	require.NotNil(t, first.Letter)
	assert.Equal(t, "B", *first.Letter)

	// window memakai tanggal input nilai (created_at), inklusif
	march := service.Window{Start: at(3, 1, 0), End: at(3, 12, 10)}
	got, err := port.GradesByStudent(ctx, d.school, d.ani, march)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, d.gradeAniMar, got[0].ID)

	none, err := port.GradesByStudent(ctx, d.otherSchool, d.ani, everything)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDataPortGradesByClassAndRoster(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	d := seedSource(t, db)
	port := repository.NewDataPort(db)

	grades, err := port.GradesByClass(ctx, d.school, d.class, everything)
	require.NoError(t, err)
	assert.Len(t, grades, 3)

	roster, err := port.StudentsInClass(ctx, d.school, d.class)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Ani Lestari", roster[0].Name)
	assert.Equal(t, "Budi Santoso", roster[1].Name)

	empty, err := port.StudentsInClass(ctx, d.school, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDataPortExamResultsFilterByExamDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	d := seedSource(t, db)
	port := repository.NewDataPort(db)

	// nilai Kuis dibuat 16 Apr, exam-nya 15 Apr: yang dipakai tanggal exam
	april := service.Window{Start: at(4, 15, 0), End: at(4, 15, 23)}
	got, err := port.ExamResults(ctx, d.school, service.Scope{ClassID: &d.class}, april)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, d.gradeAniApr, got[0].ID)
	require.NotNil(t, got[0].Remarks)
	assert.Equal(t, "bagus", *got[0].Remarks)

	both, err := port.ExamResults(ctx, d.school, service.Scope{StudentID: &d.budi, ClassID: &d.class}, everything)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, d.gradeBudiMar, both[0].ID)
}

func TestDataPortAttendanceByScope(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	d := seedSource(t, db)
	port := repository.NewDataPort(db)

	march := service.Window{Start: at(3, 1, 0), End: at(3, 31, 23)}

	// siswa yang sudah dihapus tidak ikut dihitung
	require.NoError(t, db.Create(&model.AttendanceModel{
		AttendanceID: uuid.New(), AttendanceSchoolID: d.school, AttendanceStudentID: d.gone,
		AttendanceClassID: d.class, AttendanceDate: at(3, 3, 7), AttendanceStatus: "PRESENT",
	}).Error)

	byClass, err := port.AttendanceByScope(ctx, d.school, service.Scope{ClassID: &d.class}, march)
	require.NoError(t, err)
	require.Len(t, byClass, 3)
	assert.Equal(t, "7A", byClass[0].ClassName)
	for _, r := range byClass {
		assert.NotEqual(t, d.gone, r.StudentID)
	}

	byGone, err := port.AttendanceByScope(ctx, d.school, service.Scope{StudentID: &d.gone}, everything)
	require.NoError(t, err)
	assert.Empty(t, byGone)
	for i := 1; i < len(byClass); i++ {
		assert.False(t, byClass[i].Date.Before(byClass[i-1].Date))
	}

	byStudent, err := port.AttendanceByScope(ctx, d.school, service.Scope{StudentID: &d.budi}, everything)
	require.NoError(t, err)
	require.Len(t, byStudent, 2)
	assert.Equal(t, "Budi Santoso", byStudent[0].StudentName)
	assert.Equal(t, "ABSENT", byStudent[0].Status)
}

func TestDataPortCancelledContextIsDataAccessError(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	d := seedSource(t, db)
	port := repository.NewDataPort(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := port.GradesByStudent(ctx, d.school, d.ani, everything)
	require.Error(t, err)
}
