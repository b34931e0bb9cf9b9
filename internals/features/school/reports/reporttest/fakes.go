// Package reporttest berisi implementasi in-memory untuk port & store report.
package reporttest

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/reports/model"
	"schoolku_backend/internals/features/school/reports/service"
	"schoolku_backend/internals/helpers/apperror"
)

/* =========================================================
   DataPort
========================================================= */

type Student struct {
	ID       uuid.UUID
	SchoolID uuid.UUID
	ClassID  *uuid.UUID
	Name     string
}

type Class struct {
	ID       uuid.UUID
	SchoolID uuid.UUID
	Name     string
}

// Grade: SchoolID diisi supaya isolasi tenant bisa diuji.
type Grade struct {
	SchoolID uuid.UUID
	service.GradeRecord
}

type Attendance struct {
	SchoolID uuid.UUID
	service.AttendanceRecord
}

// Port adalah DataPort in-memory. Err (jika diisi) dikembalikan oleh semua method.
// Calls menghitung total pemanggilan method.
type Port struct {
	mu          sync.RWMutex
	Students    []Student
	Classes     []Class
	Grades      []Grade
	Attendances []Attendance
	Err         error

	calls atomic.Int64
}

var _ service.DataPort = (*Port)(nil)

func (p *Port) Calls() int64 { return p.calls.Load() }

func (p *Port) enter(ctx context.Context) error {
	p.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.Err
}

func (p *Port) StudentExists(ctx context.Context, schoolID, studentID uuid.UUID) (bool, error) {
	if err := p.enter(ctx); err != nil {
		return false, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.student(schoolID, studentID)
	return ok, nil
}

func (p *Port) ClassExists(ctx context.Context, schoolID, classID uuid.UUID) (bool, error) {
	if err := p.enter(ctx); err != nil {
		return false, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.Classes {
		if c.SchoolID == schoolID && c.ID == classID {
			return true, nil
		}
	}
	return false, nil
}

func (p *Port) GradesByStudent(ctx context.Context, schoolID, studentID uuid.UUID, w service.Window) ([]service.GradeRecord, error) {
	if err := p.enter(ctx); err != nil {
		return nil, err
	}
	return p.grades(schoolID, func(g Grade) bool {
		return g.StudentID == studentID && w.Contains(g.CreatedAt)
	}), nil
}

func (p *Port) GradesByClass(ctx context.Context, schoolID, classID uuid.UUID, w service.Window) ([]service.GradeRecord, error) {
	if err := p.enter(ctx); err != nil {
		return nil, err
	}
	return p.grades(schoolID, func(g Grade) bool {
		return g.ClassID != nil && *g.ClassID == classID && w.Contains(g.CreatedAt)
	}), nil
}

func (p *Port) ExamResults(ctx context.Context, schoolID uuid.UUID, scope service.Scope, w service.Window) ([]service.GradeRecord, error) {
	if err := p.enter(ctx); err != nil {
		return nil, err
	}
	return p.grades(schoolID, func(g Grade) bool {
		if scope.StudentID != nil && g.StudentID != *scope.StudentID {
			return false
		}
		if scope.ClassID != nil && (g.ClassID == nil || *g.ClassID != *scope.ClassID) {
			return false
		}
		return w.Contains(g.ExamDate)
	}), nil
}

func (p *Port) AttendanceByScope(ctx context.Context, schoolID uuid.UUID, scope service.Scope, w service.Window) ([]service.AttendanceRecord, error) {
	if err := p.enter(ctx); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]service.AttendanceRecord, 0)
	for _, a := range p.Attendances {
		if a.SchoolID != schoolID || !w.Contains(a.Date) {
			continue
		}
		if scope.StudentID != nil && a.StudentID != *scope.StudentID {
			continue
		}
		if scope.ClassID != nil && a.ClassID != *scope.ClassID {
			continue
		}
		out = append(out, a.AttendanceRecord)
	}
	slices.SortFunc(out, func(a, b service.AttendanceRecord) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

func (p *Port) StudentsInClass(ctx context.Context, schoolID, classID uuid.UUID) ([]service.StudentRecord, error) {
	if err := p.enter(ctx); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]service.StudentRecord, 0)
	for _, s := range p.Students {
		if s.SchoolID == schoolID && s.ClassID != nil && *s.ClassID == classID {
			out = append(out, service.StudentRecord{ID: s.ID, Name: s.Name})
		}
	}
	return out, nil
}

func (p *Port) student(schoolID, id uuid.UUID) (Student, bool) {
	for _, s := range p.Students {
		if s.SchoolID == schoolID && s.ID == id {
			return s, true
		}
	}
	return Student{}, false
}

func (p *Port) grades(schoolID uuid.UUID, keep func(Grade) bool) []service.GradeRecord {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]service.GradeRecord, 0)
	for _, g := range p.Grades {
		if g.SchoolID == schoolID && keep(g) {
			out = append(out, g.GradeRecord)
		}
	}
	return out
}

/* =========================================================
   TemplateStore
========================================================= */

type TemplateStore struct {
	mu    sync.Mutex
	items []model.ReportTemplateModel
	// Reports dipakai untuk cek referensi saat Delete.
	Reports *ReportStore
}

var _ service.TemplateStore = (*TemplateStore)(nil)

func (s *TemplateStore) Create(ctx context.Context, m *model.ReportTemplateModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ReportTemplateID == uuid.Nil {
		m.ReportTemplateID = uuid.New()
	}
	now := time.Now().UTC()
	m.ReportTemplateCreatedAt, m.ReportTemplateUpdatedAt = now, now
	s.items = append(s.items, *m)
	return nil
}

func (s *TemplateStore) List(ctx context.Context, schoolID uuid.UUID) ([]model.ReportTemplateModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ReportTemplateModel, 0)
	for _, t := range s.items {
		if t.ReportTemplateSchoolID == schoolID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TemplateStore) Get(ctx context.Context, schoolID, id uuid.UUID) (*model.ReportTemplateModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(schoolID, id)
	if i < 0 {
		return nil, apperror.NotFound("templates.get", "report template not found")
	}
	cp := s.items[i]
	return &cp, nil
}

func (s *TemplateStore) Update(ctx context.Context, schoolID, id uuid.UUID, patch service.TemplatePatch) (*model.ReportTemplateModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(schoolID, id)
	if i < 0 {
		return nil, apperror.NotFound("templates.update", "report template not found")
	}
	t := &s.items[i]
	if patch.Type != nil && *patch.Type != t.ReportTemplateType && s.Reports != nil && s.Reports.referencing(id) > 0 {
		return nil, apperror.Conflict("templates.update", "template type cannot change while reports reference it")
	}
	if patch.Name != nil {
		t.ReportTemplateName = *patch.Name
	}
	if patch.Type != nil {
		t.ReportTemplateType = *patch.Type
	}
	if patch.Format != nil {
		t.ReportTemplateFormat = *patch.Format
	}
	t.ReportTemplateUpdatedAt = time.Now().UTC()
	cp := *t
	return &cp, nil
}

func (s *TemplateStore) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(schoolID, id)
	if i < 0 {
		return apperror.NotFound("templates.delete", "report template not found")
	}
	if s.Reports != nil && s.Reports.referencing(id) > 0 {
		return apperror.Conflict("templates.delete", "template is still referenced by reports")
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *TemplateStore) index(schoolID, id uuid.UUID) int {
	return slices.IndexFunc(s.items, func(t model.ReportTemplateModel) bool {
		return t.ReportTemplateSchoolID == schoolID && t.ReportTemplateID == id
	})
}

/* =========================================================
   ReportStore
========================================================= */

type ReportStore struct {
	mu    sync.Mutex
	items []model.ReportModel
	// Templates (opsional) untuk verifikasi template satu sekolah saat Save.
	Templates *TemplateStore
	Err       error
	Now       func() time.Time
}

var _ service.ReportStore = (*ReportStore)(nil)

func (s *ReportStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *ReportStore) Save(ctx context.Context, m *model.ReportModel) error {
	if err := ctx.Err(); err != nil {
		return apperror.DataAccess("reports.save", err)
	}
	if s.Err != nil {
		return s.Err
	}
	if m.ReportTemplateID != nil && s.Templates != nil {
		if _, err := s.Templates.Get(ctx, m.ReportSchoolID, *m.ReportTemplateID); err != nil {
			return err
		}
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m.ReportID = uuid.New()
	m.ReportGeneratedAt = now().UTC()
	m.ReportUpdatedAt = m.ReportGeneratedAt
	s.items = append(s.items, *m)
	return nil
}

func (s *ReportStore) Get(ctx context.Context, schoolID, id uuid.UUID) (*model.ReportModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(schoolID, id)
	if i < 0 {
		return nil, apperror.NotFound("reports.get", "report not found")
	}
	cp := s.items[i]
	return &cp, nil
}

func (s *ReportStore) List(ctx context.Context, schoolID uuid.UUID, f service.ReportFilter) ([]model.ReportModel, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]model.ReportModel, 0)
	for _, r := range s.items {
		if r.ReportSchoolID != schoolID {
			continue
		}
		if f.Type != nil && r.ReportType != *f.Type {
			continue
		}
		if f.StudentID != nil && (r.ReportStudentID == nil || *r.ReportStudentID != *f.StudentID) {
			continue
		}
		if f.ClassID != nil && (r.ReportClassID == nil || *r.ReportClassID != *f.ClassID) {
			continue
		}
		matched = append(matched, r)
	}
	slices.SortFunc(matched, func(a, b model.ReportModel) int {
		if c := b.ReportGeneratedAt.Compare(a.ReportGeneratedAt); c != 0 {
			return c
		}
		return bytes.Compare(b.ReportID[:], a.ReportID[:])
	})

	total := int64(len(matched))
	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			return []model.ReportModel{}, total, nil
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (s *ReportStore) UpdateMetadata(ctx context.Context, schoolID, id uuid.UUID, patch service.MetadataPatch) (*model.ReportModel, error) {
	if patch.TemplateID != nil && s.Templates != nil {
		if _, err := s.Templates.Get(ctx, schoolID, *patch.TemplateID); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(schoolID, id)
	if i < 0 {
		return nil, apperror.NotFound("reports.update", "report not found")
	}
	r := &s.items[i]
	if patch.Title != nil {
		r.ReportTitle = *patch.Title
	}
	switch {
	case patch.ClearTemplate:
		r.ReportTemplateID = nil
	case patch.TemplateID != nil:
		tid := *patch.TemplateID
		r.ReportTemplateID = &tid
	}
	r.ReportUpdatedAt = time.Now().UTC()
	cp := *r
	return &cp, nil
}

func (s *ReportStore) Delete(ctx context.Context, schoolID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(schoolID, id)
	if i < 0 {
		return apperror.NotFound("reports.delete", "report not found")
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *ReportStore) index(schoolID, id uuid.UUID) int {
	return slices.IndexFunc(s.items, func(r model.ReportModel) bool {
		return r.ReportSchoolID == schoolID && r.ReportID == id
	})
}

func (s *ReportStore) referencing(templateID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.items {
		if r.ReportTemplateID != nil && *r.ReportTemplateID == templateID {
			n++
		}
	}
	return n
}

/* =========================================================
   Wiring helper
========================================================= */

// Stores membuat pasangan TemplateStore & ReportStore yang saling terhubung.
func Stores() (*TemplateStore, *ReportStore) {
	ts := &TemplateStore{}
	rs := &ReportStore{Templates: ts}
	ts.Reports = rs
	return ts, rs
}
